package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oceanpet/api/internal/domain"
)

type mockFolderSvc struct{ mock.Mock }

func (m *mockFolderSvc) List(ctx context.Context, userID string) ([]domain.Folder, error) {
	args := m.Called(ctx, userID)
	if fs, _ := args.Get(0).([]domain.Folder); fs != nil {
		return fs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFolderSvc) Sync(ctx context.Context, userID string, req *domain.SyncFoldersRequest) ([]domain.Folder, error) {
	args := m.Called(ctx, userID, req)
	if fs, _ := args.Get(0).([]domain.Folder); fs != nil {
		return fs, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFolderList_RequiresAuth(t *testing.T) {
	h := NewFolderHandler(&mockFolderSvc{})
	r := httptest.NewRequest(http.MethodGet, "/v1/folders", nil)
	rr := httptest.NewRecorder()
	h.List(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestFolderSync_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockFolderSvc{}
	svc.On("Sync", mock.Anything, "u1", mock.Anything).Return([]domain.Folder{
		{FolderID: "f1", UserID: "u1", Name: "Mèo", Icon: "🐱", Color: "#EC4899"},
	}, nil)
	h := NewFolderHandler(svc)

	body, _ := json.Marshal(domain.SyncFoldersRequest{SelectedPets: []string{"Mèo"}})
	r := bearerReq(t, p, http.MethodPost, "/v1/folders/sync", "u1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Sync), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.Folder
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "🐱", resp[0].Icon)
	svc.AssertExpectations(t)
}

func TestFolderSync_MissingSelection(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockFolderSvc{}
	h := NewFolderHandler(svc)

	r := bearerReq(t, p, http.MethodPost, "/v1/folders/sync", "u1", []byte(`{}`))
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Sync), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything, mock.Anything)
}
