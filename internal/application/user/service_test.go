package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oceanpet/api/internal/domain"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	args := m.Called(ctx, userID, updates)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestGet(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1", Name: "Alice"}, nil)
	svc := NewService(ServiceDeps{Store: store})

	u, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
}

func TestGet_NotFound(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	svc := NewService(ServiceDeps{Store: store})

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1", Name: "Alice"}, nil).Once()
	store.On("Update", mock.Anything, "user-1", map[string]interface{}{
		"name":       "Alicia",
		"avatar_url": "https://cdn.example.com/a.png",
	}).Return(nil)
	store.On("Get", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1", Name: "Alicia"}, nil)
	svc := NewService(ServiceDeps{Store: store})

	u, err := svc.Update(context.Background(), "user-1", &domain.UpdateUserRequest{
		Name:      strPtr("Alicia"),
		AvatarURL: strPtr("https://cdn.example.com/a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.Name)
	store.AssertExpectations(t)
}

func TestUpdate_EmptyRequest(t *testing.T) {
	store := new(mockStore)
	svc := NewService(ServiceDeps{Store: store})

	_, err := svc.Update(context.Background(), "user-1", &domain.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	svc := NewService(ServiceDeps{Store: store})

	_, err := svc.Update(context.Background(), "ghost", &domain.UpdateUserRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
