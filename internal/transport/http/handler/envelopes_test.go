package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanpet/api/internal/domain"
)

func TestWriteJSON_StampsSuccessFromStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, MessageEnvelope{Message: "pong"})

	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pong", resp.Message)
}

func TestWriteJSON_SessionEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, SessionEnvelope{Token: "tok"})

	var resp SessionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "tok", resp.Token)
}

func TestWriteError_StampsFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusBadRequest, "bad input")

	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "bad input", resp.Error)
}

func TestWriteDomainError_MasksInternalFailures(t *testing.T) {
	rr := httptest.NewRecorder()
	writeDomainError(rr, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Error)
}

func TestWriteDomainError_SentinelStatuses(t *testing.T) {
	cases := map[error]int{
		domain.ErrBadRequest:   http.StatusBadRequest,
		domain.ErrUnauthorized: http.StatusUnauthorized,
		domain.ErrForbidden:    http.StatusForbidden,
		domain.ErrNotFound:     http.StatusNotFound,
		domain.ErrConflict:     http.StatusConflict,
	}
	for err, want := range cases {
		rr := httptest.NewRecorder()
		writeDomainError(rr, err)
		assert.Equal(t, want, rr.Code, err.Error())
	}
}
