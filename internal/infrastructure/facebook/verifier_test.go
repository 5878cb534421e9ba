package facebook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oceanpet/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok123", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"fb-1","name":"Alice","email":"alice@x.com"}`))
	}))
	defer srv.Close()

	v := NewVerifierWithBaseURL(srv.URL)
	p, err := v.Verify(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, "fb-1", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "alice@x.com", p.Email)
}

func TestVerify_GraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	v := NewVerifierWithBaseURL(srv.URL)
	_, err := v.Verify(context.Background(), "bad-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerify_MissingEmailIsAllowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"fb-2","name":"Bob"}`))
	}))
	defer srv.Close()

	v := NewVerifierWithBaseURL(srv.URL)
	p, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "fb-2", p.ID)
	assert.Empty(t, p.Email)
}
