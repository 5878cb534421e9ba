package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oceanpet/api/internal/application/auth"
	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/infrastructure/oauth"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, email, code string) (*auth.Session, error) {
	args := m.Called(ctx, email, code)
	if s, _ := args.Get(0).(*auth.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ResendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if s, _ := args.Get(0).(*auth.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) LoginWithGoogle(ctx context.Context, idToken string) (*auth.Session, error) {
	args := m.Called(ctx, idToken)
	if s, _ := args.Get(0).(*auth.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) LoginWithFacebook(ctx context.Context, accessToken string) (*auth.Session, error) {
	args := m.Called(ctx, accessToken)
	if s, _ := args.Get(0).(*auth.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) LoginWithProfile(ctx context.Context, p *oauth.Profile) (*auth.Session, error) {
	args := m.Called(ctx, p)
	if s, _ := args.Get(0).(*auth.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func testSession() *auth.Session {
	return &auth.Session{
		Token: "signed-token",
		User:  &domain.User{UserID: "u1", Email: "a@b.com", Name: "Alice", Verified: true, Enable: true},
	}
}

// --- Register tests ---

func TestRegister_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	body, _ := json.Marshal(domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "short"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "secret-password"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegister_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "secret-password"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp SessionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.Token) // no session until the code is verified
	assert.Equal(t, "u1", resp.User.UserID)
	svc.AssertExpectations(t)
}

// --- VerifyOTP tests ---

func TestVerifyOTP_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, "a@b.com", "123456").Return(testSession(), nil)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "code": "123456"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp SessionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp.Token)
	svc.AssertExpectations(t)
}

func TestVerifyOTP_BadCodeShape(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "code": "12ab56"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, "a@b.com", "123456").Return(nil, domain.ErrOTPExpired)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "code": "123456"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Login tests ---

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "a@b.com", "secret-password").Return(testSession(), nil)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "secret-password"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp SessionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "a@b.com", resp.User.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "a@b.com", "wrong").Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "wrong"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_Unverified(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "a@b.com", "secret-password").Return(nil, domain.ErrForbidden)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "secret-password"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// --- Federated token logins ---

func TestGoogleToken_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginWithGoogle", mock.Anything, "id-token").Return(testSession(), nil)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"id_token": "id-token"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/google/token", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.GoogleToken(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGoogleToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/google/token", bytes.NewBufferString("{}"))
	rr := httptest.NewRecorder()
	h.GoogleToken(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFacebookToken_Invalid(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginWithFacebook", mock.Anything, "bad").Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"access_token": "bad"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/facebook/token", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.FacebookToken(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// --- ResendOTP tests ---

func TestResendOTP_AlreadyVerified(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ResendOTP", mock.Anything, "a@b.com").Return(domain.ErrBadRequest)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/resend-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ResendOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResendOTP_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ResendOTP", mock.Anything, "a@b.com").Return(nil)
	h := NewAuthHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/resend-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ResendOTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
}
