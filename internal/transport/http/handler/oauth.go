package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oceanpet/api/internal/application/auth"
	"github.com/oceanpet/api/internal/infrastructure/oauth"
)

const stateCookie = "oauth_state"

// OAuthHandler drives the browser-redirect login flow. The app opens the
// authorize URL in a system browser; the callback hands the session back to
// the app through its custom URL scheme.
type OAuthHandler struct {
	svc            auth.Service
	providers      map[string]oauth.Provider
	mobileRedirect string // e.g. "oceanpet://login"
}

func NewOAuthHandler(svc auth.Service, providers map[string]oauth.Provider, mobileRedirect string) *OAuthHandler {
	return &OAuthHandler{svc: svc, providers: providers, mobileRedirect: mobileRedirect}
}

// Redirect sends the browser to the provider's consent screen.
func (h *OAuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	p, ok := h.providers[chi.URLParam(r, "provider")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown provider")
		return
	}

	state, err := newState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback completes the flow and bounces the token into the app.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	p, ok := h.providers[chi.URLParam(r, "provider")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown provider")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		h.redirectApp(w, r, url.Values{"error": {"state_mismatch"}})
		return
	}
	// The state is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectApp(w, r, url.Values{"error": {"access_denied"}})
		return
	}

	profile, err := p.Exchange(r.Context(), code)
	if err != nil {
		h.redirectApp(w, r, url.Values{"error": {"exchange_failed"}})
		return
	}
	sess, err := h.svc.LoginWithProfile(r.Context(), profile)
	if err != nil {
		h.redirectApp(w, r, url.Values{"error": {"login_failed"}})
		return
	}
	h.redirectApp(w, r, url.Values{"token": {sess.Token}})
}

func (h *OAuthHandler) redirectApp(w http.ResponseWriter, r *http.Request, params url.Values) {
	http.Redirect(w, r, h.mobileRedirect+"?"+params.Encode(), http.StatusTemporaryRedirect)
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
