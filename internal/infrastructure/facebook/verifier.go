package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oceanpet/api/internal/domain"
)

const graphMeURL = "https://graph.facebook.com/me"

// Payload holds the profile fields fetched from the Facebook Graph API.
type Payload struct {
	ID    string
	Email string // may be empty; Facebook accounts are not required to expose one
	Name  string
}

// Verifier resolves a Facebook access token to a user profile via the Graph API.
type Verifier struct {
	httpClient *http.Client
	baseURL    string
}

func NewVerifier() *Verifier {
	return &Verifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    graphMeURL,
	}
}

// NewVerifierWithBaseURL is used by tests to point at a stub Graph endpoint.
func NewVerifierWithBaseURL(baseURL string) *Verifier {
	v := NewVerifier()
	v.baseURL = baseURL
	return v
}

// Verify fetches /me for the given access token. Any Graph-side rejection is
// surfaced as domain.ErrUnauthorized; the raw provider error is never
// propagated to callers.
func (v *Verifier) Verify(ctx context.Context, accessToken string) (*Payload, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)
	q.Set("fields", "id,name,email")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook graph request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode facebook response: %w", err)
	}
	if body.Error != nil || body.ID == "" {
		return nil, fmt.Errorf("invalid facebook token: %w", domain.ErrUnauthorized)
	}
	return &Payload{ID: body.ID, Email: body.Email, Name: body.Name}, nil
}
