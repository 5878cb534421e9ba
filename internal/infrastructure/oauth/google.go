package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oceanpet/api/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleProvider struct {
	cfg         *oauth2.Config
	userinfoURL string
}

// NewGoogle builds the Google redirect-flow provider.
func NewGoogle(clientID, clientSecret, callbackURL string) Provider {
	return &googleProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userinfoURL: googleUserinfoURL,
	}
}

func (g *googleProvider) Name() string { return domain.ProviderGoogle }

func (g *googleProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *googleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google userinfo: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google userinfo missing subject: %w", domain.ErrUnauthorized)
	}
	return &Profile{
		Provider: domain.ProviderGoogle,
		Subject:  info.ID,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
