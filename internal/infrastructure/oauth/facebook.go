package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oceanpet/api/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email"

type facebookProvider struct {
	cfg        *oauth2.Config
	profileURL string
}

// NewFacebook builds the Facebook redirect-flow provider.
func NewFacebook(appID, appSecret, callbackURL string) Provider {
	return &facebookProvider{
		cfg: &oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"email"},
			Endpoint:     facebook.Endpoint,
		},
		profileURL: facebookProfileURL,
	}
}

func (f *facebookProvider) Name() string { return domain.ProviderFacebook }

func (f *facebookProvider) AuthCodeURL(state string) string {
	return f.cfg.AuthCodeURL(state)
}

func (f *facebookProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("facebook code exchange failed: %w", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.profileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode facebook profile: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("facebook profile missing id: %w", domain.ErrUnauthorized)
	}
	// Facebook may withhold the email; fall back to the synthetic address the
	// mobile app already expects for such accounts.
	email := info.Email
	if email == "" {
		email = fmt.Sprintf("%s@facebook.com", info.ID)
	}
	return &Profile{
		Provider: domain.ProviderFacebook,
		Subject:  info.ID,
		Email:    email,
		Name:     info.Name,
	}, nil
}
