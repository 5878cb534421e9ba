package oauth

import (
	"context"
)

// Profile is the normalized identity returned by every provider. It carries
// identity facts only; user creation and session issuance happen elsewhere.
type Profile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// Provider is the browser-redirect OAuth contract. One implementation per
// external identity provider, all invoked uniformly by the transport layer.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "facebook").
	Name() string

	// AuthCodeURL returns the provider's authorization URL for the given
	// anti-CSRF state value.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for provider credentials and
	// returns the normalized profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}
