package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oceanpet/api/internal/application/identity"
	"github.com/oceanpet/api/internal/application/otp"
	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/infrastructure/facebook"
	"github.com/oceanpet/api/internal/infrastructure/google"
	"github.com/oceanpet/api/internal/infrastructure/oauth"
)

type tokenSigner interface {
	Sign(userID, email string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type facebookVerifier interface {
	Verify(ctx context.Context, accessToken string) (*facebook.Payload, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Session is the result of any successful authentication path.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type Service interface {
	// Register provisions an unverified local account and mails a one-time
	// code. No session is issued until the code is verified.
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	// VerifyOTP consumes the code and activates the account. The caller is
	// logged in immediately: a session is issued on success.
	VerifyOTP(ctx context.Context, email, code string) (*Session, error)
	ResendOTP(ctx context.Context, email string) error
	// Login authenticates a verified local account by password.
	Login(ctx context.Context, email, password string) (*Session, error)
	// LoginWithGoogle authenticates with a Google ID token from a native app.
	LoginWithGoogle(ctx context.Context, idToken string) (*Session, error)
	// LoginWithFacebook authenticates with a Facebook access token from a
	// native app.
	LoginWithFacebook(ctx context.Context, accessToken string) (*Session, error)
	// LoginWithProfile turns an already-verified federated profile into a
	// session. Used by the browser-redirect callback flow.
	LoginWithProfile(ctx context.Context, p *oauth.Profile) (*Session, error)
}

type service struct {
	identities identity.Service
	otps       otp.Service
	users      userStore
	signer     tokenSigner
	google     googleVerifier
	facebook   facebookVerifier
}

type ServiceDeps struct {
	Identities identity.Service
	OTPs       otp.Service
	Users      userStore
	Signer     tokenSigner
	Google     googleVerifier
	Facebook   facebookVerifier
}

func NewService(deps ServiceDeps) Service {
	return &service{
		identities: deps.Identities,
		otps:       deps.OTPs,
		users:      deps.Users,
		signer:     deps.Signer,
		google:     deps.Google,
		facebook:   deps.Facebook,
	}
}

func (s *service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.identities.CreateLocal(ctx, req.Email, req.Name, string(hash))
	if err != nil {
		return nil, err
	}
	if _, err := s.otps.Issue(ctx, u.Email, u.UserID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*Session, error) {
	userID, err := s.otps.Verify(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"verified": true}); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	_, err := s.otps.Reissue(ctx, email)
	return err
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Do not reveal whether the address is registered.
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if u.Provider != domain.ProviderLocal {
		// A federated account has no password. Answering differently here
		// would reveal which provider the address belongs to.
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		// Checked before the password: an unconfirmed account answers the
		// same way no matter what was typed.
		return nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Enable || u.DeletedAt != nil {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issue(u)
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string) (*Session, error) {
	p, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.LoginWithProfile(ctx, &oauth.Profile{
		Provider: domain.ProviderGoogle,
		Subject:  p.Sub,
		Email:    p.Email,
		Name:     p.Name,
	})
}

func (s *service) LoginWithFacebook(ctx context.Context, accessToken string) (*Session, error) {
	p, err := s.facebook.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	email := p.Email
	if email == "" {
		// Facebook accounts may withhold the email scope. A stable synthetic
		// address keeps the account model uniform.
		email = fmt.Sprintf("%s@facebook.com", p.ID)
	}
	return s.LoginWithProfile(ctx, &oauth.Profile{
		Provider: domain.ProviderFacebook,
		Subject:  p.ID,
		Email:    email,
		Name:     p.Name,
	})
}

func (s *service) LoginWithProfile(ctx context.Context, p *oauth.Profile) (*Session, error) {
	u, _, err := s.identities.FindOrCreate(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) issue(u *domain.User) (*Session, error) {
	token, err := s.signer.Sign(u.UserID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
