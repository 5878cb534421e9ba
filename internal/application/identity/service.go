package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/infrastructure/oauth"
	"github.com/oceanpet/api/internal/pkg/id"
)

// ClaimProviderEmail is the synthetic provider name under which email
// addresses are claimed. Claiming the address alongside the federated subject
// is what makes email uniqueness global across local and federated accounts.
const ClaimProviderEmail = "email"

// ClaimStore is the uniqueness authority. Claim must be atomic: of two
// concurrent claims for the same (provider, subject) exactly one succeeds and
// the other observes domain.ErrConflict.
type ClaimStore interface {
	Claim(ctx context.Context, id *domain.Identity) error
	Get(ctx context.Context, provider, subject string) (*domain.Identity, error)
	Release(ctx context.Context, provider, subject string) error
}

type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Service reconciles external identities against the account base. All account
// creation funnels through it so the claim table stays the single source of
// truth for who owns an email address or a federated subject.
type Service interface {
	// FindOrCreate resolves a federated profile to its account, provisioning
	// one on first login. The second return reports whether the account was
	// created by this call.
	FindOrCreate(ctx context.Context, p *oauth.Profile) (*domain.User, bool, error)
	// CreateLocal provisions an unverified password account. The email claim
	// fails with domain.ErrConflict when the address is already taken.
	CreateLocal(ctx context.Context, email, name, passwordHash string) (*domain.User, error)
}

type service struct {
	claims ClaimStore
	users  UserStore
}

type ServiceDeps struct {
	Claims ClaimStore
	Users  UserStore
}

func NewService(deps ServiceDeps) Service {
	return &service{claims: deps.Claims, users: deps.Users}
}

func (s *service) FindOrCreate(ctx context.Context, p *oauth.Profile) (*domain.User, bool, error) {
	ident, err := s.claims.Get(ctx, p.Provider, p.Subject)
	if err == nil {
		u, err := s.loadEnabled(ctx, ident.UserID)
		return u, false, err
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	// First login for this subject. Claim the email before the subject so a
	// federated account can never shadow an address someone else registered.
	userID := id.New()
	emailClaim := &domain.Identity{Provider: ClaimProviderEmail, Subject: p.Email, UserID: userID}
	if err := s.claims.Claim(ctx, emailClaim); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return nil, false, err
		}
		// Either a concurrent login for the same subject won, or the address
		// belongs to a different account. The subject claim tells the two
		// apart.
		u, lerr := s.lostRace(ctx, p.Provider, p.Subject)
		return u, false, lerr
	}

	subjectClaim := &domain.Identity{Provider: p.Provider, Subject: p.Subject, UserID: userID}
	if err := s.claims.Claim(ctx, subjectClaim); err != nil {
		s.release(ctx, emailClaim)
		if !errors.Is(err, domain.ErrConflict) {
			return nil, false, err
		}
		u, lerr := s.lostRace(ctx, p.Provider, p.Subject)
		return u, false, lerr
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:     userID,
		Email:      p.Email,
		Provider:   p.Provider,
		ProviderID: p.Subject,
		Name:       p.Name,
		Verified:   true,
		Enable:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		s.release(ctx, emailClaim)
		s.release(ctx, subjectClaim)
		return nil, false, err
	}
	return u, true, nil
}

func (s *service) CreateLocal(ctx context.Context, email, name, passwordHash string) (*domain.User, error) {
	userID := id.New()
	emailClaim := &domain.Identity{Provider: ClaimProviderEmail, Subject: email, UserID: userID}
	if err := s.claims.Claim(ctx, emailClaim); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       userID,
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     domain.ProviderLocal,
		Name:         name,
		Verified:     false,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		s.release(ctx, emailClaim)
		return nil, err
	}
	return u, nil
}

// lostRace resolves the account a concurrent caller created. The winner's
// subject claim and user row land after its email claim, so the reads are
// retried briefly before concluding the address belongs to another account.
func (s *service) lostRace(ctx context.Context, provider, subject string) (*domain.User, error) {
	for i := 0; i < 5; i++ {
		ident, err := s.claims.Get(ctx, provider, subject)
		if err == nil {
			u, err := s.loadEnabled(ctx, ident.UserID)
			if err == nil || !errors.Is(err, domain.ErrNotFound) {
				return u, err
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
}

func (s *service) loadEnabled(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Enable || u.DeletedAt != nil {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return u, nil
}

func (s *service) release(ctx context.Context, c *domain.Identity) {
	if err := s.claims.Release(ctx, c.Provider, c.Subject); err != nil {
		slog.Warn("failed to release identity claim", "provider", c.Provider, "subject", c.Subject, "err", err)
	}
}
