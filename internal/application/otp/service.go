package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/infrastructure/smtp"
)

// Store is the minimal persistence contract for one-time passcodes. The
// DynamoDB implementation backs production; an in-memory implementation backs
// tests. Put overwrites any existing record for the same email.
type Store interface {
	Put(ctx context.Context, o *domain.EmailOTP) error
	Get(ctx context.Context, email string) (*domain.EmailOTP, error)
	Delete(ctx context.Context, email string) error
}

type userGetter interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service interface {
	// Issue generates a fresh 6-digit code for email, superseding any prior
	// unconsumed code, and mails it. A mail failure does not fail issuance:
	// the stored code stays valid and the returned code allows operational
	// recovery.
	Issue(ctx context.Context, email, userID string) (string, error)
	// Verify checks the submitted code. A missing record yields ErrNotFound,
	// an expired one ErrOTPExpired (the record is discarded), a wrong code
	// ErrOTPMismatch (the record is kept so the user can retry within the
	// window). On success the record is consumed and the associated user id
	// returned.
	Verify(ctx context.Context, email, code string) (string, error)
	// Reissue is Issue for an already-registered address. It fails with
	// ErrNotFound for unknown emails and ErrBadRequest for accounts that are
	// already verified.
	Reissue(ctx context.Context, email string) (string, error)
}

type service struct {
	store  Store
	users  userGetter
	mailer smtp.Mailer
	expiry time.Duration
}

type ServiceDeps struct {
	Store  Store
	Users  userGetter
	Mailer smtp.Mailer
	Expiry time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:  deps.Store,
		users:  deps.Users,
		mailer: deps.Mailer,
		expiry: deps.Expiry,
	}
}

func (s *service) Issue(ctx context.Context, email, userID string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	rec := &domain.EmailOTP{
		Email:     email,
		Code:      code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.expiry).Unix(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return "", err
	}
	// Fail-open on notification: the code is already stored and valid, a mail
	// outage must not invalidate the registration in flight.
	if err := s.mailer.SendEmail(email, "Ocean Pet verification code",
		fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.expiry.Minutes()))); err != nil {
		slog.Warn("failed to send OTP email", "email", email, "err", err)
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, email, code string) (string, error) {
	rec, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("no pending code for email: %w", domain.ErrNotFound)
		}
		// A store failure is not "no code"; let it surface as internal.
		return "", err
	}
	if time.Now().Unix() > rec.ExpiresAt {
		if err := s.store.Delete(ctx, email); err != nil {
			slog.Warn("failed to discard expired OTP", "email", email, "err", err)
		}
		return "", fmt.Errorf("code expired: %w", domain.ErrOTPExpired)
	}
	if rec.Code != code {
		// Keep the record: the user may retry within the window.
		return "", fmt.Errorf("code does not match: %w", domain.ErrOTPMismatch)
	}
	if err := s.store.Delete(ctx, email); err != nil {
		return "", err
	}
	return rec.UserID, nil
}

func (s *service) Reissue(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("email not registered: %w", domain.ErrNotFound)
		}
		return "", err
	}
	if u.Verified {
		return "", fmt.Errorf("account already verified: %w", domain.ErrBadRequest)
	}
	return s.Issue(ctx, email, u.UserID)
}

// generateCode returns a uniformly random 6-digit decimal string in
// [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
