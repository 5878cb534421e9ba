package http

import (
	"context"

	"github.com/oceanpet/api/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// IdentityRepository is the minimal interface the router requires from the
// identity claim store.
type IdentityRepository interface {
	Claim(ctx context.Context, id *domain.Identity) error
	Get(ctx context.Context, provider, subject string) (*domain.Identity, error)
	Release(ctx context.Context, provider, subject string) error
}

// OTPRepository is the minimal interface the router requires from the
// one-time passcode store.
type OTPRepository interface {
	Put(ctx context.Context, o *domain.EmailOTP) error
	Get(ctx context.Context, email string) (*domain.EmailOTP, error)
	Delete(ctx context.Context, email string) error
}

// FolderRepository is the minimal interface the router requires from a folder store.
type FolderRepository interface {
	Put(ctx context.Context, f *domain.Folder) error
	ListByUser(ctx context.Context, userID string) ([]domain.Folder, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// DiaryRepository is the minimal interface the router requires from a diary store.
type DiaryRepository interface {
	Put(ctx context.Context, e *domain.DiaryEntry) error
	Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DiaryEntry, error)
	ListTrashedByUser(ctx context.Context, userID string) ([]domain.DiaryEntry, error)
	Update(ctx context.Context, entryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, entryID string) error
}
