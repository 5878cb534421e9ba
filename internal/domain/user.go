package domain

import "time"

// Auth providers. A user row belongs to exactly one provider; the same email
// may not be registered twice, even across providers.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Provider     string     `json:"provider" dynamodbav:"provider"` // "local" | "google" | "facebook"
	ProviderID   string     `json:"-" dynamodbav:"provider_id"`     // federated subject id, empty for local
	Name         string     `json:"name" dynamodbav:"name"`
	AvatarURL    *string    `json:"avatar_url" dynamodbav:"avatar_url"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	Enable       bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Identity is an uniqueness claim row. It is the authority for "one row per
// (provider, subject)" and "one row per email": GSIs cannot enforce uniqueness,
// conditional puts on this table can.
type Identity struct {
	Provider string `dynamodbav:"provider"` // PK: "local" | "google" | "facebook" | "email"
	Subject  string `dynamodbav:"subject"`  // SK: provider subject id, or the email for "email" claims
	UserID   string `dynamodbav:"user_id"`
}
