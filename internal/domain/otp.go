package domain

// EmailOTP is a short-lived verification code keyed by email.
// At most one live record exists per email; issuing a new code overwrites the
// previous one. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type EmailOTP struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"-" dynamodbav:"code"`
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
