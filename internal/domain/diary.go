package domain

import "time"

// TrashRetention is how long a soft-deleted entry stays recoverable.
const TrashRetention = 30 * 24 * time.Hour

type DiaryEntry struct {
	EntryID      string     `json:"id" dynamodbav:"entry_id"`
	UserID       string     `json:"user_id" dynamodbav:"user_id"`
	FolderID     *string    `json:"folder_id" dynamodbav:"folder_id"`
	Title        string     `json:"title" dynamodbav:"title"`
	Description  string     `json:"description" dynamodbav:"description"`
	Category     string     `json:"category" dynamodbav:"category"`
	EntryDate    string     `json:"entry_date" dynamodbav:"entry_date"` // YYYY-MM-DD
	EntryTime    string     `json:"entry_time" dynamodbav:"entry_time"` // HH:MM
	BgColor      string     `json:"bg_color" dynamodbav:"bg_color"`
	HasPassword  bool       `json:"has_password" dynamodbav:"has_password"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Images       []string   `json:"images" dynamodbav:"images"` // ordered image URLs
	Deleted      bool       `json:"-" dynamodbav:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// TrashedEntry is a DiaryEntry with the remaining retention window attached.
type TrashedEntry struct {
	DiaryEntry
	DaysLeft int `json:"days_left"`
}

type CreateEntryRequest struct {
	FolderID    *string  `json:"folder_id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	EntryDate   string   `json:"entry_date" validate:"required"`
	EntryTime   string   `json:"entry_time"`
	BgColor     string   `json:"bg_color"`
	Password    *string  `json:"password"`
	Images      []string `json:"images"`
}

type UpdateEntryRequest struct {
	FolderID    *string `json:"folder_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	BgColor     *string `json:"bg_color"`
}
