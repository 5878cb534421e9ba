package domain

import "time"

type Folder struct {
	FolderID  string    `json:"id" dynamodbav:"folder_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Icon      string    `json:"icon" dynamodbav:"icon"`
	Color     string    `json:"color" dynamodbav:"color"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type SyncFoldersRequest struct {
	SelectedPets []string `json:"selected_pets" validate:"required"`
}
