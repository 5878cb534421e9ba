package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/oceanpet/api/internal/domain"
)

// FolderRepo provides typed DynamoDB operations for the folders table.
type FolderRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFolderRepo(client *dynamodb.Client, tableName string) *FolderRepo {
	return &FolderRepo{client: client, tableName: tableName}
}

func (r *FolderRepo) Put(ctx context.Context, f *domain.Folder) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal folder: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *FolderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Folder, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var folders []domain.Folder
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// DeleteByUser removes every folder owned by userID. Individual delete
// failures are logged and the first one is returned after the sweep finishes.
func (r *FolderRepo) DeleteByUser(ctx context.Context, userID string) error {
	folders, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	var firstErr error
	for _, f := range folders {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       strKey("folder_id", f.FolderID),
		})
		if err != nil {
			slog.Warn("failed to delete folder during sync", "folder_id", f.FolderID, "user_id", userID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
