package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/oceanpet/api/internal/domain"
)

// IdentityRepo manages uniqueness claims. PK: provider, SK: subject.
// A claim maps (provider, subject), or ("email", address), to a user_id.
// Claim is conditional on the row not existing, so two concurrent creators of
// the same identity resolve to exactly one surviving row.
type IdentityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewIdentityRepo(client *dynamodb.Client, tableName string) *IdentityRepo {
	return &IdentityRepo{client: client, tableName: tableName}
}

// Claim inserts the identity row if and only if it does not exist.
// Returns domain.ErrConflict when another caller holds the claim already.
func (r *IdentityRepo) Claim(ctx context.Context, id *domain.Identity) error {
	item, err := attributevalue.MarshalMap(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(provider)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("identity already claimed: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *IdentityRepo) Get(ctx context.Context, provider, subject string) (*domain.Identity, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("provider", provider, "subject", subject),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	var id domain.Identity
	if err := attributevalue.UnmarshalMap(out.Item, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Release removes a claim. Used to roll back when the user row write fails
// after the claim succeeded.
func (r *IdentityRepo) Release(ctx context.Context, provider, subject string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("provider", provider, "subject", subject),
	})
	return err
}
