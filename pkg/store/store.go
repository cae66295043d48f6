// Package store persists reminder records in DynamoDB, keyed by userId
// (partition) and id (sort).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
)

// DynamoDBAPI defines the interface for DynamoDB operations
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store provides CRUD over the reminders table. All operations are remote
// calls; failures surface wrapped in reminder.ErrStore.
type Store struct {
	client    DynamoDBAPI
	tableName string
}

// New creates a reminder store backed by the given table.
func New(cfg aws.Config, tableName string) *Store {
	return &Store{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}
}

// NewWithClient creates a store with an explicit client, for tests and CLIs.
func NewWithClient(client DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

func key(userID, id string) map[string]dynamodbtypes.AttributeValue {
	return map[string]dynamodbtypes.AttributeValue{
		"userId": &dynamodbtypes.AttributeValueMemberS{Value: userID},
		"id":     &dynamodbtypes.AttributeValueMemberS{Value: id},
	}
}

// List returns all reminders belonging to a user. Ordering follows the sort
// key; callers must not rely on it.
func (s *Store) List(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":userId": &dynamodbtypes.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query reminders: %v", reminder.ErrStore, err)
	}

	reminders := make([]reminder.Reminder, 0, len(result.Items))
	for _, item := range result.Items {
		var rec reminder.Reminder
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			continue // Skip malformed records
		}
		reminders = append(reminders, rec)
	}

	return reminders, nil
}

// Get returns a single reminder, or reminder.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, userID, id string) (*reminder.Reminder, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(userID, id),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get reminder: %v", reminder.ErrStore, err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s/%s", reminder.ErrNotFound, userID, id)
	}

	var rec reminder.Reminder
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal reminder: %v", reminder.ErrStore, err)
	}

	return &rec, nil
}

// Put upserts a reminder record.
func (s *Store) Put(ctx context.Context, rec *reminder.Reminder) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal reminder: %v", reminder.ErrStore, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: put reminder: %v", reminder.ErrStore, err)
	}

	return nil
}

// Delete removes a reminder record. Deleting an absent record is not an
// error; both the user-delete and fire paths rely on that.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(userID, id),
	})
	if err != nil {
		return fmt.Errorf("%w: delete reminder: %v", reminder.ErrStore, err)
	}

	return nil
}

// IsNotFound reports whether err marks an absent record.
func IsNotFound(err error) bool {
	return errors.Is(err, reminder.ErrNotFound)
}
