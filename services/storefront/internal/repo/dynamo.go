package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"shopfront/shared/pkg/models"
)

// DynamoAPI is the subset of *dynamodb.Client the stores need.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	ListTables(ctx context.Context, in *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

type UsersDynamo struct {
	DB    DynamoAPI
	Table string
}

func (r *UsersDynamo) Find(ctx context.Context, email string) (models.User, bool, error) {
	out, err := r.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.Table),
		Key:            map[string]types.AttributeValue{"email": &types.AttributeValueMemberS{Value: email}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return models.User{}, false, fmt.Errorf("getting user: %w", err)
	}
	if out.Item == nil {
		return models.User{}, false, nil
	}
	var u models.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return models.User{}, false, fmt.Errorf("unmarshaling user: %w", err)
	}
	return u, true, nil
}

// Create relies on a conditional put instead of a read-then-write.
func (r *UsersDynamo) Create(ctx context.Context, u models.User) error {
	av, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.Table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("putting user: %w", err)
	}
	return nil
}

type OrdersDynamo struct {
	DB    DynamoAPI
	Table string
}

func (r *OrdersDynamo) Append(ctx context.Context, o models.Order) error {
	av, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshaling order: %w", err)
	}
	if _, err := r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.Table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("putting order: %w", err)
	}
	return nil
}

// PingDynamo is the startup connectivity probe used by auto selection.
func PingDynamo(ctx context.Context, db DynamoAPI) error {
	_, err := db.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	return err
}
