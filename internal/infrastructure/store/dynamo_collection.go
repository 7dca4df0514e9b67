package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoCollection.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoCollection stores items in a DynamoDB table whose partition key is keyAttr (type S).
// Items are marshalled with their dynamodbav tags.
type DynamoCollection[T any] struct {
	client    DynamoAPI
	tableName string
	keyAttr   string
}

func NewDynamoCollection[T any](client DynamoAPI, tableName, keyAttr string) *DynamoCollection[T] {
	return &DynamoCollection[T]{
		client:    client,
		tableName: tableName,
		keyAttr:   keyAttr,
	}
}

// NewDynamoClient builds a DynamoDB client from the default AWS credential chain.
// A non-empty endpoint points the client at a local DynamoDB.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// Put writes the item with a conditional expression so an existing key is never overwritten
func (c *DynamoCollection[T]) Put(ctx context.Context, key string, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	av[c.keyAttr] = &types.AttributeValueMemberS{Value: key}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": c.keyAttr,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

// Get retrieves a single item by key
func (c *DynamoCollection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var item T

	result, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			c.keyAttr: &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return item, false, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return item, false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return item, false, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return item, true, nil
}

// Scan reads every page of the table
func (c *DynamoCollection[T]) Scan(ctx context.Context) ([]T, error) {
	paginator := dynamodb.NewScanPaginator(c.client, &dynamodb.ScanInput{
		TableName:      aws.String(c.tableName),
		ConsistentRead: aws.Bool(true),
	})

	var items []T
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", c.tableName, err)
		}

		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, batch...)
	}

	return items, nil
}
