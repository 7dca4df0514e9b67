package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo is an in-memory table keyed by the "id" attribute that pages Scan results.
type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	pageSize int
	putErr   error
	scanErr  error
	scans    int
}

func newFakeDynamo(pageSize int) *fakeDynamo {
	return &fakeDynamo{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: pageSize,
	}
}

func keyOf(item map[string]types.AttributeValue) string {
	if v, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	key := keyOf(params.Item)
	if _, exists := f.items[key]; exists && params.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(params.Key)]}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans++
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if params.ExclusiveStartKey != nil {
		last := keyOf(params.ExclusiveStartKey)
		start = sort.SearchStrings(keys, last) + 1
	}
	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &dynamodb.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: keys[end-1]},
		}
	}
	return out, nil
}

func TestDynamoCollection_PutGet(t *testing.T) {
	fake := newFakeDynamo(10)
	c := NewDynamoCollection[testItem](fake, "Items", "id")
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", testItem{ID: "a", Name: "first", Qty: 3}))

	item, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, testItem{ID: "a", Name: "first", Qty: 3}, item)

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDynamoCollection_PutDuplicateKey(t *testing.T) {
	fake := newFakeDynamo(10)
	c := NewDynamoCollection[testItem](fake, "Items", "id")
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", testItem{ID: "a"}))
	err := c.Put(ctx, "a", testItem{ID: "a"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDynamoCollection_PutError(t *testing.T) {
	fake := newFakeDynamo(10)
	fake.putErr = errors.New("throttled")
	c := NewDynamoCollection[testItem](fake, "Items", "id")

	err := c.Put(context.Background(), "a", testItem{ID: "a"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "throttled")
}

func TestDynamoCollection_ScanAllPages(t *testing.T) {
	fake := newFakeDynamo(2)
	c := NewDynamoCollection[testItem](fake, "Items", "id")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("item-%d", i)
		require.NoError(t, c.Put(ctx, id, testItem{ID: id, Qty: i}))
	}

	items, err := c.Scan(ctx)

	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, 3, fake.scans)
}

func TestDynamoCollection_ScanError(t *testing.T) {
	fake := newFakeDynamo(2)
	fake.scanErr = errors.New("access denied")
	c := NewDynamoCollection[testItem](fake, "Items", "id")

	items, err := c.Scan(context.Background())

	assert.Error(t, err)
	assert.Nil(t, items)
}
