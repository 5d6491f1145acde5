package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/mock"
)

// mockDB is a testify mock of the DB interface so the domain services can be
// tested without a live DynamoDB endpoint.
type mockDB struct {
	mock.Mock
}

var _ DB = (*mockDB)(nil)

func (m *mockDB) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit)
	items, _ := args.Get(0).([]map[string]types.AttributeValue)
	return items, args.Error(1)
}

func (m *mockDB) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, indexName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit)
	items, _ := args.Get(0).([]map[string]types.AttributeValue)
	return items, args.Error(1)
}

func (m *mockDB) QueryItemsWithOptions(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit, latestFirst)
	items, _ := args.Get(0).([]map[string]types.AttributeValue)
	return items, args.Error(1)
}

func (m *mockDB) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, key)
	item, _ := args.Get(0).(map[string]types.AttributeValue)
	return item, args.Error(1)
}

func (m *mockDB) PutItem(ctx context.Context, tableName string, item interface{}) error {
	args := m.Called(ctx, tableName, item)
	return args.Error(0)
}

func (m *mockDB) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttribute string) error {
	args := m.Called(ctx, tableName, item, keyAttribute)
	return args.Error(0)
}

func (m *mockDB) UpdateItem(ctx context.Context, tableName, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	attrs, _ := args.Get(0).(map[string]types.AttributeValue)
	return attrs, args.Error(1)
}

func (m *mockDB) UpdateItemWithCondition(ctx context.Context, tableName, updateExpression, conditionExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, updateExpression, conditionExpression, key, expressionAttributeValues, expressionAttributeNames)
	attrs, _ := args.Get(0).(map[string]types.AttributeValue)
	return attrs, args.Error(1)
}

func (m *mockDB) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	args := m.Called(ctx, tableName, key)
	return args.Error(0)
}

func (m *mockDB) BatchWriteItems(ctx context.Context, tableName string, writeRequests []types.WriteRequest) error {
	args := m.Called(ctx, tableName, writeRequests)
	return args.Error(0)
}

func (m *mockDB) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	args := m.Called(ctx, tableName, excludeFields, result)
	return args.Error(0)
}

// mustMarshal converts a model value into the attribute-value map the store
// would return for it.
func mustMarshal(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("failed to marshal test item: %v", err)
	}
	return item
}

// attrString pulls a string attribute out of an expression value map.
func attrString(values map[string]types.AttributeValue, name string) string {
	if s, ok := values[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
