package worker

import (
	"context"
	"homeserve-backend/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{}) { m.Called(args) }
func (m *MockLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Info(args ...interface{}) { m.Called(args) }
func (m *MockLogger) Infof(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Warn(args ...interface{}) { m.Called(args) }
func (m *MockLogger) Warnf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Error(args ...interface{}) { m.Called(args) }
func (m *MockLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Fatal(args ...interface{}) { m.Called(args) }
func (m *MockLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }

func newMockLogger() *MockLogger {
	l := &MockLogger{}
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(method, mock.Anything).Return().Maybe()
		l.On(method+"f", mock.Anything, mock.Anything).Return().Maybe()
	}
	return l
}

type MockDatabaseClient struct {
	mock.Mock
}

func (m *MockDatabaseClient) GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error {
	return m.Called(ctx, config, result).Error(0)
}

func (m *MockDatabaseClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	return m.Called(ctx, tableName, item).Error(0)
}

func (m *MockDatabaseClient) PutItemWithCondition(ctx context.Context, tableName string, item interface{}, cond models.WriteCondition) error {
	return m.Called(ctx, tableName, item, cond).Error(0)
}

func (m *MockDatabaseClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}, result interface{}) error {
	return m.Called(ctx, tableName, key, keyValue, updates, result).Error(0)
}

func (m *MockDatabaseClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	return m.Called(ctx, tableName, key, value).Error(0)
}

func (m *MockDatabaseClient) QueryByIndex(ctx context.Context, query models.IndexQuery, results interface{}) error {
	return m.Called(ctx, query, results).Error(0)
}

func (m *MockDatabaseClient) BatchGetItems(ctx context.Context, tableName, keyName string, keyValues []string, results interface{}) error {
	return m.Called(ctx, tableName, keyName, keyValues, results).Error(0)
}

func (m *MockDatabaseClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	return m.Called(ctx, tableName, results).Error(0)
}

func (m *MockDatabaseClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockDatabaseClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, tableName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DescribeTableOutput), args.Error(1)
}

func (m *MockDatabaseClient) TableExists(ctx context.Context, tableName string) (bool, error) {
	args := m.Called(ctx, tableName)
	return args.Bool(0), args.Error(1)
}

type MockJobRefresher struct {
	mock.Mock
}

func (m *MockJobRefresher) WatchedStaff() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockJobRefresher) RefreshAvailableJobs(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
