package worker

import (
	"context"
	"errors"
	"homeserve-backend/models"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WorkerTestSuite struct {
	suite.Suite
	config       *models.Config
	workerConfig *models.WorkerConfig
	db           *MockDatabaseClient
	jobs         *MockJobRefresher
	worker       *Worker
}

func (suite *WorkerTestSuite) SetupTest() {
	dir := suite.T().TempDir()
	suite.config = &models.Config{
		AppEnv:                       "test",
		DynamoDBTablePrefix:          "test",
		Tables:                       []string{"packages", "bookings"},
		AvailableJobsRefreshInterval: time.Second,
	}
	suite.workerConfig = NewWorkerConfig(suite.config)
	suite.workerConfig.RetryDelay = time.Millisecond
	suite.workerConfig.MaxRetries = 2
	suite.workerConfig.LockFilePath = filepath.Join(dir, "infra.lock")
	suite.workerConfig.StatusFilePath = filepath.Join(dir, "status.json")
	suite.workerConfig.DryRun = false
	suite.workerConfig.SkipProvisioning = false

	suite.db = &MockDatabaseClient{}
	suite.jobs = &MockJobRefresher{}

	var err error
	suite.worker, err = NewWorker(suite.config, suite.workerConfig, suite.db, suite.jobs, newMockLogger())
	suite.Require().NoError(err)
}

func TestWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func tableNamed(name string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.CreateTableInput) bool {
		return aws.ToString(in.TableName) == name
	})
}

func (suite *WorkerTestSuite) status() *models.ExecutionResult {
	status, err := suite.worker.GetStatus()
	suite.Require().NoError(err)
	return status
}

func (suite *WorkerTestSuite) TestNewWorkerConfig() {
	cfg := NewWorkerConfig(&models.Config{AppEnv: "prod", AvailableJobsRefreshInterval: 30 * time.Second, Tables: []string{"bookings"}})

	assert.Equal(suite.T(), "@every 30s", cfg.RefreshSchedule)
	assert.Equal(suite.T(), "/tmp/homeserve-status-prod.json", cfg.StatusFilePath)
	assert.Equal(suite.T(), "/tmp/homeserve-infrastructure-prod.lock", cfg.LockFilePath)
	assert.Equal(suite.T(), []string{"bookings"}, cfg.RequiredTables)
}

func (suite *WorkerTestSuite) TestNewWorkerValidation() {
	_, err := NewWorker(nil, suite.workerConfig, suite.db, suite.jobs, newMockLogger())
	assert.EqualError(suite.T(), err, "config cannot be nil")

	_, err = NewWorker(suite.config, suite.workerConfig, suite.db, nil, newMockLogger())
	assert.EqualError(suite.T(), err, "job refresher cannot be nil")

	bad := *suite.workerConfig
	bad.RequiredTables = []string{"users"}
	_, err = NewWorker(suite.config, &bad, suite.db, suite.jobs, newMockLogger())
	assert.ErrorContains(suite.T(), err, `no schema defined for required table "users"`)

	bad = *suite.workerConfig
	bad.BackoffMultiplier = 0.5
	_, err = NewWorker(suite.config, &bad, suite.db, suite.jobs, newMockLogger())
	assert.Error(suite.T(), err)
}

func (suite *WorkerTestSuite) TestProvisionCreatesMissingTables() {
	suite.db.On("TableExists", mock.Anything, "test_packages").Return(true, nil).Once()
	suite.db.On("TableExists", mock.Anything, "test_bookings").Return(false, nil).Once()
	suite.db.On("CreateTable", mock.Anything, tableNamed("test_bookings")).Return(nil).Once()

	err := suite.worker.Provision(context.Background())

	require.NoError(suite.T(), err)
	suite.db.AssertExpectations(suite.T())
	suite.db.AssertNumberOfCalls(suite.T(), "CreateTable", 1)

	status := suite.status()
	assert.Equal(suite.T(), models.StatusCompleted, status.Status)
	assert.True(suite.T(), status.Success)
	assert.Equal(suite.T(), "test", status.Environment)
	require.Len(suite.T(), status.TablesReady, 2)
	assert.Equal(suite.T(), "test_packages", status.TablesReady[0].Name)
	assert.Equal(suite.T(), tableExists, status.TablesReady[0].Status)
	assert.Equal(suite.T(), tableCreated, status.TablesReady[1].Status)

	// lock is released afterwards
	assert.NoFileExists(suite.T(), suite.workerConfig.LockFilePath)
}

func (suite *WorkerTestSuite) TestProvisionTreatsConcurrentCreateAsExisting() {
	suite.db.On("TableExists", mock.Anything, mock.Anything).Return(false, nil)
	suite.db.On("CreateTable", mock.Anything, tableNamed("test_packages")).Return(nil)
	suite.db.On("CreateTable", mock.Anything, tableNamed("test_bookings")).
		Return(&smithy.GenericAPIError{Code: "ResourceInUseException", Message: "Table already exists"})

	require.NoError(suite.T(), suite.worker.Provision(context.Background()))

	status := suite.status()
	assert.Equal(suite.T(), tableExists, status.TablesReady[1].Status)
}

func (suite *WorkerTestSuite) TestProvisionDryRun() {
	suite.workerConfig.DryRun = true
	suite.db.On("TableExists", mock.Anything, mock.Anything).Return(false, nil)

	require.NoError(suite.T(), suite.worker.Provision(context.Background()))

	suite.db.AssertNotCalled(suite.T(), "CreateTable", mock.Anything, mock.Anything)
	status := suite.status()
	assert.Equal(suite.T(), tableSkipped, status.TablesReady[0].Status)
	assert.Equal(suite.T(), models.StatusCompleted, status.Status)
}

func (suite *WorkerTestSuite) TestProvisionRetriesThenSucceeds() {
	suite.db.On("TableExists", mock.Anything, "test_packages").Return(true, nil)
	suite.db.On("TableExists", mock.Anything, "test_bookings").Return(false, errors.New("throttled")).Once()
	suite.db.On("TableExists", mock.Anything, "test_bookings").Return(true, nil)

	require.NoError(suite.T(), suite.worker.Provision(context.Background()))

	status := suite.status()
	assert.Equal(suite.T(), models.StatusCompleted, status.Status)
	assert.Equal(suite.T(), 1, status.RetryCount)
	assert.Empty(suite.T(), status.ErrorMessage)
}

func (suite *WorkerTestSuite) TestProvisionFailsAfterMaxRetries() {
	suite.db.On("TableExists", mock.Anything, "test_packages").Return(true, nil)
	suite.db.On("TableExists", mock.Anything, "test_bookings").Return(false, nil)
	suite.db.On("CreateTable", mock.Anything, mock.Anything).Return(errors.New("access denied"))

	err := suite.worker.Provision(context.Background())

	assert.EqualError(suite.T(), err, "failed to provision tables: test_bookings")
	suite.db.AssertNumberOfCalls(suite.T(), "CreateTable", 3)

	status := suite.status()
	assert.Equal(suite.T(), models.StatusFailed, status.Status)
	assert.Equal(suite.T(), 2, status.RetryCount)
	assert.Equal(suite.T(), "failed to provision tables: test_bookings", status.ErrorMessage)
	assert.Equal(suite.T(), tableFailed, status.TablesReady[1].Status)
	assert.NotNil(suite.T(), status.EndTime)
}

func (suite *WorkerTestSuite) TestProvisionSkippedWhileLockHeld() {
	other := NewLockManager(suite.workerConfig.LockFilePath, time.Minute, "test")
	_, err := other.AcquireLock("someone-else")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.worker.Provision(context.Background()))

	suite.db.AssertNotCalled(suite.T(), "TableExists", mock.Anything, mock.Anything)
	assert.FileExists(suite.T(), suite.workerConfig.LockFilePath)
}

func (suite *WorkerTestSuite) TestRefreshOnce() {
	suite.jobs.On("WatchedStaff").Return([]string{"s1", "s2", "s3"})
	suite.jobs.On("RefreshAvailableJobs", mock.Anything, "s1").Return(nil)
	suite.jobs.On("RefreshAvailableJobs", mock.Anything, "s2").Return(errors.New("query failed"))
	suite.jobs.On("RefreshAvailableJobs", mock.Anything, "s3").Return(nil)

	suite.worker.RefreshOnce(context.Background())

	suite.jobs.AssertExpectations(suite.T())
	status := suite.status()
	assert.Equal(suite.T(), 3, status.WatchedStaff)
	assert.Equal(suite.T(), 2, status.RefreshedStaff)
	assert.Equal(suite.T(), 1, status.RefreshFailures)
	assert.NotNil(suite.T(), status.LastRefreshAt)
}

func (suite *WorkerTestSuite) TestRefreshOnceCancelled() {
	suite.jobs.On("WatchedStaff").Return([]string{"s1", "s2"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.worker.RefreshOnce(ctx)

	suite.jobs.AssertNotCalled(suite.T(), "RefreshAvailableJobs", mock.Anything, mock.Anything)
	status := suite.status()
	assert.Equal(suite.T(), 0, status.RefreshedStaff)
	assert.Equal(suite.T(), 2, status.RefreshFailures)
}

func (suite *WorkerTestSuite) TestStartAndStop() {
	suite.workerConfig.SkipProvisioning = true
	suite.jobs.On("WatchedStaff").Return([]string{}).Maybe()

	require.NoError(suite.T(), suite.worker.Start())
	assert.True(suite.T(), suite.worker.IsRunning())
	assert.EqualError(suite.T(), suite.worker.Start(), "worker is already running")

	require.NoError(suite.T(), suite.worker.Stop())
	assert.False(suite.T(), suite.worker.IsRunning())
	assert.NoError(suite.T(), suite.worker.Stop())
	suite.db.AssertNotCalled(suite.T(), "TableExists", mock.Anything, mock.Anything)
}

func (suite *WorkerTestSuite) TestServiceRunsProvisioningInBackground() {
	suite.db.On("TableExists", mock.Anything, mock.Anything).Return(true, nil)
	suite.jobs.On("WatchedStaff").Return([]string{}).Maybe()

	service := &Service{worker: suite.worker, logger: newMockLogger()}
	require.NoError(suite.T(), service.StartInBackground())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(suite.T(), service.WaitForCompletion(ctx, 10*time.Millisecond))

	completed, err := service.IsSetupCompleted()
	require.NoError(suite.T(), err)
	assert.True(suite.T(), completed)
	require.NoError(suite.T(), service.Stop())
}

func (suite *WorkerTestSuite) TestWaitForCompletionReportsFailure() {
	sm := NewStatusManager(suite.workerConfig.StatusFilePath)
	require.NoError(suite.T(), sm.MarkFailed("no permissions"))
	service := &Service{worker: suite.worker, logger: newMockLogger()}

	err := service.WaitForCompletion(context.Background(), time.Millisecond)

	assert.EqualError(suite.T(), err, "table provisioning failed: no permissions")
}

func (suite *WorkerTestSuite) TestCalculateRetryDelay() {
	suite.workerConfig.RetryDelay = time.Second
	suite.workerConfig.BackoffMultiplier = 2

	assert.Equal(suite.T(), time.Second, suite.worker.calculateRetryDelay(0))
	assert.Equal(suite.T(), 4*time.Second, suite.worker.calculateRetryDelay(2))
	assert.Equal(suite.T(), 5*time.Minute, suite.worker.calculateRetryDelay(20))
}
