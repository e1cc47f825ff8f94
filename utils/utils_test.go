package utils

import (
	"encoding/json"
	"homeserve-backend/models"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite defines a test suite for utils functions
type UtilsTestSuite struct {
	suite.Suite
	originalEnv map[string]string
}

// SetupTest runs before each test
func (suite *UtilsTestSuite) SetupTest() {
	suite.originalEnv = make(map[string]string)
	envVars := []string{
		"APP_NAME", "APP_VERSION", "APP_ENV", "APP_HOST", "APP_PORT",
		"JWT_SECRET", "JWT_ISSUER",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"DYNAMODB_ENDPOINT", "DYNAMODB_TABLE_PREFIX",
		"LOG_LEVEL", "LOG_FORMAT",
		"CORS_ORIGINS", "RATE_LIMIT_REQUESTS_PER_MINUTE",
		"BASEPATH",
		"CACHE_BACKEND", "CACHE_TTL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"AVAILABLE_JOBS_REFRESH_INTERVAL", "STAFF_WATCH_WINDOW",
		"BASIC_PACKAGE_SQFT_LIMIT", "DEFAULT_REQUIRED_STAFF",
	}

	for _, envVar := range envVars {
		suite.originalEnv[envVar] = os.Getenv(envVar)
		os.Unsetenv(envVar)
	}
}

// TearDownTest restores the environment
func (suite *UtilsTestSuite) TearDownTest() {
	for envVar, value := range suite.originalEnv {
		if value != "" {
			os.Setenv(envVar, value)
		} else {
			os.Unsetenv(envVar)
		}
	}
}

func (suite *UtilsTestSuite) TestGetConfigDefaults() {
	config, err := GetConfig()
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "HomeServe Backend", config.AppName)
	assert.Equal(suite.T(), "development", config.AppEnv)
	assert.Equal(suite.T(), "8081", config.AppPort)
	assert.Equal(suite.T(), "ap-south-1", config.AWSRegion)
	assert.Equal(suite.T(), "dev", config.DynamoDBTablePrefix)
	assert.Equal(suite.T(), "/api/v1", config.BasePath)
	assert.Equal(suite.T(), 120, config.RateLimitRequestsPerMinute)
	assert.Equal(suite.T(), "memory", config.CacheBackend)
	assert.Equal(suite.T(), 5*time.Minute, config.CacheTTL)
	assert.Equal(suite.T(), 30*time.Second, config.AvailableJobsRefreshInterval)
	assert.Equal(suite.T(), 5*time.Minute, config.StaffWatchWindow)
	assert.Equal(suite.T(), models.DefaultBasicSqftLimit, config.BasicPackageSqftLimit)
	assert.Equal(suite.T(), models.DefaultRequiredStaff, config.DefaultRequiredStaff)
	assert.Len(suite.T(), config.Tables, 10)
	assert.Contains(suite.T(), config.Tables, "booking_staff_assignments")
}

func (suite *UtilsTestSuite) TestGetConfigWithEnvironmentVariables() {
	os.Setenv("APP_NAME", "Test App")
	os.Setenv("APP_ENV", "production")
	os.Setenv("JWT_SECRET", "production-secret")
	os.Setenv("AWS_REGION", "us-west-2")
	os.Setenv("CACHE_BACKEND", "redis")
	os.Setenv("AVAILABLE_JOBS_REFRESH_INTERVAL", "10s")
	os.Setenv("DEFAULT_REQUIRED_STAFF", "3")

	config, err := GetConfig()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Test App", config.AppName)
	assert.Equal(suite.T(), "production", config.AppEnv)
	assert.Equal(suite.T(), "production-secret", config.JWTSecret)
	assert.Equal(suite.T(), "us-west-2", config.AWSRegion)
	assert.Equal(suite.T(), "redis", config.CacheBackend)
	assert.Equal(suite.T(), 10*time.Second, config.AvailableJobsRefreshInterval)
	assert.Equal(suite.T(), 3, config.DefaultRequiredStaff)
}

func (suite *UtilsTestSuite) TestLoadWithProductionValidation() {
	os.Setenv("APP_ENV", "production")

	config, err := Load()
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "JWT_SECRET must be set in production environment")
}

func (suite *UtilsTestSuite) TestLoadWithInvalidCacheBackend() {
	os.Setenv("CACHE_BACKEND", "memcached")

	config, err := Load()
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "cache_backend")
}

func (suite *UtilsTestSuite) TestLoadWithTooFastRefresh() {
	os.Setenv("AVAILABLE_JOBS_REFRESH_INTERVAL", "100ms")

	_, err := Load()
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "available_jobs_refresh_interval")
}

func (suite *UtilsTestSuite) TestValidate() {
	valid := func() *models.Config {
		return &models.Config{
			AppEnv:                       "development",
			JWTSecret:                    defaultJWTSecret,
			CacheBackend:                 "memory",
			AvailableJobsRefreshInterval: 30 * time.Second,
			BasicPackageSqftLimit:        1000,
			DefaultRequiredStaff:         2,
		}
	}

	assert.NoError(suite.T(), validate(valid()))

	prod := valid()
	prod.AppEnv = "production"
	assert.Error(suite.T(), validate(prod))
	prod.JWTSecret = "production-secret"
	assert.NoError(suite.T(), validate(prod))

	noLimit := valid()
	noLimit.BasicPackageSqftLimit = 0
	assert.EqualError(suite.T(), validate(noLimit), "basic_package_sqft_limit must be positive")

	noStaff := valid()
	noStaff.DefaultRequiredStaff = -1
	assert.EqualError(suite.T(), validate(noStaff), "default_required_staff must be positive")
}

func (suite *UtilsTestSuite) TestPrintPrettyJSON() {
	data := map[string]interface{}{
		"name":  "test",
		"value": 123,
	}

	result := PrintPrettyJSON(data)
	var parsed map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal([]byte(result), &parsed))
	assert.Equal(suite.T(), "test", parsed["name"])
	assert.Equal(suite.T(), float64(123), parsed["value"])

	assert.Equal(suite.T(), "null", PrintPrettyJSON(nil))
	assert.Empty(suite.T(), PrintPrettyJSON(make(chan int)))
}

func (suite *UtilsTestSuite) TestPrintPrettyJSONOmitsConfigSecrets() {
	cfg := &models.Config{
		AppEnv:             "development",
		JWTSecret:          "jwt-shh",
		AWSAccessKeyID:     "AKIDEXAMPLE",
		AWSSecretAccessKey: "aws-shh",
		RedisPassword:      "redis-shh",
	}

	dumped := PrintPrettyJSON(cfg)

	assert.Contains(suite.T(), dumped, "development")
	for _, secret := range []string{"jwt-shh", "aws-shh", "redis-shh"} {
		assert.NotContains(suite.T(), dumped, secret)
	}
}

func (suite *UtilsTestSuite) TestGenerateUUID() {
	id1 := GenerateUUID()
	id2 := GenerateUUID()

	assert.NotEqual(suite.T(), id1, id2)
	_, err := uuid.Parse(id1)
	assert.NoError(suite.T(), err)
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func TestParseScheduledDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)

	testCases := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", "2025-06-02", time.Date(2025, 6, 2, 0, 0, 0, 0, loc), false},
		{"padded", "  2025-12-31 ", time.Date(2025, 12, 31, 0, 0, 0, 0, loc), false},
		{"wrong layout", "02/06/2025", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseScheduledDate(tc.input, ref)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v", got)
		})
	}
}
