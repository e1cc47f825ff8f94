package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// JWT issued by the external auth provider, shared HS256 secret.
	// Secrets are tagged json:"-" so a dumped config never carries them.
	JWTSecret string `mapstructure:"jwt_secret" json:"-"`
	JWTIssuer string `mapstructure:"jwt_issuer"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key" json:"-"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate Limiting
	RateLimitRequestsPerMinute int `mapstructure:"rate_limit_requests_per_minute"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	Tables []string `mapstructure:"tables"`

	// Query cache
	CacheBackend  string        `mapstructure:"cache_backend"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" json:"-"`
	RedisDB       int           `mapstructure:"redis_db"`

	// Job matching
	AvailableJobsRefreshInterval time.Duration `mapstructure:"available_jobs_refresh_interval"`
	StaffWatchWindow             time.Duration `mapstructure:"staff_watch_window"`

	// Booking rules
	BasicPackageSqftLimit int `mapstructure:"basic_package_sqft_limit"`
	DefaultRequiredStaff  int `mapstructure:"default_required_staff"`
}

// TableName returns the prefixed DynamoDB table name for a base name.
func (c *Config) TableName(base string) string {
	if c.DynamoDBTablePrefix == "" {
		return base
	}
	return c.DynamoDBTablePrefix + "_" + base
}
