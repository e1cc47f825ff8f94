package utils

import (
	"encoding/json"
	"homeserve-backend/models"

	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-shared-auth-provider-secret"

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper.
// A .env file, when present, is loaded into the environment first; variables
// already set in the environment win.
func Load() (*models.Config, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "HomeServe Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_issuer", "")

	v.SetDefault("aws_region", "ap-south-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("rate_limit_requests_per_minute", 120)

	v.SetDefault("basePath", "/api/v1")

	v.SetDefault("tables", []string{
		"service_categories",
		"packages",
		"panchayaths",
		"user_roles",
		"profiles",
		"staff_details",
		"staff_panchayath_assignments",
		"bookings",
		"booking_staff_assignments",
		"staff_earnings",
	})

	v.SetDefault("cache_backend", "memory")
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("available_jobs_refresh_interval", 30*time.Second)
	v.SetDefault("staff_watch_window", 5*time.Minute)

	v.SetDefault("basic_package_sqft_limit", models.DefaultBasicSqftLimit)
	v.SetDefault("default_required_staff", models.DefaultRequiredStaff)
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.JWTSecret == defaultJWTSecret && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return fmt.Errorf("cache_backend must be memory or redis, got %q", c.CacheBackend)
	}

	if c.AvailableJobsRefreshInterval < time.Second {
		return fmt.Errorf("available_jobs_refresh_interval must be at least 1s")
	}

	if c.BasicPackageSqftLimit <= 0 {
		return fmt.Errorf("basic_package_sqft_limit must be positive")
	}

	if c.DefaultRequiredStaff <= 0 {
		return fmt.Errorf("default_required_staff must be positive")
	}

	if c.AppEnv == "production" && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys
func flattenNestedConfig(v *viper.Viper) {
	pairs := map[string]string{
		"app.name":                       "app_name",
		"app.version":                    "app_version",
		"app.env":                        "app_env",
		"app.host":                       "app_host",
		"app.port":                       "app_port",
		"jwt.secret":                     "jwt_secret",
		"jwt.issuer":                     "jwt_issuer",
		"aws.region":                     "aws_region",
		"aws.access_key_id":              "aws_access_key_id",
		"aws.secret_access_key":          "aws_secret_access_key",
		"aws.dynamodb_endpoint":          "dynamodb_endpoint",
		"aws.dynamodb_table_prefix":      "dynamodb_table_prefix",
		"logging.level":                  "log_level",
		"logging.format":                 "log_format",
		"cache.backend":                  "cache_backend",
		"cache.ttl":                      "cache_ttl",
		"redis.addr":                     "redis_addr",
		"redis.password":                 "redis_password",
		"jobs.refresh_interval":          "available_jobs_refresh_interval",
		"jobs.watch_window":              "staff_watch_window",
		"booking.basic_sqft_limit":       "basic_package_sqft_limit",
		"booking.required_staff":         "default_required_staff",
		"rate_limit.requests_per_minute": "rate_limit_requests_per_minute",
	}
	for nested, flat := range pairs {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}

	if v.IsSet("redis.db") {
		v.Set("redis_db", v.GetInt("redis.db"))
	}
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

// PrintPrettyJSON renders any struct or map as indented JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// ParseScheduledDate parses a YYYY-MM-DD date in the location of ref.
func ParseScheduledDate(date string, ref time.Time) (time.Time, error) {
	return time.ParseInLocation(models.DateFormat, strings.TrimSpace(date), ref.Location())
}
