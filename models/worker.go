package models

import (
	"fmt"
	"time"
)

// WorkerConfig holds configuration for the background worker
type WorkerConfig struct {
	// Schedule of the available-jobs refresh, in robfig/cron syntax
	RefreshSchedule string `json:"refresh_schedule"`

	// Lock settings
	LockTimeout time.Duration `json:"lock_timeout"`

	// Retry settings for table provisioning
	MaxRetries        int           `json:"max_retries"`
	RetryDelay        time.Duration `json:"retry_delay"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`

	Environment    string   `json:"environment"`
	RequiredTables []string `json:"required_tables"`

	// Paths
	LockFilePath   string `json:"lock_file_path"`
	StatusFilePath string `json:"status_file_path"`

	// Feature flags
	DryRun           bool `json:"dry_run"`
	SkipProvisioning bool `json:"skip_provisioning"`
}

// LockInfo represents file lock information
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// WorkerStatus represents the current status of table provisioning
type WorkerStatus string

const (
	StatusIdle           WorkerStatus = "idle"
	StatusCreatingTables WorkerStatus = "creating_tables"
	StatusCompleted      WorkerStatus = "completed"
	StatusFailed         WorkerStatus = "failed"
	StatusRetrying       WorkerStatus = "retrying"
)

// ExecutionResult holds the result of table provisioning plus refresher stats
type ExecutionResult struct {
	Success      bool          `json:"success"`
	Status       WorkerStatus  `json:"status"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      *time.Time    `json:"end_time,omitempty"`
	Duration     time.Duration `json:"duration"`
	TablesReady  []TableStatus `json:"tables_ready"`
	ErrorMessage string        `json:"error_message,omitempty"`
	RetryCount   int           `json:"retry_count"`
	Environment  string        `json:"environment"`

	// Available-jobs refresher
	LastRefreshAt   *time.Time `json:"last_refresh_at,omitempty"`
	RefreshedStaff  int        `json:"refreshed_staff"`
	RefreshFailures int        `json:"refresh_failures"`
	WatchedStaff    int        `json:"watched_staff"`

	HealthStatus string `json:"health_status,omitempty"`
}

// TableStatus records one provisioned table
type TableStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // CREATED, EXISTS, SKIPPED, FAILED
	CheckedAt time.Time `json:"checked_at"`
}

// DefaultStatusFilePath is where the worker records progress for env
func DefaultStatusFilePath(env string) string {
	return fmt.Sprintf("/tmp/homeserve-status-%s.json", env)
}

// DefaultLockFilePath is the provisioning lock file for env
func DefaultLockFilePath(env string) string {
	return fmt.Sprintf("/tmp/homeserve-infrastructure-%s.lock", env)
}
