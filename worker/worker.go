package worker

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/infrastructure"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// provisioning runs are abandoned after this long
const provisionTimeout = 15 * time.Minute

// JobRefresher is the part of the job service the worker drives
type JobRefresher interface {
	WatchedStaff() []string
	RefreshAvailableJobs(ctx context.Context, userID string) error
}

// Worker provisions the DynamoDB tables once at startup and then refreshes
// the available-jobs view of recently active staff on a cron schedule.
type Worker struct {
	config        *models.Config
	workerConfig  *models.WorkerConfig
	logger        logger.Logger
	jobs          JobRefresher
	provisioner   *Provisioner
	lockManager   *LockManager
	statusManager *StatusManager
	cronJob       *cron.Cron
	ownerID       string

	mu         sync.Mutex
	isRunning  bool
	refreshing atomic.Bool
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewWorkerConfig derives the worker settings from the application config
func NewWorkerConfig(cfg *models.Config) *models.WorkerConfig {
	return &models.WorkerConfig{
		RefreshSchedule:   fmt.Sprintf("@every %s", cfg.AvailableJobsRefreshInterval),
		LockTimeout:       30 * time.Minute,
		MaxRetries:        5,
		RetryDelay:        2 * time.Second,
		BackoffMultiplier: 2.0,
		Environment:       cfg.AppEnv,
		RequiredTables:    cfg.Tables,
		LockFilePath:      models.DefaultLockFilePath(cfg.AppEnv),
		StatusFilePath:    models.DefaultStatusFilePath(cfg.AppEnv),
		DryRun:            os.Getenv("INFRASTRUCTURE_DRY_RUN") == "true",
		SkipProvisioning:  os.Getenv("INFRASTRUCTURE_SKIP_PROVISIONING") == "true",
	}
}

// NewWorker wires a worker from its collaborators
func NewWorker(cfg *models.Config, workerConfig *models.WorkerConfig, dbClient dal.DatabaseClientInterface, jobs JobRefresher, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if jobs == nil {
		return nil, fmt.Errorf("job refresher cannot be nil")
	}
	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}

	return &Worker{
		config:        cfg,
		workerConfig:  workerConfig,
		logger:        log,
		jobs:          jobs,
		provisioner:   NewProvisioner(dbClient, cfg, workerConfig, log),
		lockManager:   NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment),
		statusManager: NewStatusManager(workerConfig.StatusFilePath),
		cronJob:       cron.New(),
		ownerID:       fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8]),
	}, nil
}

func validateWorkerConfig(config *models.WorkerConfig) error {
	if config == nil {
		return fmt.Errorf("worker config cannot be nil")
	}
	if config.RefreshSchedule == "" {
		return fmt.Errorf("refresh schedule cannot be empty")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if config.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff multiplier must be at least 1")
	}
	if config.LockFilePath == "" || config.StatusFilePath == "" {
		return fmt.Errorf("lock and status file paths are required")
	}

	known := make(map[string]bool)
	for _, name := range infrastructure.TableNames() {
		known[name] = true
	}
	for _, table := range config.RequiredTables {
		if !known[table] {
			return fmt.Errorf("no schema defined for required table %q", table)
		}
	}
	return nil
}

// Start schedules the refresher and kicks off provisioning in the background
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	if err := w.cronJob.AddFunc(w.workerConfig.RefreshSchedule, w.refreshAvailableJobs); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.logger.Infof("Starting worker %s with refresh schedule %s", w.ownerID, w.workerConfig.RefreshSchedule)

	if w.workerConfig.SkipProvisioning {
		w.logger.Info("Table provisioning disabled, only refreshing available jobs")
	} else {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.Provision(w.ctx); err != nil {
				w.logger.Errorf("Table provisioning did not complete: %v", err)
			}
		}()
	}

	w.cronJob.Start()
	w.isRunning = true
	return nil
}

// Provision runs table provisioning under the file lock, retrying failed
// passes with exponential backoff up to MaxRetries times.
func (w *Worker) Provision(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, provisionTimeout)
	defer cancel()

	lock, err := w.lockManager.AcquireLock(w.ownerID)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			w.logger.Infof("Skipping provisioning: %v", err)
			return nil
		}
		return fmt.Errorf("failed to acquire provisioning lock: %w", err)
	}
	defer func() {
		if err := w.lockManager.ReleaseLock(lock); err != nil {
			w.logger.Warnf("Failed to release provisioning lock: %v", err)
		}
	}()

	for attempt := 0; ; attempt++ {
		setupErr := w.provisioner.Execute(ctx, w.statusManager)
		if setupErr == nil {
			w.logger.Info("Table provisioning completed")
			return w.statusManager.MarkCompleted()
		}

		if attempt >= w.workerConfig.MaxRetries || ctx.Err() != nil {
			if err := w.statusManager.MarkFailed(setupErr.Error()); err != nil {
				w.logger.Errorf("Failed to record provisioning failure: %v", err)
			}
			return setupErr
		}

		retryCount, err := w.statusManager.IncrementRetryCount(setupErr.Error())
		if err != nil {
			w.logger.Warnf("Failed to record retry: %v", err)
		}
		delay := w.calculateRetryDelay(attempt)
		w.logger.Warnf("Provisioning attempt %d failed, retry %d in %v: %v", attempt+1, retryCount, delay, setupErr)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			if err := w.statusManager.MarkFailed(ctx.Err().Error()); err != nil {
				w.logger.Errorf("Failed to record provisioning failure: %v", err)
			}
			return ctx.Err()
		}
	}
}

// refreshAvailableJobs is the cron tick. A tick that fires while the
// previous one is still running is dropped.
func (w *Worker) refreshAvailableJobs() {
	if !w.refreshing.CompareAndSwap(false, true) {
		w.logger.Debug("Previous available-jobs refresh still running, skipping tick")
		return
	}
	defer w.refreshing.Store(false)

	parent := w.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, w.config.AvailableJobsRefreshInterval)
	defer cancel()

	w.RefreshOnce(ctx)
}

// RefreshOnce recomputes the available jobs of every watched staff member
func (w *Worker) RefreshOnce(ctx context.Context) {
	staff := w.jobs.WatchedStaff()
	refreshed, failures := 0, 0
	for _, userID := range staff {
		if ctx.Err() != nil {
			failures += len(staff) - refreshed - failures
			break
		}
		if err := w.jobs.RefreshAvailableJobs(ctx, userID); err != nil {
			w.logger.Warnf("Failed to refresh available jobs for %s: %v", userID, err)
			failures++
			continue
		}
		refreshed++
	}

	if len(staff) > 0 {
		w.logger.Debugf("Refreshed available jobs for %d of %d staff", refreshed, len(staff))
	}
	if err := w.statusManager.RecordRefresh(len(staff), refreshed, failures, time.Now()); err != nil {
		w.logger.Warnf("Failed to record refresh status: %v", err)
	}
}

// GetStatus returns the last recorded execution result
func (w *Worker) GetStatus() (*models.ExecutionResult, error) {
	return w.statusManager.LoadStatus()
}

// IsRunning reports whether Start has been called without Stop
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Stop halts the scheduler and waits for provisioning to return
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return nil
	}

	w.logger.Info("Stopping worker")
	w.cancel()
	w.cronJob.Stop()
	w.wg.Wait()
	w.isRunning = false
	return nil
}

func (w *Worker) calculateRetryDelay(retryCount int) time.Duration {
	delay := float64(w.workerConfig.RetryDelay) * math.Pow(w.workerConfig.BackoffMultiplier, float64(retryCount))
	if maxDelay := float64(5 * time.Minute); delay > maxDelay {
		delay = maxDelay
	}
	return time.Duration(delay)
}
