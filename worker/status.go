package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"homeserve-backend/models"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StatusManager persists the worker's ExecutionResult to a JSON file that
// the infrastructure endpoints read back.
type StatusManager struct {
	statusFilePath string
	mu             sync.Mutex
}

// NewStatusManager creates a new status manager
func NewStatusManager(statusPath string) *StatusManager {
	return &StatusManager{statusFilePath: statusPath}
}

// Path returns the status file location
func (sm *StatusManager) Path() string {
	return sm.statusFilePath
}

func (sm *StatusManager) SaveStatus(result *models.ExecutionResult) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.save(result)
}

func (sm *StatusManager) save(result *models.ExecutionResult) error {
	if err := os.MkdirAll(filepath.Dir(sm.statusFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	if result.EndTime == nil && (result.Status == models.StatusCompleted || result.Status == models.StatusFailed) {
		now := time.Now()
		result.EndTime = &now
		result.Duration = now.Sub(result.StartTime)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	if err := writeFileAtomic(sm.statusFilePath, data); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	return nil
}

func (sm *StatusManager) LoadStatus() (*models.ExecutionResult, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.load()
}

func (sm *StatusManager) load() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(sm.statusFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	return &result, nil
}

// update applies fn to the stored result under the lock. A missing file
// starts from an idle result.
func (sm *StatusManager) update(fn func(*models.ExecutionResult)) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	result, err := sm.load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		result = &models.ExecutionResult{
			Status:      models.StatusIdle,
			StartTime:   time.Now(),
			TablesReady: make([]models.TableStatus, 0),
		}
	}

	fn(result)
	return sm.save(result)
}

// IsSetupCompleted checks if table provisioning finished successfully
func (sm *StatusManager) IsSetupCompleted() (bool, error) {
	status, err := sm.LoadStatus()
	if err != nil {
		return false, err
	}

	return status.Status == models.StatusCompleted && status.Success, nil
}

// BeginProvisioning marks a provisioning pass as started. Refresher stats
// are kept, and a pass following a retry keeps its start time and count.
func (sm *StatusManager) BeginProvisioning(env string) error {
	return sm.update(func(r *models.ExecutionResult) {
		if r.Status != models.StatusRetrying {
			r.StartTime = time.Now()
			r.RetryCount = 0
		}
		r.Success = false
		r.Status = models.StatusCreatingTables
		r.EndTime = nil
		r.Duration = 0
		r.TablesReady = make([]models.TableStatus, 0)
		r.ErrorMessage = ""
		r.Environment = env
	})
}

// RecordTable adds or replaces the status of one table
func (sm *StatusManager) RecordTable(table models.TableStatus) error {
	return sm.update(func(r *models.ExecutionResult) {
		for i := range r.TablesReady {
			if r.TablesReady[i].Name == table.Name {
				r.TablesReady[i] = table
				return
			}
		}
		r.TablesReady = append(r.TablesReady, table)
	})
}

// MarkCompleted marks provisioning as completed
func (sm *StatusManager) MarkCompleted() error {
	return sm.update(func(r *models.ExecutionResult) {
		r.Success = true
		r.Status = models.StatusCompleted
		r.ErrorMessage = ""
		now := time.Now()
		r.EndTime = &now
		r.Duration = now.Sub(r.StartTime)
	})
}

// MarkFailed marks provisioning as failed
func (sm *StatusManager) MarkFailed(errorMsg string) error {
	return sm.update(func(r *models.ExecutionResult) {
		r.Success = false
		r.Status = models.StatusFailed
		r.ErrorMessage = errorMsg
		now := time.Now()
		r.EndTime = &now
		r.Duration = now.Sub(r.StartTime)
	})
}

// IncrementRetryCount increments the retry counter
func (sm *StatusManager) IncrementRetryCount(errorMsg string) (int, error) {
	var count int
	err := sm.update(func(r *models.ExecutionResult) {
		r.RetryCount++
		r.Status = models.StatusRetrying
		r.ErrorMessage = errorMsg
		count = r.RetryCount
	})
	return count, err
}

// RecordRefresh stores the outcome of one available-jobs refresh pass
func (sm *StatusManager) RecordRefresh(watched, refreshed, failures int, at time.Time) error {
	return sm.update(func(r *models.ExecutionResult) {
		r.WatchedStaff = watched
		r.RefreshedStaff = refreshed
		r.RefreshFailures = failures
		r.LastRefreshAt = &at
	})
}

// ResetStatus removes the status file
func (sm *StatusManager) ResetStatus() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := os.Remove(sm.statusFilePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
