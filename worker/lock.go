package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"homeserve-backend/models"
	"os"
	"path/filepath"
	"time"
)

// ErrLockHeld is returned when another owner holds an unexpired lock
var ErrLockHeld = errors.New("provisioning lock is held by another owner")

// LockManager guards table provisioning with a lock file so only one
// instance per environment creates tables at a time.
type LockManager struct {
	lockFilePath string
	lockTimeout  time.Duration
	environment  string
}

// NewLockManager creates a new lock manager
func NewLockManager(lockPath string, timeout time.Duration, env string) *LockManager {
	return &LockManager{
		lockFilePath: lockPath,
		lockTimeout:  timeout,
		environment:  env,
	}
}

// AcquireLock takes the lock for ownerID. A lock already held by ownerID
// is extended; an expired lock is taken over.
func (lm *LockManager) AcquireLock(ownerID string) (*models.LockInfo, error) {
	if err := os.MkdirAll(filepath.Dir(lm.lockFilePath), 0755); err != nil {
		return nil, err
	}

	now := time.Now()
	if existing, err := lm.readLockFile(); err == nil && now.Before(existing.ExpiresAt) {
		if existing.Owner != ownerID || existing.Environment != lm.environment {
			return nil, fmt.Errorf("%w: %s until %s", ErrLockHeld, existing.Owner, existing.ExpiresAt.Format(time.RFC3339))
		}
		return lm.extendLock(existing)
	}

	lockInfo := &models.LockInfo{
		ID:          fmt.Sprintf("infra-lock-%d", now.UnixNano()),
		Owner:       ownerID,
		AcquiredAt:  now,
		ExpiresAt:   now.Add(lm.lockTimeout),
		Environment: lm.environment,
	}

	if err := lm.writeLockFile(lockInfo); err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	return lockInfo, nil
}

func (lm *LockManager) readLockFile() (*models.LockInfo, error) {
	data, err := os.ReadFile(lm.lockFilePath)
	if err != nil {
		return nil, err
	}

	var lockInfo models.LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}

	return &lockInfo, nil
}

func (lm *LockManager) extendLock(existing *models.LockInfo) (*models.LockInfo, error) {
	extended := *existing
	extended.ExpiresAt = time.Now().Add(lm.lockTimeout)

	if err := lm.writeLockFile(&extended); err != nil {
		return nil, fmt.Errorf("failed to extend lock: %w", err)
	}
	return &extended, nil
}

func (lm *LockManager) writeLockFile(lockInfo *models.LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize lock info: %w", err)
	}
	return writeFileAtomic(lm.lockFilePath, data)
}

// CleanupExpiredLocks removes the lock file once it has expired
func (lm *LockManager) CleanupExpiredLocks() error {
	lockInfo, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if time.Now().After(lockInfo.ExpiresAt) {
		return os.Remove(lm.lockFilePath)
	}

	return nil
}

// ReleaseLock removes the lock file if lockInfo's owner still holds it
func (lm *LockManager) ReleaseLock(lockInfo *models.LockInfo) error {
	current, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	if current.Owner != lockInfo.Owner {
		return fmt.Errorf("cannot release lock owned by %s", current.Owner)
	}

	if err := os.Remove(lm.lockFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

// writeFileAtomic writes through a temp file and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
