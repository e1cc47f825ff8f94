package worker

import (
	"context"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"time"
)

// Service wraps the worker for the HTTP server's lifecycle
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(cfg *models.Config, workerConfig *models.WorkerConfig, dbClient dal.DatabaseClientInterface, jobs JobRefresher, log logger.Logger) (*Service, error) {
	worker, err := NewWorker(cfg, workerConfig, dbClient, jobs, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return &Service{
		worker: worker,
		logger: log,
	}, nil
}

// StartInBackground starts provisioning and the refresh schedule
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting worker service in background")
	return s.worker.Start()
}

// Stop stops the worker service
func (s *Service) Stop() error {
	s.logger.Info("Stopping worker service")
	return s.worker.Stop()
}

// GetStatus returns the current worker status
func (s *Service) GetStatus() (*models.ExecutionResult, error) {
	return s.worker.GetStatus()
}

// IsSetupCompleted checks if table provisioning completed
func (s *Service) IsSetupCompleted() (bool, error) {
	return s.worker.statusManager.IsSetupCompleted()
}

// WaitForCompletion polls the status file until provisioning finishes or ctx ends
func (s *Service) WaitForCompletion(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := s.GetStatus()
		if err == nil {
			switch status.Status {
			case models.StatusCompleted:
				return nil
			case models.StatusFailed:
				return fmt.Errorf("table provisioning failed: %s", status.ErrorMessage)
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for table provisioning: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
