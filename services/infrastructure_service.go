package services

import (
	"context"
	"encoding/json"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"os"
	"time"
)

// provisioning that has not finished after this long is reported degraded
const staleProvisioning = 30 * time.Minute

type InfrastructureService struct {
	dbClient       dal.DatabaseClientInterface
	logger         logger.Logger
	config         *models.Config
	statusFilePath string
}

func NewInfrastructureService(dbClient dal.DatabaseClientInterface, logger logger.Logger, config *models.Config, statusFilePath string) *InfrastructureService {
	if statusFilePath == "" {
		statusFilePath = models.DefaultStatusFilePath(config.AppEnv)
	}
	return &InfrastructureService{
		dbClient:       dbClient,
		logger:         logger,
		config:         config,
		statusFilePath: statusFilePath,
	}
}

// getWorkerStatus reads worker status from the status file
func (s *InfrastructureService) getWorkerStatus() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(s.statusFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("worker status file %s: %w", s.statusFilePath, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read worker status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal worker status: %w", err)
	}

	return &result, nil
}

// GetWorkerStatus returns the last recorded worker status with a health verdict
func (s *InfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	s.logger.Debug("Getting worker status")

	result, err := s.getWorkerStatus()
	if err != nil {
		return nil, err
	}

	result.HealthStatus = healthOf(result, time.Now())
	return result, nil
}

func healthOf(result *models.ExecutionResult, now time.Time) string {
	switch result.Status {
	case models.StatusCompleted:
		if result.Success && result.RefreshFailures == 0 {
			return "healthy"
		}
		return "degraded"
	case models.StatusCreatingTables:
		if now.Sub(result.StartTime) > staleProvisioning {
			return "degraded"
		}
		return "provisioning"
	case models.StatusRetrying:
		return "degraded"
	case models.StatusFailed:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// CheckTables reports whether every configured table exists in the store
func (s *InfrastructureService) CheckTables(ctx context.Context) ([]models.TableStatus, error) {
	statuses := make([]models.TableStatus, 0, len(s.config.Tables))
	for _, base := range s.config.Tables {
		name := s.config.TableName(base)
		exists, err := s.dbClient.TableExists(ctx, name)
		if err != nil {
			s.logger.Errorf("Failed to check table %s: %v", name, err)
			return nil, fmt.Errorf("failed to check table %s: %w", name, err)
		}

		status := "MISSING"
		if exists {
			status = "EXISTS"
		}
		statuses = append(statuses, models.TableStatus{Name: name, Status: status, CheckedAt: time.Now()})
	}
	return statuses, nil
}
