package controller

import (
	"errors"
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfrastructureController struct {
	service services.InfrastructureServiceInterface
	logger  logger.Logger
}

func NewInfrastructureController(service services.InfrastructureServiceInterface, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		service: service,
		logger:  logger,
	}
}

// GetWorkerStatus handles GET /api/v1/infrastructure/worker/status
// @Summary Get worker execution status
// @Description Table provisioning state and available-jobs refresher stats, with a health verdict
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Worker status retrieved successfully"
// @Success 202 {object} models.APIResponse "Provisioning in progress"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Failure 404 {object} models.APIResponse "Worker has not reported a status yet"
// @Failure 503 {object} models.APIResponse "Provisioning failed"
// @Router /infrastructure/worker/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	workerStatus, err := h.service.GetWorkerStatus(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(
				http.StatusNotFound, "Worker has not reported a status yet", "WorkerError", err.Error(),
			))
			return
		}
		h.logger.Errorf("Failed to get worker status: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(
			http.StatusInternalServerError, "Failed to retrieve worker status", "WorkerError", err.Error(),
		))
		return
	}

	// Map worker execution status to appropriate HTTP status
	httpStatus, apiStatus := h.mapWorkerStatusToHTTP(workerStatus)

	c.JSON(httpStatus, models.APIResponse{
		Status:  apiStatus,
		Code:    httpStatus,
		Message: h.getStatusMessage(workerStatus),
		Data:    workerStatus,
	})
}

// CheckTables handles GET /api/v1/infrastructure/tables
// @Summary Check that every configured table exists
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "All tables exist"
// @Success 206 {object} models.APIResponse "Some tables are missing"
// @Router /infrastructure/tables [get]
func (h *InfrastructureController) CheckTables(c *gin.Context) {
	tables, err := h.service.CheckTables(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to check tables", err)
		return
	}

	missing := 0
	for _, t := range tables {
		if t.Status != "EXISTS" {
			missing++
		}
	}

	if missing > 0 {
		c.JSON(http.StatusPartialContent, models.ListResponse(http.StatusPartialContent,
			fmt.Sprintf("%d of %d tables are missing", missing, len(tables)), tables, len(tables)))
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "All tables exist", tables, len(tables)))
}

// mapWorkerStatusToHTTP maps worker execution status to appropriate HTTP status codes
func (h *InfrastructureController) mapWorkerStatusToHTTP(ws *models.ExecutionResult) (int, string) {
	switch ws.Status {
	case models.StatusCompleted:
		if ws.Success {
			return http.StatusOK, "success"
		}
		return http.StatusOK, "warning"
	case models.StatusFailed:
		return http.StatusServiceUnavailable, "error"
	case models.StatusCreatingTables:
		return http.StatusAccepted, "in_progress"
	case models.StatusRetrying:
		return http.StatusAccepted, "retrying"
	default:
		return http.StatusOK, "info"
	}
}

// getStatusMessage provides human-readable status messages
func (h *InfrastructureController) getStatusMessage(ws *models.ExecutionResult) string {
	switch ws.Status {
	case models.StatusCompleted:
		if ws.Success {
			return "Infrastructure is ready and healthy"
		}
		return "Infrastructure setup completed with warnings"
	case models.StatusFailed:
		return "Infrastructure setup failed - manual intervention may be required"
	case models.StatusCreatingTables:
		return "Creating DynamoDB tables"
	case models.StatusRetrying:
		return fmt.Sprintf("Retrying infrastructure setup (attempt %d)", ws.RetryCount+1)
	case models.StatusIdle:
		return "Worker is idle"
	default:
		return "Worker status retrieved successfully"
	}
}
