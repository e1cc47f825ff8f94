package controller

import (
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	service services.JobServiceInterface
	logger  logger.Logger
}

func NewJobController(service services.JobServiceInterface, logger logger.Logger) *JobController {
	return &JobController{
		service: service,
		logger:  logger,
	}
}

// MyJobs handles GET /api/v1/jobs/mine
// @Summary Assignments of the calling staff user
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Jobs retrieved successfully"
// @Router /jobs/mine [get]
func (h *JobController) MyJobs(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	jobs, err := h.service.MyJobs(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve jobs", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Jobs retrieved successfully", jobs, len(jobs)))
}

// AvailableJobs handles GET /api/v1/jobs/available
// @Summary Confirmed bookings in the caller's panchayaths that still need staff
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Available jobs retrieved successfully"
// @Router /jobs/available [get]
func (h *JobController) AvailableJobs(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	jobs, err := h.service.AvailableJobs(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve available jobs", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Available jobs retrieved successfully", jobs, len(jobs)))
}

// AcceptJob handles POST /api/v1/jobs/:bookingId/accept
// @Summary Accept an available job
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 201 {object} models.APIResponse "Job accepted"
// @Failure 404 {object} models.APIResponse "Not Found - Booking does not exist"
// @Failure 409 {object} models.APIResponse "Conflict - Already applied, job full or booking not confirmed"
// @Router /jobs/{bookingId}/accept [post]
func (h *JobController) AcceptJob(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	bookingID := c.Param("bookingId")
	assignment, err := h.service.AcceptJob(c.Request.Context(), bookingID, claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to accept job", err)
		return
	}

	h.logger.Infof("Staff %s accepted booking %s", claims.UserID, bookingID)
	c.JSON(http.StatusCreated, models.SuccessResponse(http.StatusCreated, "Job accepted", assignment))
}

// MyEarnings handles GET /api/v1/earnings/mine
// @Summary Earnings of the calling staff user
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Earnings retrieved successfully"
// @Router /earnings/mine [get]
func (h *JobController) MyEarnings(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	earnings, err := h.service.MyEarnings(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve earnings", err)
		return
	}

	total := 0
	for _, e := range earnings {
		total += e.Amount
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Earnings retrieved successfully", gin.H{
		"earnings": earnings,
		"total":    total,
	}, len(earnings)))
}
