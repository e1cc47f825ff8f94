package controller

import (
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type StaffController struct {
	service   services.StaffServiceInterface
	logger    logger.Logger
	validator *validator.Validate
}

func NewStaffController(service services.StaffServiceInterface, logger logger.Logger) *StaffController {
	return &StaffController{
		service:   service,
		logger:    logger,
		validator: validator.New(),
	}
}

// ListStaff handles GET /api/v1/staff
// @Summary List staff with profiles, details and coverage
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Staff retrieved successfully"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Router /staff [get]
func (h *StaffController) ListStaff(c *gin.Context) {
	staff, err := h.service.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve staff", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Staff retrieved successfully", staff, len(staff)))
}

// StaffByPanchayath handles GET /api/v1/staff/panchayath/:id
// @Summary Staff covering a panchayath
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Panchayath ID"
// @Success 200 {object} models.APIResponse "Staff retrieved successfully"
// @Router /staff/panchayath/{id} [get]
func (h *StaffController) StaffByPanchayath(c *gin.Context) {
	staff, err := h.service.StaffByPanchayath(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve staff for panchayath", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Staff retrieved successfully", staff, len(staff)))
}

// AssignStaff handles PUT /api/v1/bookings/:id/staff
// @Summary Replace the staff assigned to a booking
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body models.AssignStaffRequest true "Staff user IDs"
// @Success 200 {object} models.APIResponse "Staff assigned successfully"
// @Failure 400 {object} models.APIResponse "Bad Request"
// @Failure 404 {object} models.APIResponse "Not Found - Booking does not exist"
// @Router /bookings/{id}/staff [put]
func (h *StaffController) AssignStaff(c *gin.Context) {
	var req models.AssignStaffRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	bookingID := c.Param("id")
	assignments, err := h.service.AssignStaffToBooking(c.Request.Context(), bookingID, req.StaffUserIDs)
	if err != nil {
		respondError(c, h.logger, "Failed to assign staff", err)
		return
	}

	h.logger.Infof("Assigned %d staff to booking %s", len(assignments), bookingID)
	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Staff assigned successfully", assignments, len(assignments)))
}

// UpdateAssignmentStatus handles PATCH /api/v1/assignments/:id/status
// @Summary Accept or reject an assignment
// @Description Staff may only answer their own assignments
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body models.UpdateAssignmentStatusRequest true "accepted or rejected"
// @Success 200 {object} models.APIResponse "Assignment updated"
// @Failure 403 {object} models.APIResponse "Forbidden"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Router /assignments/{id}/status [patch]
func (h *StaffController) UpdateAssignmentStatus(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req models.UpdateAssignmentStatusRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	assignment, err := h.service.UpdateAssignmentStatus(c.Request.Context(), c.Param("id"), req.Status, claims)
	if err != nil {
		respondError(c, h.logger, "Failed to update assignment", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Assignment updated", assignment))
}

// UpdateStaffDetails handles PUT /api/v1/staff/:id/details
// @Summary Set availability and skills of a staff user
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Staff user ID"
// @Param request body models.UpdateStaffDetailsRequest true "Availability and skills"
// @Success 200 {object} models.APIResponse "Staff details updated"
// @Router /staff/{id}/details [put]
func (h *StaffController) UpdateStaffDetails(c *gin.Context) {
	var req models.UpdateStaffDetailsRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	details, err := h.service.UpdateStaffDetails(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, "Failed to update staff details", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Staff details updated", details))
}
