package controller

import (
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BookingController struct {
	service   services.BookingServiceInterface
	logger    logger.Logger
	validator *validator.Validate
}

func NewBookingController(service services.BookingServiceInterface, logger logger.Logger) *BookingController {
	return &BookingController{
		service:   service,
		logger:    logger,
		validator: validator.New(),
	}
}

// ValidateProperty handles POST /api/v1/booking/property/validate
// @Summary Check property details against a package
// @Description Returns the property check including basic-package limits and the next wizard step
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body models.ValidatePropertyRequest true "Package and property details"
// @Success 200 {object} models.APIResponse "Property details checked"
// @Failure 400 {object} models.APIResponse "Bad Request"
// @Failure 404 {object} models.APIResponse "Not Found - Package does not exist"
// @Router /booking/property/validate [post]
func (h *BookingController) ValidateProperty(c *gin.Context) {
	var req models.ValidatePropertyRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	// property rules are checked by the service so the wizard gets per-field messages
	if err := h.validator.StructPartial(req, "PackageID"); err != nil {
		respondValidation(c, err)
		return
	}

	check, err := h.service.ValidatePropertyDetails(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Failed to validate property details", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Property details checked", check))
}

// QuoteAddOns handles POST /api/v1/booking/addons/quote
// @Summary Price a package with add-ons
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body models.QuoteAddOnsRequest true "Package and selected add-ons"
// @Success 200 {object} models.APIResponse "Quote calculated"
// @Failure 400 {object} models.APIResponse "Bad Request - Unknown add-on or basic package"
// @Router /booking/addons/quote [post]
func (h *BookingController) QuoteAddOns(c *gin.Context) {
	var req models.QuoteAddOnsRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	quote, err := h.service.QuoteAddOns(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Failed to quote add-ons", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Quote calculated", quote))
}

// Prefill handles GET /api/v1/booking/prefill
// @Summary Booking form seeded from the caller's profile
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Booking form prefilled"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /booking/prefill [get]
func (h *BookingController) Prefill(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	form, err := h.service.PrefillBookingForm(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to prefill booking form", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Booking form prefilled", form))
}

// CreateBooking handles POST /api/v1/bookings
// @Summary Submit a booking
// @Description Validates every wizard step, recomputes prices and stores a pending booking
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking wizard submission"
// @Success 201 {object} models.APIResponse "Booking created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Failure 404 {object} models.APIResponse "Not Found - Package does not exist"
// @Router /bookings [post]
func (h *BookingController) CreateBooking(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.StructPartial(req, "PackageID"); err != nil {
		respondValidation(c, err)
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		respondError(c, h.logger, "Failed to create booking", err)
		return
	}

	h.logger.Infof("Booking %s created by %s", booking.ID, claims.UserID)
	c.JSON(http.StatusCreated, models.SuccessResponse(http.StatusCreated, "Booking created successfully", booking))
}

// GetBooking handles GET /api/v1/bookings/:id
// @Summary Get a booking
// @Description Customers can only read their own bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.APIResponse "Booking retrieved successfully"
// @Failure 403 {object} models.APIResponse "Forbidden"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Router /bookings/{id} [get]
func (h *BookingController) GetBooking(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve booking", err)
		return
	}

	// staff and admin read any booking; everyone else only their own
	if !claims.HasRole(models.UserRoleStaff, models.UserRoleAdmin) && booking.CustomerID != claims.UserID {
		respondError(c, h.logger, "Failed to retrieve booking",
			fmt.Errorf("booking %s belongs to another customer: %w", booking.ID, models.ErrForbidden))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Booking retrieved successfully", booking))
}

// ListBookings handles GET /api/v1/bookings
// @Summary List bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param panchayath_id query string false "Filter by panchayath"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} models.APIResponse "Bookings retrieved successfully"
// @Router /bookings [get]
func (h *BookingController) ListBookings(c *gin.Context) {
	filter := &models.BookingFilter{
		Status:       models.BookingStatus(c.Query("status")),
		PanchayathID: c.Query("panchayath_id"),
		CustomerID:   c.Query("customer_id"),
	}
	if filter.Status != "" {
		if err := h.validator.Var(string(filter.Status), "oneof=pending confirmed in_progress completed cancelled"); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(
				http.StatusBadRequest, "Invalid status filter", "ValidationError",
				"status must be one of: pending, confirmed, in_progress, completed, cancelled",
			))
			return
		}
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve bookings", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Bookings retrieved successfully", bookings, len(bookings)))
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status
// @Summary Move a booking through its lifecycle
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body models.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} models.APIResponse "Booking status updated"
// @Failure 409 {object} models.APIResponse "Conflict - Transition not allowed"
// @Router /bookings/{id}/status [patch]
func (h *BookingController) UpdateStatus(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status, claims.UserID)
	if err != nil {
		respondError(c, h.logger, "Failed to update booking status", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Booking status updated", booking))
}
