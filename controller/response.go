package controller

import (
	"errors"
	"homeserve-backend/middelware"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// formatValidationErrors formats validation errors into readable messages
func formatValidationErrors(err error) string {
	var errorMessages []string

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				errorMessages = append(errorMessages, fieldError.Field()+" is required")
			case "min":
				errorMessages = append(errorMessages, fieldError.Field()+" must be at least "+fieldError.Param())
			case "max":
				errorMessages = append(errorMessages, fieldError.Field()+" must be at most "+fieldError.Param())
			case "gt":
				errorMessages = append(errorMessages, fieldError.Field()+" must be greater than "+fieldError.Param())
			case "oneof":
				errorMessages = append(errorMessages, fieldError.Field()+" must be one of: "+strings.ReplaceAll(fieldError.Param(), " ", ", "))
			default:
				errorMessages = append(errorMessages, fieldError.Field()+" is invalid")
			}
		}
		return strings.Join(errorMessages, "; ")
	}

	return err.Error()
}

// bindJSON decodes the request body and aborts with 400 on malformed JSON
func bindJSON(c *gin.Context, log logger.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnf("Failed to bind JSON on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(
			http.StatusBadRequest, "Invalid request body", "ValidationError", err.Error(),
		))
		return false
	}
	return true
}

// respondValidation writes a 400 for struct validation failures
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(
		http.StatusBadRequest, "Validation failed", "ValidationError", formatValidationErrors(err),
	))
}

// respondError maps service errors onto the API envelope
func respondError(c *gin.Context, log logger.Logger, message string, err error) {
	var fieldErrs *models.ValidationError

	switch {
	case errors.As(err, &fieldErrs):
		resp := models.ErrorResponse(http.StatusBadRequest, message, "ValidationError", err.Error())
		if len(fieldErrs.Fields) > 0 {
			resp.Error.Field = fieldErrs.Fields[0].Field
			resp.Data = fieldErrs.Fields
		}
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(http.StatusBadRequest, message, "ValidationError", err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(http.StatusNotFound, message, "NotFoundError", err.Error()))
	case errors.Is(err, models.ErrAlreadyApplied), errors.Is(err, models.ErrJobFull), errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse(http.StatusConflict, message, "ConflictError", err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(http.StatusForbidden, message, "AuthorizationError", err.Error()))
	default:
		log.Errorf("%s: %v", message, err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(
			http.StatusInternalServerError, message, "DatabaseError", err.Error(),
		))
	}
}

// currentClaims returns the caller's claims, writing a 401 when absent
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := middelware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(
			http.StatusUnauthorized, "Authentication required", "AuthenticationError", "User not authenticated",
		))
		return nil, false
	}
	return claims, true
}
