package middelware

import (
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware provides request logging
type LoggingMiddleware struct {
	logger logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log,
	}
}

// StructuredLogger provides structured logging for requests
func (m *LoggingMiddleware) StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"query":      raw,
			"status":     status,
			"latency":    latency,
			"ip":         c.ClientIP(),
			"request_id": requestID,
		}

		// set by AuthMiddleware on authenticated routes
		if userID, ok := c.Get("user_id"); ok {
			fields["user_id"] = userID
			fields["role"] = c.GetString("user_role")
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= 500:
			m.logger.Errorf("HTTP request completed with error: %+v", fields)
		case status >= 400:
			m.logger.Warnf("HTTP request completed with client error: %+v", fields)
		default:
			m.logger.Infof("HTTP request completed successfully: %+v", fields)
		}
	}
}

// Recovery middleware with logging
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse(
			http.StatusInternalServerError, "Internal Server Error", "InternalError", "An unexpected error occurred",
		))
	})
}
