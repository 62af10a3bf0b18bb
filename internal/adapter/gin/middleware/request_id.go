package middleware

import (
	"github.com/gin-gonic/gin"

	"users-api/pkg/logger"
)

// RequestID reuses an incoming X-Request-ID or generates one, echoes it on
// the response and stores it in the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := logger.NewRequestID(c.GetHeader(logger.RequestIDHeader))

		c.Header(logger.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
