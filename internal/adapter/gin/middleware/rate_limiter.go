package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"users-api/internal/adapter/ratelimit"
)

// RateLimiter returns a Gin middleware that applies the token bucket per
// route and client IP. A nil or disabled limiter lets everything through.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		scope := c.Request.Method + " " + route

		if !limiter.Allow(c.Request.Context(), scope, c.ClientIP()) {
			cfg := limiter.Config()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": fmt.Sprintf("Rate limit exceeded: %.2f requests/second (burst capacity: %d)", cfg.RequestsPerSecond, cfg.BurstCapacity),
			})
			return
		}

		c.Next()
	}
}
