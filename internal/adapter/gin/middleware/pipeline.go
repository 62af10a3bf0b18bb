package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/internal/adapter/ratelimit"
)

// Stage is one named step in front of the router.
type Stage struct {
	Name    string
	Handler gin.HandlerFunc
}

// Pipeline returns the stages every request passes before dispatch, in order.
func Pipeline(log *zap.Logger, limiter *ratelimit.Limiter) []Stage {
	return []Stage{
		{Name: "recovery", Handler: Recovery(log)},
		{Name: "request_id", Handler: RequestID()},
		{Name: "request_log", Handler: Logger(log)},
		{Name: "rate_limit", Handler: RateLimiter(limiter)},
	}
}

// Handlers flattens stages for gin's Use.
func Handlers(stages []Stage) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, len(stages))
	for i, s := range stages {
		handlers[i] = s.Handler
	}
	return handlers
}
