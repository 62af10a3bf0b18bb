package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "users-api/internal/adapter/gin/handler"
	ginrouter "users-api/internal/adapter/gin/router"
	"users-api/internal/adapter/ratelimit"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	pinger ginhandler.Pinger,
	rateLimiter *ratelimit.Limiter,
	serviceName string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, pinger, rateLimiter, serviceName, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
