package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "users-api/internal/adapter/grpc"
	"users-api/internal/adapter/grpc/middleware"
	"users-api/internal/adapter/ratelimit"
	"users-api/pkg/logger"
)

// SetupGRPC creates the gRPC server exposing the store health check
func SetupGRPC(pinger grpcadapter.Pinger, rateLimiter *ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.RateLimit(rateLimiter),
		),
	)
	healthpb.RegisterHealthServer(grpcServer, grpcadapter.NewHealthServer(pinger, l))
	reflection.Register(grpcServer)

	return grpcServer
}
