package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"users-api/pkg/logger"
)

// ServiceName is the health service name reported for the users API.
// The empty name asks about the server as a whole and gets the same answer.
const ServiceName = "users.v1.UserService"

// Pinger reports whether the user store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer implements grpc.health.v1.Health by pinging the user store.
type HealthServer struct {
	healthpb.UnimplementedHealthServer
	store   Pinger
	timeout time.Duration
	log     *zap.Logger
}

// NewHealthServer creates a new gRPC health server.
func NewHealthServer(store Pinger, log *zap.Logger) *HealthServer {
	return &HealthServer{store: store, timeout: 2 * time.Second, log: log}
}

// Check handles grpc.health.v1.Health/Check.
func (s *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		logger.WithContext(ctx, s.log).Warn("gRPC health check failed", zap.Error(err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
