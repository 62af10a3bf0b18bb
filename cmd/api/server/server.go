package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"users-api/cmd/api/di"
	"users-api/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
	GRPC   *grpc.Server
}

// New creates a new server instance from the container's components
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		Gin: SetupGinServer(
			c.GinHandler,
			c.Store,
			c.RateLimiter,
			cfg.Logger.ServiceName,
			httpAddress(cfg),
			l,
		),
	}

	if cfg.App.GRPCEnabled() {
		s.GRPC = SetupGRPC(c.Store, c.RateLimiter, l)
	}

	return s
}

// Start runs the HTTP server and, when configured, the gRPC server. It
// returns when either stops.
func (s *Server) Start() error {
	errCh := make(chan error, 2)

	if s.GRPC != nil {
		go func() {
			if err := s.startGRPC(); err != nil {
				errCh <- fmt.Errorf("failed to start gRPC server: %w", err)
			}
		}()
	}

	go func() {
		s.Logger.Info("HTTP server running", zap.String("address", s.Gin.Addr))
		if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
		errCh <- nil
	}()

	return <-errCh
}

// startGRPC starts the gRPC server
func (s *Server) startGRPC() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", grpcAddress(s.Config))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("gRPC server running", zap.String("address", grpcAddress(s.Config)))
	return s.GRPC.Serve(lis)
}

// grpcAddress returns the gRPC server address
func grpcAddress(cfg *config.Config) string {
	return ":" + cfg.App.GRPCPort
}

// httpAddress returns the HTTP server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
