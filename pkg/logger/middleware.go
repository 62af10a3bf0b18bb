package logger

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDHeader carries the request ID over HTTP; gRPC metadata uses its lowercase form.
const RequestIDHeader = "X-Request-ID"

// NewRequestID returns the incoming ID when present, else a fresh UUID.
func NewRequestID(incoming string) string {
	if incoming != "" {
		return incoming
	}
	return uuid.NewString()
}

// RequestIDInterceptor is a gRPC interceptor that adds a request ID to the context
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		var incoming string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get("x-request-id"); len(ids) > 0 {
				incoming = ids[0]
			}
		}

		ctx = ContextWithRequestID(ctx, NewRequestID(incoming))
		return handler(ctx, req)
	}
}
