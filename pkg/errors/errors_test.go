package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		httpCode int
		grpcCode codes.Code
		message  string
	}{
		{"validation", NewValidationError("name", "name is required"), http.StatusBadRequest, codes.InvalidArgument, "name is required"},
		{"not found", NewNotFoundError("user", 7), http.StatusNotFound, codes.NotFound, "user not found: id=7"},
		{"conflict", NewConflictError("user", "email", "a@b.com"), http.StatusConflict, codes.AlreadyExists, ""},
		{"persistence", NewPersistenceError("create user", errors.New("disk full")), http.StatusInternalServerError, codes.Internal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)

			var hs HTTPStatuser
			assert.True(t, errors.As(wrapped, &hs))
			assert.Equal(t, tt.httpCode, hs.HTTPStatus())

			var gs GRPCStatuser
			assert.True(t, errors.As(wrapped, &gs))
			assert.Equal(t, tt.grpcCode, gs.GRPCStatus().Code())

			if tt.message != "" {
				assert.Equal(t, tt.message, tt.err.Error())
			}
		})
	}
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("list users", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.GRPCStatus().Message(), "connection reset")
}
