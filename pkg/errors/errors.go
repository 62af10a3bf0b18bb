package errors

import (
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidationError represents a payload that failed the user schema.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// GRPCStatus returns the gRPC status for this error
func (e *ValidationError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// NotFoundError represents a lookup of an id the store does not hold.
type NotFoundError struct {
	Resource string
	ID       int64
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s not found: id=%d", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// GRPCStatus returns the gRPC status for this error
func (e *NotFoundError) GRPCStatus() *status.Status {
	return status.New(codes.NotFound, e.Error())
}

// ConflictError represents a uniqueness violation, e.g. a duplicate email.
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, field, value string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Field:    field,
		Value:    value,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// HTTPStatus returns the HTTP status for this error
func (e *ConflictError) HTTPStatus() int {
	return http.StatusConflict
}

// GRPCStatus returns the gRPC status for this error
func (e *ConflictError) GRPCStatus() *status.Status {
	return status.New(codes.AlreadyExists, e.Error())
}

// PersistenceError represents a failure of the persistence engine itself.
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s", e.Op)
}

// Unwrap returns the wrapped error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *PersistenceError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// GRPCStatus returns the gRPC status for this error.
// The underlying cause is not exposed to callers.
func (e *PersistenceError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, "internal server error")
}

// HTTPStatuser is implemented by errors that map onto an HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
}

// GRPCStatuser interface for errors that can provide gRPC status
type GRPCStatuser interface {
	GRPCStatus() *status.Status
}
