package service

import (
	"errors"
	"fmt"

	"github.com/xgenie/xgenie-api/internal/store"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrDraftNotFound indicates the draft does not exist or is owned by another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrAPIKeyNotFound indicates the user has not registered a key.
	// API layer should map this to HTTP 404 Not Found.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrUnsupportedProvider indicates a provider other than gemini was requested.
	// API layer should map this to HTTP 400 Bad Request.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrEmptyAPIKey indicates an empty key was submitted.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyAPIKey = errors.New("api key cannot be empty")
)

// ServiceError wraps unexpected errors from a service operation with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "list_drafts", "save_key")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err. Store not-found errors are translated to the
// service sentinels and returned unwrapped.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDraftNotFound), errors.Is(err, store.ErrDraftNotFound):
		return ErrDraftNotFound
	case errors.Is(err, ErrAPIKeyNotFound), errors.Is(err, store.ErrAPIKeyNotFound):
		return ErrAPIKeyNotFound
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
