package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/xgenie/xgenie-api/internal/generation"
)

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when the response was stopped by safety filters.
	ErrContentBlocked = errors.New("content blocked by safety filters")
)

// normalizeError converts SDK errors into *generation.ProviderError so the
// status code survives for classification. Context errors pass through untouched.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &generation.ProviderError{
			StatusCode: apiErr.Code,
			Status:     apiErr.Status,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &generation.ProviderError{
			StatusCode: apiErrPtr.Code,
			Status:     apiErrPtr.Status,
			Message:    apiErrPtr.Message,
			Err:        err,
		}
	}

	return &generation.ProviderError{Message: err.Error(), Err: err}
}

// clientError marks a failure to build the SDK client.
func clientError(err error) error {
	return fmt.Errorf("failed to create Gemini client: %w", err)
}
