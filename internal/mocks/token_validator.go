package mocks

import (
	"context"

	"github.com/xgenie/xgenie-api/internal/service/auth"
)

var _ auth.TokenValidator = (*MockTokenValidator)(nil)

// MockTokenValidator implements auth.TokenValidator for testing
type MockTokenValidator struct {
	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when ValidateTokenFn is not set
	Claims *auth.Claims
	Err    error
}

// ValidateToken implements the auth.TokenValidator interface
func (m *MockTokenValidator) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}
