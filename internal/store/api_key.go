package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
)

// APIKeyStore defines the interface for user API key persistence.
type APIKeyStore interface {
	// Upsert inserts the key or replaces the user's existing key for the same provider.
	Upsert(ctx context.Context, key *domain.UserAPIKey) error

	// Get returns the user's key for provider.
	// Returns ErrAPIKeyNotFound if none is stored.
	Get(ctx context.Context, userID uuid.UUID, provider string) (*domain.UserAPIKey, error)

	// Delete removes the user's key for provider.
	// Returns ErrAPIKeyNotFound if none is stored.
	Delete(ctx context.Context, userID uuid.UUID, provider string) error
}
