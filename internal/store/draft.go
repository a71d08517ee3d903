package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
)

// DraftStore defines the interface for draft persistence.
// Every read and delete is scoped to the owning user.
type DraftStore interface {
	// Create saves a new draft.
	// Returns ErrInvalidEntity wrapping the domain error if the draft is invalid.
	Create(ctx context.Context, draft *domain.Draft) error

	// GetByID retrieves a draft owned by userID.
	// Returns ErrDraftNotFound if it does not exist or belongs to someone else.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Draft, error)

	// ListByUser returns the user's drafts, newest first.
	// Returns an empty slice when the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error)

	// Delete removes a draft owned by userID.
	// Returns ErrDraftNotFound if nothing was deleted.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
