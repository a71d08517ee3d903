package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/store"
)

var _ store.DraftStore = (*TestifyMockDraftStore)(nil)

// TestifyMockDraftStore is a mock of store.DraftStore for use with testify/mock
type TestifyMockDraftStore struct {
	mock.Mock
}

// Create is a mock implementation of store.DraftStore.Create
func (m *TestifyMockDraftStore) Create(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

// GetByID is a mock implementation of store.DraftStore.GetByID
func (m *TestifyMockDraftStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Draft, error) {
	args := m.Called(ctx, userID, id)
	if draft, ok := args.Get(0).(*domain.Draft); ok {
		return draft, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.DraftStore.ListByUser
func (m *TestifyMockDraftStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Draft, error) {
	args := m.Called(ctx, userID, limit, offset)
	if drafts, ok := args.Get(0).([]*domain.Draft); ok {
		return drafts, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.DraftStore.Delete
func (m *TestifyMockDraftStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
