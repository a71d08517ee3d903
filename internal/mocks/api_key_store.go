package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/store"
)

var _ store.APIKeyStore = (*TestifyMockAPIKeyStore)(nil)

// TestifyMockAPIKeyStore is a mock of store.APIKeyStore for use with testify/mock
type TestifyMockAPIKeyStore struct {
	mock.Mock
}

// Upsert is a mock implementation of store.APIKeyStore.Upsert
func (m *TestifyMockAPIKeyStore) Upsert(ctx context.Context, key *domain.UserAPIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Get is a mock implementation of store.APIKeyStore.Get
func (m *TestifyMockAPIKeyStore) Get(ctx context.Context, userID uuid.UUID, provider string) (*domain.UserAPIKey, error) {
	args := m.Called(ctx, userID, provider)
	if key, ok := args.Get(0).(*domain.UserAPIKey); ok {
		return key, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.APIKeyStore.Delete
func (m *TestifyMockAPIKeyStore) Delete(ctx context.Context, userID uuid.UUID, provider string) error {
	args := m.Called(ctx, userID, provider)
	return args.Error(0)
}
