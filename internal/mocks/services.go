package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/service"
)

var (
	_ service.DraftService  = (*MockDraftService)(nil)
	_ service.APIKeyService = (*MockAPIKeyService)(nil)
)

// MockDraftService implements service.DraftService for testing.
// Unset functions return zero values.
type MockDraftService struct {
	GenerateDraftFn func(ctx context.Context, userID uuid.UUID, req service.GenerateDraftRequest) (*service.GenerateDraftResult, error)
	ListDraftsFn    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error)
	GetDraftFn      func(ctx context.Context, userID, draftID uuid.UUID) (*service.DraftDetail, error)
	DeleteDraftFn   func(ctx context.Context, userID, draftID uuid.UUID) error
}

// GenerateDraft implements service.DraftService
func (m *MockDraftService) GenerateDraft(
	ctx context.Context,
	userID uuid.UUID,
	req service.GenerateDraftRequest,
) (*service.GenerateDraftResult, error) {
	if m.GenerateDraftFn != nil {
		return m.GenerateDraftFn(ctx, userID, req)
	}
	return nil, nil
}

// ListDrafts implements service.DraftService
func (m *MockDraftService) ListDrafts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error) {
	if m.ListDraftsFn != nil {
		return m.ListDraftsFn(ctx, userID, limit, offset)
	}
	return []*domain.Draft{}, nil
}

// GetDraft implements service.DraftService
func (m *MockDraftService) GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*service.DraftDetail, error) {
	if m.GetDraftFn != nil {
		return m.GetDraftFn(ctx, userID, draftID)
	}
	return nil, service.ErrDraftNotFound
}

// DeleteDraft implements service.DraftService
func (m *MockDraftService) DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error {
	if m.DeleteDraftFn != nil {
		return m.DeleteDraftFn(ctx, userID, draftID)
	}
	return nil
}

// MockAPIKeyService implements service.APIKeyService for testing.
type MockAPIKeyService struct {
	SaveKeyFn    func(ctx context.Context, userID uuid.UUID, provider, apiKey string) (*service.KeyStatus, error)
	DeleteKeyFn  func(ctx context.Context, userID uuid.UUID, provider string) error
	KeyStatusFn  func(ctx context.Context, userID uuid.UUID, provider string) (*service.KeyStatus, error)
	TestKeyFn    func(ctx context.Context, provider, apiKey string) (*generation.KeyCheck, error)
	ResolveKeyFn func(ctx context.Context, userID uuid.UUID) (string, error)
}

// SaveKey implements service.APIKeyService
func (m *MockAPIKeyService) SaveKey(ctx context.Context, userID uuid.UUID, provider, apiKey string) (*service.KeyStatus, error) {
	if m.SaveKeyFn != nil {
		return m.SaveKeyFn(ctx, userID, provider, apiKey)
	}
	return &service.KeyStatus{Provider: provider, Configured: true, Hint: domain.KeyHint(apiKey)}, nil
}

// DeleteKey implements service.APIKeyService
func (m *MockAPIKeyService) DeleteKey(ctx context.Context, userID uuid.UUID, provider string) error {
	if m.DeleteKeyFn != nil {
		return m.DeleteKeyFn(ctx, userID, provider)
	}
	return nil
}

// KeyStatus implements service.APIKeyService
func (m *MockAPIKeyService) KeyStatus(ctx context.Context, userID uuid.UUID, provider string) (*service.KeyStatus, error) {
	if m.KeyStatusFn != nil {
		return m.KeyStatusFn(ctx, userID, provider)
	}
	return &service.KeyStatus{Provider: provider}, nil
}

// TestKey implements service.APIKeyService
func (m *MockAPIKeyService) TestKey(ctx context.Context, provider, apiKey string) (*generation.KeyCheck, error) {
	if m.TestKeyFn != nil {
		return m.TestKeyFn(ctx, provider, apiKey)
	}
	return &generation.KeyCheck{}, nil
}

// ResolveKey implements service.KeyResolver
func (m *MockAPIKeyService) ResolveKey(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.ResolveKeyFn != nil {
		return m.ResolveKeyFn(ctx, userID)
	}
	return "", service.ErrAPIKeyNotFound
}
