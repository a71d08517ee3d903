package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/store"
)

// Sealer encrypts stored keys. *secretbox.Sealer implements it.
type Sealer interface {
	Seal(plaintext, additionalData []byte) ([]byte, error)
	Open(sealed, additionalData []byte) ([]byte, error)
}

// KeyTester checks a candidate key against the provider.
// *generation.KeyVerifier implements it.
type KeyTester interface {
	Verify(ctx context.Context, apiKey string) (*generation.KeyCheck, error)
}

// KeyStatus describes a user's stored key without revealing it.
type KeyStatus struct {
	Provider   string     `json:"provider"`
	Configured bool       `json:"configured"`
	Hint       string     `json:"hint,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// APIKeyService manages the provider keys users register.
type APIKeyService interface {
	KeyResolver

	// SaveKey stores or replaces the user's key for provider.
	SaveKey(ctx context.Context, userID uuid.UUID, provider, apiKey string) (*KeyStatus, error)

	// DeleteKey removes the user's key for provider.
	DeleteKey(ctx context.Context, userID uuid.UUID, provider string) error

	// KeyStatus reports whether the user has a key for provider.
	KeyStatus(ctx context.Context, userID uuid.UUID, provider string) (*KeyStatus, error)

	// TestKey checks a candidate key without storing it.
	TestKey(ctx context.Context, provider, apiKey string) (*generation.KeyCheck, error)
}

// apiKeyServiceImpl implements the APIKeyService interface
type apiKeyServiceImpl struct {
	keys   store.APIKeyStore
	sealer Sealer
	tester KeyTester
	logger *slog.Logger
	now    func() time.Time
}

// NewAPIKeyService creates a new APIKeyService.
// It returns an error if any of the required dependencies are nil.
func NewAPIKeyService(keys store.APIKeyStore, sealer Sealer, tester KeyTester, log *slog.Logger) (APIKeyService, error) {
	if keys == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "api key store cannot be nil"}
	}
	if sealer == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "sealer cannot be nil"}
	}
	if tester == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "key tester cannot be nil"}
	}
	if log == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &apiKeyServiceImpl{
		keys:   keys,
		sealer: sealer,
		tester: tester,
		logger: log.With(slog.String("component", "api_key_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// sealingContext binds a sealed key to its owner and provider.
func sealingContext(userID uuid.UUID, provider string) []byte {
	return []byte(userID.String() + ":" + provider)
}

func normalizeProvider(provider string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = domain.ProviderGemini
	}
	if provider != domain.ProviderGemini {
		return "", ErrUnsupportedProvider
	}
	return provider, nil
}

// SaveKey implements APIKeyService.
func (s *apiKeyServiceImpl) SaveKey(ctx context.Context, userID uuid.UUID, provider, apiKey string) (*KeyStatus, error) {
	provider, err := normalizeProvider(provider)
	if err != nil {
		return nil, err
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	sealed, err := s.sealer.Seal([]byte(apiKey), sealingContext(userID, provider))
	if err != nil {
		return nil, NewServiceError("save_key", "failed to seal api key", err)
	}

	now := s.now()
	key := &domain.UserAPIKey{
		UserID:    userID,
		Provider:  provider,
		Sealed:    sealed,
		Hint:      domain.KeyHint(apiKey),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.keys.Upsert(ctx, key); err != nil {
		return nil, NewServiceError("save_key", "failed to store api key", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "api key saved",
		slog.String("user_id", userID.String()),
		slog.String("provider", provider),
		slog.String("key_hint", key.Hint))

	return &KeyStatus{Provider: provider, Configured: true, Hint: key.Hint, UpdatedAt: &now}, nil
}

// DeleteKey implements APIKeyService.
func (s *apiKeyServiceImpl) DeleteKey(ctx context.Context, userID uuid.UUID, provider string) error {
	provider, err := normalizeProvider(provider)
	if err != nil {
		return err
	}
	if err := s.keys.Delete(ctx, userID, provider); err != nil {
		return NewServiceError("delete_key", "failed to delete api key", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "api key deleted",
		slog.String("user_id", userID.String()),
		slog.String("provider", provider))
	return nil
}

// KeyStatus implements APIKeyService.
func (s *apiKeyServiceImpl) KeyStatus(ctx context.Context, userID uuid.UUID, provider string) (*KeyStatus, error) {
	provider, err := normalizeProvider(provider)
	if err != nil {
		return nil, err
	}

	key, err := s.keys.Get(ctx, userID, provider)
	if errors.Is(err, store.ErrAPIKeyNotFound) {
		return &KeyStatus{Provider: provider}, nil
	}
	if err != nil {
		return nil, NewServiceError("key_status", "failed to get api key", err)
	}

	updated := key.UpdatedAt
	return &KeyStatus{Provider: provider, Configured: true, Hint: key.Hint, UpdatedAt: &updated}, nil
}

// ResolveKey implements KeyResolver for the gemini provider.
func (s *apiKeyServiceImpl) ResolveKey(ctx context.Context, userID uuid.UUID) (string, error) {
	key, err := s.keys.Get(ctx, userID, domain.ProviderGemini)
	if err != nil {
		return "", NewServiceError("resolve_key", "failed to get api key", err)
	}

	plain, err := s.sealer.Open(key.Sealed, sealingContext(userID, key.Provider))
	if err != nil {
		return "", NewServiceError("resolve_key", "failed to open sealed api key", err)
	}
	return strings.TrimSpace(string(plain)), nil
}

// TestKey implements APIKeyService.
func (s *apiKeyServiceImpl) TestKey(ctx context.Context, provider, apiKey string) (*generation.KeyCheck, error) {
	if _, err := normalizeProvider(provider); err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrEmptyAPIKey
	}
	return s.tester.Verify(ctx, apiKey)
}
