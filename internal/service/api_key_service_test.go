package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/mocks"
	"github.com/xgenie/xgenie-api/internal/platform/secretbox"
	"github.com/xgenie/xgenie-api/internal/service"
	"github.com/xgenie/xgenie-api/internal/store"
)

func newSealer(t *testing.T) *secretbox.Sealer {
	t.Helper()
	sealer, err := secretbox.New(make([]byte, 32))
	require.NoError(t, err)
	return sealer
}

func newAPIKeyService(t *testing.T, keys store.APIKeyStore, tester service.KeyTester) service.APIKeyService {
	t.Helper()
	svc, err := service.NewAPIKeyService(keys, newSealer(t), tester, discardLogger())
	require.NoError(t, err)
	return svc
}

func TestSaveKeyThenResolve(t *testing.T) {
	userID := uuid.New()
	keys := &mocks.TestifyMockAPIKeyStore{}

	var stored *domain.UserAPIKey
	keys.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.UserAPIKey")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.UserAPIKey) }).
		Return(nil)

	svc := newAPIKeyService(t, keys, &mocks.MockKeyTester{})

	status, err := svc.SaveKey(context.Background(), userID, "", "  AIzaSecretValue  ")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, status.Provider)
	assert.True(t, status.Configured)
	assert.Equal(t, "AIza...", status.Hint)

	require.NotNil(t, stored)
	assert.NotContains(t, string(stored.Sealed), "AIzaSecretValue")

	keys.On("Get", mock.Anything, userID, domain.ProviderGemini).Return(stored, nil)
	plain, err := svc.ResolveKey(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSecretValue", plain)
}

func TestResolveKey_BoundToOwner(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	sealer := newSealer(t)

	sealed, err := sealer.Seal([]byte("AIzaSecretValue"), []byte(owner.String()+":gemini"))
	require.NoError(t, err)

	keys := &mocks.TestifyMockAPIKeyStore{}
	keys.On("Get", mock.Anything, other, domain.ProviderGemini).Return(&domain.UserAPIKey{
		UserID:   owner,
		Provider: domain.ProviderGemini,
		Sealed:   sealed,
	}, nil)

	svc, err := service.NewAPIKeyService(keys, sealer, &mocks.MockKeyTester{}, discardLogger())
	require.NoError(t, err)

	_, err = svc.ResolveKey(context.Background(), other)
	assert.ErrorIs(t, err, secretbox.ErrDecrypt)
}

func TestResolveKey_NotFound(t *testing.T) {
	userID := uuid.New()
	keys := &mocks.TestifyMockAPIKeyStore{}
	keys.On("Get", mock.Anything, userID, domain.ProviderGemini).Return(nil, store.ErrAPIKeyNotFound)

	_, err := newAPIKeyService(t, keys, &mocks.MockKeyTester{}).ResolveKey(context.Background(), userID)
	assert.ErrorIs(t, err, service.ErrAPIKeyNotFound)
}

func TestSaveKey_Validation(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		wantErr  error
	}{
		{name: "empty key", provider: "gemini", key: "   ", wantErr: service.ErrEmptyAPIKey},
		{name: "unsupported provider", provider: "grok", key: "xai-123", wantErr: service.ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := &mocks.TestifyMockAPIKeyStore{}
			svc := newAPIKeyService(t, keys, &mocks.MockKeyTester{})

			_, err := svc.SaveKey(context.Background(), uuid.New(), tt.provider, tt.key)
			assert.ErrorIs(t, err, tt.wantErr)
			keys.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestKeyStatus(t *testing.T) {
	userID := uuid.New()
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("configured", func(t *testing.T) {
		keys := &mocks.TestifyMockAPIKeyStore{}
		keys.On("Get", mock.Anything, userID, "gemini").Return(&domain.UserAPIKey{
			UserID:    userID,
			Provider:  "gemini",
			Sealed:    []byte{1},
			Hint:      "AIza...",
			UpdatedAt: updated,
		}, nil)

		status, err := newAPIKeyService(t, keys, &mocks.MockKeyTester{}).KeyStatus(context.Background(), userID, "Gemini")
		require.NoError(t, err)
		assert.True(t, status.Configured)
		assert.Equal(t, "AIza...", status.Hint)
		require.NotNil(t, status.UpdatedAt)
		assert.Equal(t, updated, *status.UpdatedAt)
	})

	t.Run("not configured", func(t *testing.T) {
		keys := &mocks.TestifyMockAPIKeyStore{}
		keys.On("Get", mock.Anything, userID, "gemini").Return(nil, store.ErrAPIKeyNotFound)

		status, err := newAPIKeyService(t, keys, &mocks.MockKeyTester{}).KeyStatus(context.Background(), userID, "gemini")
		require.NoError(t, err)
		assert.False(t, status.Configured)
		assert.Nil(t, status.UpdatedAt)
	})
}

func TestDeleteKey(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "deleted", storeErr: nil, wantErr: nil},
		{name: "not found", storeErr: store.ErrAPIKeyNotFound, wantErr: service.ErrAPIKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := &mocks.TestifyMockAPIKeyStore{}
			keys.On("Delete", mock.Anything, userID, "gemini").Return(tt.storeErr)

			err := newAPIKeyService(t, keys, &mocks.MockKeyTester{}).DeleteKey(context.Background(), userID, "gemini")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTestKey(t *testing.T) {
	check := &generation.KeyCheck{Model: "gemini-1.5-flash", AvailableModels: []string{"gemini-1.5-flash"}}

	tests := []struct {
		name      string
		provider  string
		key       string
		tester    *mocks.MockKeyTester
		wantCheck *generation.KeyCheck
		wantErr   error
	}{
		{
			name:      "verified",
			provider:  "gemini",
			key:       "AIzaCandidate",
			tester:    &mocks.MockKeyTester{Check: check},
			wantCheck: check,
		},
		{
			name:     "rejected",
			provider: "gemini",
			key:      "AIzaCandidate",
			tester:   &mocks.MockKeyTester{Err: generation.ErrKeyRejected},
			wantErr:  generation.ErrKeyRejected,
		},
		{
			name:     "unsupported provider",
			provider: "grok",
			key:      "xai-123",
			tester:   &mocks.MockKeyTester{Err: errors.New("must not be called")},
			wantErr:  service.ErrUnsupportedProvider,
		},
		{
			name:     "empty key",
			provider: "gemini",
			key:      "",
			tester:   &mocks.MockKeyTester{Err: errors.New("must not be called")},
			wantErr:  service.ErrEmptyAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAPIKeyService(t, &mocks.TestifyMockAPIKeyStore{}, tt.tester)

			got, err := svc.TestKey(context.Background(), tt.provider, tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCheck, got)
		})
	}
}
