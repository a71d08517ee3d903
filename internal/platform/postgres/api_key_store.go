package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/store"
)

// PostgresAPIKeyStore implements the store.APIKeyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAPIKeyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAPIKeyStore creates a new PostgreSQL implementation of the APIKeyStore interface.
func NewPostgresAPIKeyStore(db store.DBTX, log *slog.Logger) *PostgresAPIKeyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresAPIKeyStore{
		db:     db,
		logger: log.With(slog.String("component", "api_key_store")),
	}
}

var _ store.APIKeyStore = (*PostgresAPIKeyStore)(nil)

// Upsert implements store.APIKeyStore.Upsert
// The original created_at is kept when a key is replaced.
func (s *PostgresAPIKeyStore) Upsert(ctx context.Context, key *domain.UserAPIKey) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_api_keys (user_id, provider, sealed_key, key_hint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, provider) DO UPDATE
		SET sealed_key = EXCLUDED.sealed_key,
		    key_hint = EXCLUDED.key_hint,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		key.UserID,
		key.Provider,
		key.Sealed,
		key.Hint,
		key.CreatedAt,
		key.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert api key",
			slog.String("error", err.Error()),
			slog.String("user_id", key.UserID.String()),
			slog.String("provider", key.Provider))
		return MapError(err)
	}

	log.Info("api key stored",
		slog.String("user_id", key.UserID.String()),
		slog.String("provider", key.Provider))
	return nil
}

// Get implements store.APIKeyStore.Get
func (s *PostgresAPIKeyStore) Get(ctx context.Context, userID uuid.UUID, provider string) (*domain.UserAPIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, provider, sealed_key, key_hint, created_at, updated_at
		FROM user_api_keys
		WHERE user_id = $1 AND provider = $2
	`

	var key domain.UserAPIKey
	err := s.db.QueryRowContext(ctx, query, userID, provider).Scan(
		&key.UserID,
		&key.Provider,
		&key.Sealed,
		&key.Hint,
		&key.CreatedAt,
		&key.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrAPIKeyNotFound
		}
		log.Error("failed to get api key",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapped
	}

	return &key, nil
}

// Delete implements store.APIKeyStore.Delete
func (s *PostgresAPIKeyStore) Delete(ctx context.Context, userID uuid.UUID, provider string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM user_api_keys WHERE user_id = $1 AND provider = $2`, userID, provider)
	if err != nil {
		log.Error("failed to delete api key",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrAPIKeyNotFound); err != nil {
		return err
	}

	log.Info("api key deleted",
		slog.String("user_id", userID.String()),
		slog.String("provider", provider))
	return nil
}
