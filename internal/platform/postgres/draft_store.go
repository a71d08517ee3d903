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

// Default and maximum page sizes for ListByUser.
const (
	DefaultDraftPageSize = 20
	MaxDraftPageSize     = 100
)

// PostgresDraftStore implements the store.DraftStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDraftStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDraftStore creates a new PostgreSQL implementation of the DraftStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDraftStore(db store.DBTX, log *slog.Logger) *PostgresDraftStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresDraftStore{
		db:     db,
		logger: log.With(slog.String("component", "draft_store")),
	}
}

var _ store.DraftStore = (*PostgresDraftStore)(nil)

// Create implements store.DraftStore.Create
func (s *PostgresDraftStore) Create(ctx context.Context, draft *domain.Draft) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := draft.Validate(); err != nil {
		log.Warn("draft validation failed during create",
			slog.String("error", err.Error()),
			slog.String("draft_id", draft.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO drafts (id, user_id, event_name, content, mode, model_used, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		draft.ID,
		draft.UserID,
		draft.EventName,
		draft.Content,
		string(draft.Mode),
		draft.ModelUsed,
		string(draft.Status),
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create draft",
			slog.String("error", err.Error()),
			slog.String("draft_id", draft.ID.String()),
			slog.String("user_id", draft.UserID.String()))
		return MapError(err)
	}

	log.Info("draft created successfully",
		slog.String("draft_id", draft.ID.String()),
		slog.String("user_id", draft.UserID.String()),
		slog.String("mode", string(draft.Mode)))
	return nil
}

// GetByID implements store.DraftStore.GetByID
func (s *PostgresDraftStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Draft, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, event_name, content, mode, model_used, status, created_at, updated_at
		FROM drafts
		WHERE id = $1 AND user_id = $2
	`

	draft, err := scanDraft(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("draft not found", slog.String("draft_id", id.String()))
			return nil, store.ErrDraftNotFound
		}
		log.Error("failed to get draft by ID",
			slog.String("error", err.Error()),
			slog.String("draft_id", id.String()))
		return nil, mapped
	}

	return draft, nil
}

// ListByUser implements store.DraftStore.ListByUser
func (s *PostgresDraftStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit, offset = clampPage(limit, offset)

	query := `
		SELECT id, user_id, event_name, content, mode, model_used, status, created_at, updated_at
		FROM drafts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list drafts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	drafts := make([]*domain.Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, MapError(err)
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("drafts listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(drafts)))
	return drafts, nil
}

// Delete implements store.DraftStore.Delete
func (s *PostgresDraftStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete draft",
			slog.String("error", err.Error()),
			slog.String("draft_id", id.String()))
		return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDraftNotFound); err != nil {
		return err
	}

	log.Info("draft deleted successfully", slog.String("draft_id", id.String()))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*domain.Draft, error) {
	var (
		draft  domain.Draft
		mode   string
		status string
	)
	err := row.Scan(
		&draft.ID,
		&draft.UserID,
		&draft.EventName,
		&draft.Content,
		&mode,
		&draft.ModelUsed,
		&status,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	draft.Mode = domain.Mode(mode)
	draft.Status = domain.DraftStatus(status)
	return &draft, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultDraftPageSize
	}
	if limit > MaxDraftPageSize {
		limit = MaxDraftPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
