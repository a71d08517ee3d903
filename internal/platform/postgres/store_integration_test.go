//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/platform/postgres"
	"github.com/xgenie/xgenie-api/internal/store"
	"github.com/xgenie/xgenie-api/internal/testdb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostgresDraftStore(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresDraftStore(tx, testLogger())
		userID := uuid.New()

		first, err := domain.NewDraft(userID, "", "<post1>a</post1>", domain.ModeBuzz, "gemini-2.0-flash")
		require.NoError(t, err)
		first.CreatedAt = time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond)
		require.NoError(t, s.Create(ctx, first))

		second, err := domain.NewDraft(userID, "夏祭り", "<post1>b</post1>", domain.ModeStory, "gemini-1.5-flash")
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, second))

		got, err := s.GetByID(ctx, userID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultEventName, got.EventName)
		assert.Equal(t, domain.ModeBuzz, got.Mode)
		assert.Equal(t, domain.DraftStatusDraft, got.Status)

		_, err = s.GetByID(ctx, uuid.New(), first.ID)
		assert.ErrorIs(t, err, store.ErrDraftNotFound, "other users cannot read the draft")

		list, err := s.ListByUser(ctx, userID, 10, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID, "newest first")

		assert.ErrorIs(t, s.Delete(ctx, uuid.New(), first.ID), store.ErrDraftNotFound)
		require.NoError(t, s.Delete(ctx, userID, first.ID))
		assert.ErrorIs(t, s.Delete(ctx, userID, first.ID), store.ErrDraftNotFound)

		empty, err := s.ListByUser(ctx, uuid.New(), 0, 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestPostgresAPIKeyStore(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresAPIKeyStore(tx, testLogger())
		userID := uuid.New()
		now := time.Now().UTC()

		_, err := s.Get(ctx, userID, domain.ProviderGemini)
		assert.ErrorIs(t, err, store.ErrAPIKeyNotFound)

		key := &domain.UserAPIKey{
			UserID: userID, Provider: domain.ProviderGemini,
			Sealed: []byte{1, 2, 3}, Hint: "AIza...",
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, s.Upsert(ctx, key))

		key.Sealed = []byte{4, 5, 6}
		key.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, s.Upsert(ctx, key))

		got, err := s.Get(ctx, userID, domain.ProviderGemini)
		require.NoError(t, err)
		assert.Equal(t, []byte{4, 5, 6}, got.Sealed)
		assert.Equal(t, "AIza...", got.Hint)

		require.NoError(t, s.Delete(ctx, userID, domain.ProviderGemini))
		assert.ErrorIs(t, s.Delete(ctx, userID, domain.ProviderGemini), store.ErrAPIKeyNotFound)

		err = s.Upsert(ctx, &domain.UserAPIKey{UserID: userID, Provider: domain.ProviderGemini})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}
