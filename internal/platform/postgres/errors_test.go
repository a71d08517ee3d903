package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/xgenie/xgenie-api/internal/platform/postgres"
	"github.com/xgenie/xgenie-api/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "drafts",
		ColumnName:     "content",
		ConstraintName: "drafts_mode_check",
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
		contains string
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), expected: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), expected: store.ErrInvalidEntity, contains: "foreign key"},
		{name: "check violation", err: fmt.Errorf("insert: %w", newPgError("23514")), expected: store.ErrInvalidEntity, contains: "drafts_mode_check"},
		{name: "not null violation", err: newPgError("23502"), expected: store.ErrInvalidEntity, contains: "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			assert.ErrorIs(t, got, tt.expected)
			if tt.contains != "" {
				assert.Contains(t, got.Error(), tt.contains)
			}
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Same(t, orig, postgres.MapError(orig))
		assert.Equal(t, newPgError("42P01"), postgres.MapError(newPgError("42P01")))
		assert.NoError(t, postgres.MapError(nil))
	})
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrDraftNotFound))
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, store.ErrDraftNotFound), store.ErrDraftNotFound)
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
	assert.Error(t, postgres.CheckRowsAffected(mockResult{err: errors.New("driver")}, nil))
}
