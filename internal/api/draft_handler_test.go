package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/mocks"
	"github.com/xgenie/xgenie-api/internal/service"
)

func TestDraftHandler_ListDrafts(t *testing.T) {
	userID := uuid.New()
	draft, err := domain.NewDraft(userID, "", sampleOutput, domain.ModeTrust, "gemini-1.5-flash")
	require.NoError(t, err)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantLimit: 20, wantOffset: 0},
		{name: "explicit", query: "?limit=5&offset=10", wantStatus: http.StatusOK, wantLimit: 5, wantOffset: 10},
		{name: "clamped", query: "?limit=1000", wantStatus: http.StatusOK, wantLimit: 100, wantOffset: 0},
		{name: "negative offset", query: "?offset=-1", wantStatus: http.StatusBadRequest},
		{name: "non numeric limit", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			svc := &mocks.MockDraftService{
				ListDraftsFn: func(_ context.Context, _ uuid.UUID, limit, offset int) ([]*domain.Draft, error) {
					gotLimit, gotOffset = limit, offset
					return []*domain.Draft{draft}, nil
				},
			}

			rec := httptest.NewRecorder()
			NewDraftHandler(svc, discardLogger()).ListDrafts(rec,
				newRequest(t, http.MethodGet, "/api/drafts"+tt.query, nil, userID, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, tt.wantOffset, gotOffset)

			var resp DraftListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp.Drafts, 1)
			assert.Equal(t, domain.DefaultEventName, resp.Drafts[0].EventName)
			assert.Nil(t, resp.Drafts[0].Content)
		})
	}
}

func TestDraftHandler_GetDraft(t *testing.T) {
	userID := uuid.New()
	draft, err := domain.NewDraft(userID, "朝活", sampleOutput, domain.ModeBuzz, "gemini-1.5-flash")
	require.NoError(t, err)

	svc := &mocks.MockDraftService{
		GetDraftFn: func(_ context.Context, _ uuid.UUID, id uuid.UUID) (*service.DraftDetail, error) {
			if id != draft.ID {
				return nil, service.ErrDraftNotFound
			}
			return &service.DraftDetail{Draft: draft, Content: generation.Parse(draft.Content)}, nil
		},
	}
	handler := NewDraftHandler(svc, discardLogger())

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetDraft(rec, newRequest(t, http.MethodGet, "/", nil, userID, map[string]string{"id": draft.ID.String()}))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp DraftResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Content)
		assert.Equal(t, "良い告知です", resp.Content.Comment)
		assert.Equal(t, "画像を添えて", resp.Content.Advice)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetDraft(rec, newRequest(t, http.MethodGet, "/", nil, userID, map[string]string{"id": uuid.NewString()}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Draft not found", decodeError(t, rec).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetDraft(rec, newRequest(t, http.MethodGet, "/", nil, userID, map[string]string{"id": "not-a-uuid"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid id", decodeError(t, rec).Error)
	})
}

func TestDraftHandler_DeleteDraft(t *testing.T) {
	userID := uuid.New()
	existing := uuid.New()

	svc := &mocks.MockDraftService{
		DeleteDraftFn: func(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
			if id != existing {
				return service.ErrDraftNotFound
			}
			return nil
		},
	}
	handler := NewDraftHandler(svc, discardLogger())

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"deleted", existing.String(), http.StatusNoContent},
		{"not found", uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.DeleteDraft(rec, newRequest(t, http.MethodDelete, "/", nil, userID, map[string]string{"id": tt.id}))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
