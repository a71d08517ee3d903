package api

import (
	"log/slog"
	"net/http"

	"github.com/xgenie/xgenie-api/internal/api/shared"
	"github.com/xgenie/xgenie-api/internal/service"
)

// Paging defaults for GET /api/drafts.
const (
	defaultDraftLimit = 20
	maxDraftLimit     = 100
)

// DraftHandler handles draft history requests.
type DraftHandler struct {
	drafts service.DraftService
	logger *slog.Logger
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(drafts service.DraftService, log *slog.Logger) *DraftHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DraftHandler")
	}
	return &DraftHandler{
		drafts: drafts,
		logger: log.With(slog.String("component", "draft_handler")),
	}
}

// ListDrafts handles GET /api/drafts?limit=&offset=.
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", defaultDraftLimit)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid limit")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid offset")
		return
	}
	if limit == 0 {
		limit = defaultDraftLimit
	}
	limit = min(limit, maxDraftLimit)

	drafts, err := h.drafts.ListDrafts(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list drafts")
		return
	}

	resp := DraftListResponse{
		Drafts: make([]DraftResponse, 0, len(drafts)),
		Limit:  limit,
		Offset: offset,
	}
	for _, d := range drafts {
		resp.Drafts = append(resp.Drafts, draftToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetDraft handles GET /api/drafts/{id}.
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, draftID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.drafts.GetDraft(r.Context(), userID, draftID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := draftToResponse(detail.Draft)
	resp.Content = &detail.Content
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// DeleteDraft handles DELETE /api/drafts/{id}.
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	userID, draftID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.drafts.DeleteDraft(r.Context(), userID, draftID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
