package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xgenie/xgenie-api/internal/api/shared"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/service"
)

// KeyHandler handles user API key requests.
type KeyHandler struct {
	keys   service.APIKeyService
	logger *slog.Logger
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keys service.APIKeyService, log *slog.Logger) *KeyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for KeyHandler")
	}
	return &KeyHandler{
		keys:   keys,
		logger: log.With(slog.String("component", "key_handler")),
	}
}

// providerParam reads the optional ?provider= query parameter.
func providerParam(r *http.Request) string {
	return r.URL.Query().Get("provider")
}

// GetKey handles GET /api/keys.
func (h *KeyHandler) GetKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	status, err := h.keys.KeyStatus(r.Context(), userID, providerParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// SaveKey handles PUT /api/keys.
func (h *KeyHandler) SaveKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveKeyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	status, err := h.keys.SaveKey(r.Context(), userID, req.Provider, req.APIKey)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// DeleteKey handles DELETE /api/keys.
func (h *KeyHandler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.keys.DeleteKey(r.Context(), userID, providerParam(r)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TestKey handles POST /api/keys/test. The key is checked, never stored.
func (h *KeyHandler) TestKey(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req TestKeyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	check, err := h.keys.TestKey(r.Context(), req.Provider, req.APIKey)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "api key test succeeded",
		slog.String("model", check.Model))

	shared.RespondWithJSON(w, r, http.StatusOK, TestKeyResponse{
		Success:         true,
		ModelUsed:       check.Model,
		AvailableModels: check.AvailableModels,
		Note:            fmt.Sprintf("利用可能なモデルが見つかりました: %s...", strings.Join(check.AvailableModels, ", ")),
	})
}
