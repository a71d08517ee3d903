package api

import (
	"log/slog"
	"net/http"

	"github.com/xgenie/xgenie-api/internal/api/shared"
	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/service"
)

// GenerateHandler handles draft generation requests.
type GenerateHandler struct {
	drafts service.DraftService
	logger *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(drafts service.DraftService, log *slog.Logger) *GenerateHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}
	return &GenerateHandler{
		drafts: drafts,
		logger: log.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /api/generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.drafts.GenerateDraft(r.Context(), userID, service.GenerateDraftRequest{
		EventName: req.EventName,
		EventInfo: req.EventInfo,
		Mode:      domain.Mode(req.Mode),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := GenerateResponse{
		Result:  res.Result.RawText,
		Model:   res.Result.ModelUsed,
		KeyType: res.KeyType.Label(),
		Content: res.Result.Content,
	}
	if res.Draft != nil {
		resp.DraftID = res.Draft.ID.String()
	}

	log.InfoContext(r.Context(), "draft generated",
		slog.String("model", resp.Model),
		slog.String("key_type", string(res.KeyType)),
		slog.Bool("saved", res.Draft != nil))

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
