package api

import (
	"context"
	"net/http"
	"time"

	"github.com/xgenie/xgenie-api/internal/api/shared"
)

// Pinger reports database reachability. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db                Pinger
	defaultCredential bool
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger, defaultCredential bool) *HealthHandler {
	return &HealthHandler{db: db, defaultCredential: defaultCredential}
}

// Health responds 200 when the database answers and 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", DefaultCredential: h.defaultCredential}
	status := http.StatusOK

	if h.db == nil {
		resp.Database = "unconfigured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}
