package api

import (
	"time"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
)

// GenerateRequest is the payload of POST /api/generate.
type GenerateRequest struct {
	EventInfo string `json:"event_info" validate:"required"`
	Mode      string `json:"mode"       validate:"required,oneof=buzz trust story"`
	EventName string `json:"event_name" validate:"max=200"`
}

// GenerateResponse is the successful response of POST /api/generate.
type GenerateResponse struct {
	Result  string                   `json:"result"`
	Model   string                   `json:"model"`
	KeyType string                   `json:"key_type"`
	Content generation.ParsedContent `json:"content"`
	DraftID string                   `json:"draft_id,omitempty"`
}

// DraftResponse is a stored draft. Content is only set on single-draft reads.
type DraftResponse struct {
	ID        string                    `json:"id"`
	EventName string                    `json:"event_name"`
	Result    string                    `json:"result"`
	Mode      string                    `json:"mode"`
	ModelUsed string                    `json:"model_used"`
	Status    string                    `json:"status"`
	Content   *generation.ParsedContent `json:"content,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// DraftListResponse is the response of GET /api/drafts.
type DraftListResponse struct {
	Drafts []DraftResponse `json:"drafts"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// SaveKeyRequest is the payload of PUT /api/keys.
type SaveKeyRequest struct {
	APIKey   string `json:"api_key"  validate:"required"`
	Provider string `json:"provider"`
}

// TestKeyRequest is the payload of POST /api/keys/test.
type TestKeyRequest struct {
	APIKey   string `json:"api_key"`
	Provider string `json:"provider"`
}

// TestKeyResponse is the successful response of POST /api/keys/test.
type TestKeyResponse struct {
	Success         bool     `json:"success"`
	ModelUsed       string   `json:"model_used"`
	AvailableModels []string `json:"available_models"`
	Note            string   `json:"note"`
}

// HealthResponse is the response of GET /health.
type HealthResponse struct {
	Status            string `json:"status"`
	Database          string `json:"database"`
	DefaultCredential bool   `json:"default_credential"`
}

func draftToResponse(d *domain.Draft) DraftResponse {
	return DraftResponse{
		ID:        d.ID.String(),
		EventName: d.EventName,
		Result:    d.Content,
		Mode:      string(d.Mode),
		ModelUsed: d.ModelUsed,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
