package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DraftStatus represents the lifecycle state of a saved draft
type DraftStatus string

// Possible draft status values
const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusPublished DraftStatus = "published"
)

// DefaultEventName is stored when the caller does not name the event.
const DefaultEventName = "名称なしイベント"

// Common validation errors for Draft
var (
	ErrEmptyDraftID      = errors.New("draft ID cannot be empty")
	ErrEmptyDraftUserID  = errors.New("draft user ID cannot be empty")
	ErrEmptyDraftContent = errors.New("draft content cannot be empty")
	ErrInvalidDraftMode  = errors.New("invalid draft mode")
	ErrInvalidDraftState = errors.New("invalid draft status")
)

// Draft is a generated post draft saved for a user. Content holds the raw
// model output; it is parsed into posts when displayed.
type Draft struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	EventName string      `json:"event_name"`
	Content   string      `json:"content"`
	Mode      Mode        `json:"mode"`
	ModelUsed string      `json:"model_used"`
	Status    DraftStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewDraft creates a new Draft in the draft state.
// An empty event name is replaced by DefaultEventName.
// Returns an error if validation fails.
func NewDraft(userID uuid.UUID, eventName, content string, mode Mode, modelUsed string) (*Draft, error) {
	eventName = strings.TrimSpace(eventName)
	if eventName == "" {
		eventName = DefaultEventName
	}

	now := time.Now().UTC()
	draft := &Draft{
		ID:        uuid.New(),
		UserID:    userID,
		EventName: eventName,
		Content:   content,
		Mode:      mode,
		ModelUsed: modelUsed,
		Status:    DraftStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// Validate checks if the Draft has valid data.
func (d *Draft) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDraftID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDraftUserID
	}

	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyDraftContent
	}

	if !d.Mode.Valid() {
		return ErrInvalidDraftMode
	}

	switch d.Status {
	case DraftStatusDraft, DraftStatusPublished:
	default:
		return ErrInvalidDraftState
	}

	return nil
}
