package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewDraft(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	content := "<comment>楽しみですね</comment><post1>本文</post1>"

	draft, err := NewDraft(userID, "  ウィンターフェス2025 ", content, ModeBuzz, "gemini-2.0-flash")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if draft.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if draft.EventName != "ウィンターフェス2025" {
		t.Errorf("Expected trimmed event name, got %q", draft.EventName)
	}

	if draft.Status != DraftStatusDraft {
		t.Errorf("Expected status %s, got %s", DraftStatusDraft, draft.Status)
	}

	if draft.CreatedAt.IsZero() || draft.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	unnamed, err := NewDraft(userID, "", content, ModeStory, "gemini-1.5-flash")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if unnamed.EventName != DefaultEventName {
		t.Errorf("Expected default event name, got %q", unnamed.EventName)
	}

	if _, err := NewDraft(uuid.Nil, "x", content, ModeBuzz, "m"); err != ErrEmptyDraftUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyDraftUserID, err)
	}

	if _, err := NewDraft(userID, "x", "   ", ModeBuzz, "m"); err != ErrEmptyDraftContent {
		t.Errorf("Expected error %v, got %v", ErrEmptyDraftContent, err)
	}

	if _, err := NewDraft(userID, "x", content, Mode("viral"), "m"); err != ErrInvalidDraftMode {
		t.Errorf("Expected error %v, got %v", ErrInvalidDraftMode, err)
	}
}

func TestDraftValidateStatus(t *testing.T) {
	t.Parallel()
	draft := Draft{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Content: "content",
		Mode:    ModeTrust,
		Status:  DraftStatus("archived"),
	}

	if err := draft.Validate(); err != ErrInvalidDraftState {
		t.Errorf("Expected error %v, got %v", ErrInvalidDraftState, err)
	}

	draft.Status = DraftStatusPublished
	if err := draft.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
