package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/redact"
	"github.com/xgenie/xgenie-api/internal/store"
)

// Generator drafts posts. *generation.Orchestrator implements it.
type Generator interface {
	Generate(ctx context.Context, in generation.Input) (*generation.Result, error)
}

// KeyResolver returns the plaintext key a user registered, or
// ErrAPIKeyNotFound. APIKeyService implements it.
type KeyResolver interface {
	ResolveKey(ctx context.Context, userID uuid.UUID) (string, error)
}

// GenerateDraftRequest is the input of GenerateDraft.
type GenerateDraftRequest struct {
	EventName string
	EventInfo string
	Mode      domain.Mode
}

// GenerateDraftResult is the output of GenerateDraft. Draft is nil when the
// result could not be saved; the generation itself still succeeded.
type GenerateDraftResult struct {
	Draft   *domain.Draft
	Result  *generation.Result
	KeyType KeyType
}

// DraftDetail is a stored draft with its content parsed into posts.
type DraftDetail struct {
	Draft   *domain.Draft
	Content generation.ParsedContent
}

// DraftService provides draft generation and history operations.
type DraftService interface {
	// GenerateDraft drafts posts with the user's key (or the system key)
	// and saves the result. Generation failures are *GenerationError.
	GenerateDraft(ctx context.Context, userID uuid.UUID, req GenerateDraftRequest) (*GenerateDraftResult, error)

	// ListDrafts returns the user's drafts, newest first.
	ListDrafts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error)

	// GetDraft returns one of the user's drafts with parsed content.
	GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*DraftDetail, error)

	// DeleteDraft removes one of the user's drafts.
	DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error
}

// draftServiceImpl implements the DraftService interface
type draftServiceImpl struct {
	drafts    store.DraftStore
	generator Generator
	keys      KeyResolver
	logger    *slog.Logger
}

// NewDraftService creates a new DraftService.
// It returns an error if any of the required dependencies are nil.
func NewDraftService(drafts store.DraftStore, generator Generator, keys KeyResolver, log *slog.Logger) (DraftService, error) {
	if drafts == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "draft store cannot be nil"}
	}
	if generator == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if keys == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "key resolver cannot be nil"}
	}
	if log == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &draftServiceImpl{
		drafts:    drafts,
		generator: generator,
		keys:      keys,
		logger:    log.With(slog.String("component", "draft_service")),
	}, nil
}

// GenerateDraft implements DraftService.
func (s *draftServiceImpl) GenerateDraft(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateDraftRequest,
) (*GenerateDraftResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	apiKey, err := s.keys.ResolveKey(ctx, userID)
	switch {
	case errors.Is(err, ErrAPIKeyNotFound):
		log.InfoContext(ctx, "no custom api key found, falling back to system key")
	case err != nil:
		log.WarnContext(ctx, "failed to resolve user api key, falling back to system key",
			slog.String("error", redact.Error(err)))
		apiKey = ""
	default:
		log.InfoContext(ctx, "user api key found",
			slog.String("key_hint", domain.KeyHint(apiKey)))
	}

	keyType := KeyTypeSystem
	if apiKey != "" {
		keyType = KeyTypeCustom
	}

	result, err := s.generator.Generate(ctx, generation.Input{
		EventInfo: req.EventInfo,
		Mode:      req.Mode,
		APIKey:    apiKey,
	})
	if err != nil {
		log.ErrorContext(ctx, "generation failed",
			slog.String("key_type", string(keyType)),
			slog.String("error", redact.Error(err)))
		return nil, &GenerationError{KeyType: keyType, Err: err}
	}

	draft, err := domain.NewDraft(userID, req.EventName, result.RawText, req.Mode, result.ModelUsed)
	if err == nil {
		err = s.drafts.Create(ctx, draft)
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to save draft, returning result anyway",
			slog.String("error", redact.Error(err)))
		draft = nil
	}

	return &GenerateDraftResult{
		Draft:   draft,
		Result:  result,
		KeyType: keyType,
	}, nil
}

// ListDrafts implements DraftService.
func (s *draftServiceImpl) ListDrafts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Draft, error) {
	drafts, err := s.drafts.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, NewServiceError("list_drafts", "failed to list drafts", err)
	}
	return drafts, nil
}

// GetDraft implements DraftService.
func (s *draftServiceImpl) GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*DraftDetail, error) {
	draft, err := s.drafts.GetByID(ctx, userID, draftID)
	if err != nil {
		return nil, NewServiceError("get_draft", "failed to get draft", err)
	}
	return &DraftDetail{
		Draft:   draft,
		Content: generation.Parse(draft.Content),
	}, nil
}

// DeleteDraft implements DraftService.
func (s *draftServiceImpl) DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error {
	if err := s.drafts.Delete(ctx, userID, draftID); err != nil {
		return NewServiceError("delete_draft", "failed to delete draft", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "draft deleted",
		slog.String("draft_id", draftID.String()))
	return nil
}
