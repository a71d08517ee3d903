package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/redact"
)

// Key verification errors
var (
	// ErrKeyRejected is returned when the provider refused the key while listing models.
	ErrKeyRejected = errors.New("api key rejected by provider")

	// ErrNoModelsAvailable is returned when a key is accepted but exposes no models.
	ErrNoModelsAvailable = errors.New("no models available for api key")

	// ErrKeyProbeFailed is returned when the probe generation call fails.
	ErrKeyProbeFailed = errors.New("api key probe generation failed")
)

// keyProbePrompt is the minimal prompt used to prove a key can generate.
const keyProbePrompt = "Hi"

// KeyCheck is the outcome of a successful key verification.
type KeyCheck struct {
	// Model is the model the probe generation succeeded with.
	Model string

	// AvailableModels holds up to three listed models, for display.
	AvailableModels []string
}

// KeyVerifier checks that a user-supplied key can list models and generate.
type KeyVerifier struct {
	provider Provider
	logger   *slog.Logger
}

// NewKeyVerifier creates a KeyVerifier.
func NewKeyVerifier(provider Provider, log *slog.Logger) *KeyVerifier {
	if log == nil {
		log = slog.Default()
	}
	return &KeyVerifier{provider: provider, logger: log}
}

// Verify lists the models available to apiKey and runs a one-word probe
// against the first "flash" model (or the first model). Unlike catalog
// resolution, listing failures are reported to the caller.
func (v *KeyVerifier) Verify(ctx context.Context, apiKey string) (*KeyCheck, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key cannot be empty", ErrInvalidInput)
	}

	listed, err := v.provider.ListModels(ctx, apiKey)
	if err != nil {
		log.InfoContext(ctx, "api key rejected while listing models",
			slog.String("error", redact.Credentials(err.Error())))
		return nil, fmt.Errorf("%w: %w", ErrKeyRejected, err)
	}

	models := make([]string, 0, len(listed))
	for _, m := range listed {
		if id := TrimModelName(m.Name); id != "" {
			models = append(models, id)
		}
	}
	if len(models) == 0 {
		return nil, ErrNoModelsAvailable
	}

	probe := models[0]
	for _, m := range models {
		if strings.Contains(m, "flash") {
			probe = m
			break
		}
	}

	text, err := v.provider.GenerateText(ctx, apiKey, Request{Model: probe, Prompt: keyProbePrompt})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyProbeFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w", ErrKeyProbeFailed, ErrEmptyResponse)
	}

	log.InfoContext(ctx, "api key verified",
		slog.String("model", probe),
		slog.Int("available_models", len(models)))

	return &KeyCheck{
		Model:           probe,
		AvailableModels: models[:min(3, len(models))],
	}, nil
}
