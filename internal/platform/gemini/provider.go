package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
)

// listPageSize is the page size requested from the model listing endpoint.
const listPageSize = 100

// Provider implements generation.Provider on top of the Gemini API.
//
// A client is built per call because every call may carry a different
// credential; client construction does not touch the network.
type Provider struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
}

var _ generation.Provider = (*Provider)(nil)

// Option customizes a Provider.
type Option func(*Provider)

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = c
	}
}

// WithBaseURL points the SDK at a different endpoint, e.g. a proxy.
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		p.baseURL = url
	}
}

// NewProvider creates a Provider.
func NewProvider(log *slog.Logger, opts ...Option) (*Provider, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Provider{logger: log.With(slog.String("component", "gemini_provider"))}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Provider) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, clientError(err)
	}
	return client, nil
}

// ListModels implements generation.ModelLister. It follows pagination until
// the listing is exhausted.
func (p *Provider) ListModels(ctx context.Context, apiKey string) ([]generation.ModelInfo, error) {
	client, err := p.client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	var models []generation.ModelInfo
	page, err := client.Models.List(ctx, &genai.ListModelsConfig{PageSize: listPageSize})
	for {
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, normalizeError(err)
		}

		for _, m := range page.Items {
			if info, ok := toModelInfo(m); ok {
				models = append(models, info)
			}
		}

		page, err = page.Next(ctx)
	}

	logger.FromContextOrDefault(ctx, p.logger).DebugContext(ctx, "listed models",
		slog.Int("count", len(models)))

	return models, nil
}

// GenerateText implements generation.Provider.
func (p *Provider) GenerateText(ctx context.Context, apiKey string, req generation.Request) (string, error) {
	client, err := p.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), generateConfig(req))
	if err != nil {
		return "", normalizeError(err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", req.Model, err)
	}

	logger.FromContextOrDefault(ctx, p.logger).DebugContext(ctx, "model call completed",
		slog.String("model", req.Model),
		slog.Int("response_length", len(text)))

	return text, nil
}

func generateConfig(req generation.Request) *genai.GenerateContentConfig {
	if strings.TrimSpace(req.SystemInstruction) == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		},
	}
}

// extractText concatenates the text parts of the first candidate. A missing
// candidate or content yields "" without error; the orchestrator decides what
// an empty answer means.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", nil
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

func toModelInfo(m *genai.Model) (generation.ModelInfo, bool) {
	if m == nil || m.Name == "" {
		return generation.ModelInfo{}, false
	}
	return generation.ModelInfo{
		Name:             m.Name,
		SupportedActions: m.SupportedActions,
	}, true
}
