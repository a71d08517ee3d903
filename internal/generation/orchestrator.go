package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/redact"
)

// DefaultMaxRetries bounds the number of invocations after the first one.
// Model switches and plain retries share this budget.
const DefaultMaxRetries = 3

// Input is a single drafting request.
type Input struct {
	// EventInfo is the free-text description of the event. Required.
	EventInfo string

	// Mode selects the writing style. Required.
	Mode domain.Mode

	// APIKey is the caller's credential. Empty means the configured default.
	APIKey string
}

// Result is a successful generation.
type Result struct {
	RawText              string
	ModelUsed            string
	UsedCustomCredential bool
	Content              ParsedContent
}

// Settings are the immutable values an Orchestrator is built from.
type Settings struct {
	// DefaultAPIKey is used when Input.APIKey is empty. May be empty, in
	// which case such calls fail with ErrConfiguration.
	DefaultAPIKey string

	// PriorityModels ranks the discovered catalog and lists the switch candidates.
	PriorityModels []string

	// BaselineModel is used when discovery yields nothing.
	BaselineModel string

	// MaxRetries bounds attempts to MaxRetries+1. Negative values use DefaultMaxRetries.
	MaxRetries int

	// Backoff is the wait policy between attempts. Zero value uses DefaultBackoff.
	Backoff Backoff

	// PromptTemplatePath overrides the built-in prompt template when set.
	PromptTemplatePath string
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClassifier replaces the default rule-based classifier.
func WithClassifier(c Classifier) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithSleep replaces the wait function used between attempts.
func WithSleep(sleep SleepFunc) Option {
	return func(o *Orchestrator) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// Orchestrator drafts posts with retry, backoff and model fallback.
// It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	provider      Provider
	resolver      *CatalogResolver
	classifier    Classifier
	prompts       *PromptBuilder
	backoff       Backoff
	sleep         SleepFunc
	defaultAPIKey string
	maxRetries    int
	logger        *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(provider Provider, log *slog.Logger, settings Settings, opts ...Option) (*Orchestrator, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	prompts, err := NewPromptBuilder(settings.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	maxRetries := settings.MaxRetries
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	backoff := settings.Backoff
	if backoff.isZero() {
		backoff = DefaultBackoff()
	}

	o := &Orchestrator{
		provider:      provider,
		resolver:      NewCatalogResolver(provider, settings.PriorityModels, settings.BaselineModel, log),
		classifier:    NewRuleClassifier(DefaultSignalRules()),
		prompts:       prompts,
		backoff:       backoff,
		sleep:         Sleep,
		defaultAPIKey: strings.TrimSpace(settings.DefaultAPIKey),
		maxRetries:    maxRetries,
		logger:        log,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// HasDefaultCredential reports whether a process-wide credential is configured.
func (o *Orchestrator) HasDefaultCredential() bool {
	return o.defaultAPIKey != ""
}

// decision is the transition chosen after a failed attempt.
type decision int

const (
	decideAbort decision = iota
	decideRetry
	decideSwitch
)

func (d decision) String() string {
	switch d {
	case decideRetry:
		return "retry"
	case decideSwitch:
		return "switch"
	default:
		return "abort"
	}
}

// run is the mutable state of one Generate call.
type run struct {
	apiKey   string
	custom   bool
	catalog  Catalog
	model    string
	used     []string
	attempts int
}

// Generate drafts posts for in. On failure the error is a *Failure, except
// for ErrInvalidInput which is returned wrapped in a plain error.
func (o *Orchestrator) Generate(ctx context.Context, in Input) (*Result, error) {
	eventInfo := strings.TrimSpace(in.EventInfo)
	if eventInfo == "" {
		return nil, fmt.Errorf("%w: event info cannot be empty", ErrInvalidInput)
	}
	if !in.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInput, in.Mode)
	}

	r := &run{apiKey: strings.TrimSpace(in.APIKey)}
	r.custom = r.apiKey != ""
	if !r.custom {
		r.apiKey = o.defaultAPIKey
	}
	if r.apiKey == "" {
		return nil, &Failure{Kind: ErrConfiguration, Message: MessageNotConfigured}
	}

	prompt, err := o.prompts.Prompt(eventInfo)
	if err != nil {
		return nil, &Failure{Kind: ErrPermanentProvider, Message: genericMessage(err), Err: err}
	}
	req := Request{SystemInstruction: o.prompts.SystemInstruction(in.Mode), Prompt: prompt}

	log := logger.FromContextOrDefault(ctx, o.logger).With(
		slog.String("mode", string(in.Mode)),
		slog.Bool("custom_key", r.custom))
	ctx = logger.WithLogger(ctx, log)

	// SelectModel
	r.catalog = o.resolver.Resolve(ctx, r.apiKey)
	r.model = r.catalog.Selected
	r.used = append(r.used, r.model)

	log.InfoContext(ctx, "starting generation",
		slog.String("model", r.model),
		slog.Bool("discovered", r.catalog.Discovered))

	for n := 0; ; n++ {
		if n > 0 {
			wait := o.backoff.Delay(n)
			log.InfoContext(ctx, "waiting before next attempt",
				slog.Int("attempt", n+1),
				slog.Duration("delay", wait))
			if err := o.sleep(ctx, wait); err != nil {
				return nil, o.abort(r, Classification{Kind: Permanent, Signal: SignalCanceled}, err)
			}
		}

		// Invoke
		req.Model = r.model
		r.attempts++
		text, err := o.invoke(ctx, r.apiKey, req)
		if err == nil {
			log.InfoContext(ctx, "generation succeeded",
				slog.String("model", r.model),
				slog.Int("attempt", n+1))
			return &Result{
				RawText:              text,
				ModelUsed:            r.model,
				UsedCustomCredential: r.custom,
				Content:              Parse(text),
			}, nil
		}

		class := o.classifier.Classify(err)
		if ctx.Err() != nil {
			class = Classification{Kind: Permanent, Signal: SignalCanceled}
		}

		next, candidate := o.decide(r, n, class)
		log.WarnContext(ctx, "generation attempt failed",
			slog.String("model", r.model),
			slog.Int("attempt", n+1),
			slog.String("kind", class.Kind.String()),
			slog.String("signal", string(class.Signal)),
			slog.String("decision", next.String()),
			slog.String("error", redact.Credentials(err.Error())))

		switch next {
		case decideSwitch:
			log.InfoContext(ctx, "switching model",
				slog.String("from", r.model),
				slog.String("to", candidate))
			r.model = candidate
			r.used = append(r.used, candidate)
		case decideRetry:
		default:
			return nil, o.abort(r, class, err)
		}
	}
}

// decide chooses the transition after failed attempt n.
func (o *Orchestrator) decide(r *run, n int, class Classification) (decision, string) {
	if class.Kind == Permanent || n >= o.maxRetries {
		return decideAbort, ""
	}
	if class.Switchable() {
		if candidate := o.switchCandidate(r); candidate != "" {
			return decideSwitch, candidate
		}
	}
	return decideRetry, ""
}

// switchCandidate returns the first priority model that is in the catalog
// and has not been used in this call, or "".
func (o *Orchestrator) switchCandidate(r *run) string {
	for _, model := range o.resolver.priority {
		if r.catalog.Contains(model) && !slices.Contains(r.used, model) {
			return model
		}
	}
	return ""
}

func (o *Orchestrator) invoke(ctx context.Context, apiKey string, req Request) (string, error) {
	text, err := o.provider.GenerateText(ctx, apiKey, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: model %s", ErrEmptyResponse, req.Model)
	}
	return text, nil
}

func (o *Orchestrator) abort(r *run, class Classification, err error) error {
	kind := ErrPermanentProvider
	switch {
	case class.Signal == SignalCanceled:
		kind = ErrCanceled
	case class.Kind == Transient:
		kind = ErrTransientProvider
	}

	return &Failure{
		Kind:     kind,
		Signal:   class.Signal,
		Message:  failureMessage(class.Signal, err),
		Model:    r.model,
		Attempts: r.attempts,
		Err:      err,
	}
}
