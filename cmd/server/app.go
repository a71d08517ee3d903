package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/xgenie/xgenie-api/internal/api"
	"github.com/xgenie/xgenie-api/internal/config"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/platform/gemini"
	"github.com/xgenie/xgenie-api/internal/platform/postgres"
	"github.com/xgenie/xgenie-api/internal/platform/secretbox"
	"github.com/xgenie/xgenie-api/internal/service"
	"github.com/xgenie/xgenie-api/internal/service/auth"
	"github.com/xgenie/xgenie-api/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	draftStore  store.DraftStore
	apiKeyStore store.APIKeyStore

	tokenValidator auth.TokenValidator
	orchestrator   *generation.Orchestrator
	draftService   service.DraftService
	apiKeyService  service.APIKeyService
}

// newApplication wires stores, the generation pipeline and services.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{config: cfg, logger: log, db: db}

	var err error
	app.tokenValidator, err = auth.NewTokenValidator(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token validator: %w", err)
	}

	sealer, err := secretbox.NewFromHex(cfg.Auth.KeyEncryptionSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key sealer: %w", err)
	}

	app.draftStore = postgres.NewPostgresDraftStore(db, log)
	app.apiKeyStore = postgres.NewPostgresAPIKeyStore(db, log)

	provider, err := gemini.NewProvider(log.With(slog.String("component", "gemini")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
	}

	app.orchestrator, err = generation.NewOrchestrator(
		provider,
		log.With(slog.String("component", "generation")),
		generationSettings(cfg.LLM),
		generation.WithClassifier(generation.NewRuleClassifier(signalRules(cfg.LLM))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orchestrator: %w", err)
	}
	if !app.orchestrator.HasDefaultCredential() {
		log.Warn("no system gemini api key configured; only users with their own key can generate")
	}

	verifier := generation.NewKeyVerifier(provider, log.With(slog.String("component", "key_verifier")))

	app.apiKeyService, err = service.NewAPIKeyService(app.apiKeyStore, sealer, verifier, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key service: %w", err)
	}

	app.draftService, err = service.NewDraftService(app.draftStore, app.orchestrator, app.apiKeyService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %w", err)
	}

	return app, nil
}

func generationSettings(cfg config.LLMConfig) generation.Settings {
	return generation.Settings{
		DefaultAPIKey:  cfg.GeminiAPIKey,
		PriorityModels: cfg.PriorityModels,
		BaselineModel:  cfg.BaselineModel,
		MaxRetries:     cfg.MaxRetries,
		Backoff: generation.Backoff{
			Base:   cfg.BackoffBase(),
			Max:    cfg.BackoffMax(),
			Jitter: cfg.BackoffJitter(),
		},
		PromptTemplatePath: cfg.PromptTemplatePath,
	}
}

// signalRules appends configured markers to the default marker lists.
func signalRules(cfg config.LLMConfig) generation.SignalRules {
	rules := generation.DefaultSignalRules()
	rules.OverloadMarkers = append(rules.OverloadMarkers, cfg.OverloadMarkers...)
	rules.RateLimitMarkers = append(rules.RateLimitMarkers, cfg.RateLimitMarkers...)
	rules.NetworkMarkers = append(rules.NetworkMarkers, cfg.NetworkMarkers...)
	return rules
}

// healthPinger returns the database as an api.Pinger, or nil without one.
func (app *application) healthPinger() api.Pinger {
	if app.db == nil {
		return nil
	}
	return app.db
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
