// Package main is the entry point of the X-Genie API server, which drafts
// event announcement posts with Gemini and keeps each user's draft history.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/xgenie/xgenie-api/internal/config"
	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "",
		"run a migration command ("+strings.Join(postgres.MigrationCommands, "|")+") and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(migrateCommand string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("baseline_model", cfg.LLM.BaselineModel),
		slog.Bool("default_credential", cfg.LLM.GeminiAPIKey != ""))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCommand != "" {
		defer closeDB(db, log)
		if !slices.Contains(postgres.MigrationCommands, migrateCommand) {
			return fmt.Errorf("unknown migration command %q", migrateCommand)
		}
		return postgres.Migrate(ctx, db, migrateCommand, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
