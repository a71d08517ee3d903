package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "XGENIE"

// geminiKeyAlias is the conventional variable name for the Gemini credential.
const geminiKeyAlias = "GOOGLE_GENERATIVE_AI_API_KEY"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// Variables already set in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about; keys without
	// defaults need explicit bindings.
	bindings := map[string][]string{
		"database.url":               {EnvPrefix + "_DATABASE_URL"},
		"auth.jwt_secret":            {EnvPrefix + "_AUTH_JWT_SECRET"},
		"auth.jwt_audience":          {EnvPrefix + "_AUTH_JWT_AUDIENCE"},
		"auth.key_encryption_secret": {EnvPrefix + "_AUTH_KEY_ENCRYPTION_SECRET"},
		"llm.gemini_api_key":         {EnvPrefix + "_LLM_GEMINI_API_KEY", geminiKeyAlias},
		"llm.prompt_template_path":   {EnvPrefix + "_LLM_PROMPT_TEMPLATE_PATH"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("llm.baseline_model", "gemini-1.5-flash")
	v.SetDefault("llm.priority_models", []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-flash-latest"})
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.backoff_base_ms", 1000)
	v.SetDefault("llm.backoff_max_ms", 10000)
	v.SetDefault("llm.backoff_jitter_ms", 1000)
	v.SetDefault("llm.overload_markers", []string{})
	v.SetDefault("llm.rate_limit_markers", []string{})
	v.SetDefault("llm.network_markers", []string{})
}

// normalize trims values that commonly arrive with stray whitespace and
// splits comma-separated lists coming from the environment.
func normalize(cfg *Config) {
	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))
	cfg.LLM.GeminiAPIKey = strings.TrimSpace(cfg.LLM.GeminiAPIKey)
	cfg.LLM.BaselineModel = strings.TrimSpace(cfg.LLM.BaselineModel)
	cfg.LLM.PriorityModels = splitList(cfg.LLM.PriorityModels)
	cfg.LLM.OverloadMarkers = splitList(cfg.LLM.OverloadMarkers)
	cfg.LLM.RateLimitMarkers = splitList(cfg.LLM.RateLimitMarkers)
	cfg.LLM.NetworkMarkers = splitList(cfg.LLM.NetworkMarkers)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
