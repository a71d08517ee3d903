package config

import (
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret verifies HS256 tokens issued by the identity provider.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// JWTAudience is checked against the token "aud" claim when set.
	JWTAudience string `mapstructure:"jwt_audience"`

	// KeyEncryptionSecret is the hex-encoded 32-byte key sealing stored user API keys.
	KeyEncryptionSecret string `mapstructure:"key_encryption_secret" validate:"required,len=64,hexadecimal"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is the process-wide credential. Optional: users may
	// register their own key instead.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	BaselineModel  string   `mapstructure:"baseline_model" validate:"required"`
	PriorityModels []string `mapstructure:"priority_models" validate:"required,min=1,dive,required"`

	MaxRetries      int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BackoffBaseMS   int `mapstructure:"backoff_base_ms" validate:"gt=0"`
	BackoffMaxMS    int `mapstructure:"backoff_max_ms" validate:"gtefield=BackoffBaseMS"`
	BackoffJitterMS int `mapstructure:"backoff_jitter_ms" validate:"gte=0"`

	// PromptTemplatePath overrides the built-in prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`

	// Extra classifier markers, appended to the built-in ones.
	OverloadMarkers  []string `mapstructure:"overload_markers"`
	RateLimitMarkers []string `mapstructure:"rate_limit_markers"`
	NetworkMarkers   []string `mapstructure:"network_markers"`
}

// BackoffBase returns the backoff base as a duration.
func (c LLMConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMS) * time.Millisecond
}

// BackoffMax returns the backoff cap as a duration.
func (c LLMConfig) BackoffMax() time.Duration {
	return time.Duration(c.BackoffMaxMS) * time.Millisecond
}

// BackoffJitter returns the maximum jitter as a duration.
func (c LLMConfig) BackoffJitter() time.Duration {
	return time.Duration(c.BackoffJitterMS) * time.Millisecond
}
