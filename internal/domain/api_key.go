package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProviderGemini is the only credential provider currently supported.
const ProviderGemini = "gemini"

// Validation errors for UserAPIKey
var (
	ErrEmptyAPIKeyUserID   = errors.New("api key user ID cannot be empty")
	ErrEmptyAPIKeyProvider = errors.New("api key provider cannot be empty")
	ErrEmptySealedAPIKey   = errors.New("sealed api key cannot be empty")
)

// UserAPIKey is a provider credential registered by a user. The key itself
// is only ever stored sealed; Hint keeps the first characters for display.
type UserAPIKey struct {
	UserID    uuid.UUID `json:"user_id"`
	Provider  string    `json:"provider"`
	Sealed    []byte    `json:"-"`
	Hint      string    `json:"hint"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the UserAPIKey has valid data.
func (k *UserAPIKey) Validate() error {
	if k.UserID == uuid.Nil {
		return ErrEmptyAPIKeyUserID
	}
	if k.Provider == "" {
		return ErrEmptyAPIKeyProvider
	}
	if len(k.Sealed) == 0 {
		return ErrEmptySealedAPIKey
	}
	return nil
}

// KeyHint returns the first four characters of a key followed by an ellipsis.
func KeyHint(key string) string {
	runes := []rune(key)
	if len(runes) <= 4 {
		return "..."
	}
	return string(runes[:4]) + "..."
}
