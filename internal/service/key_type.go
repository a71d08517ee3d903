package service

import "fmt"

// KeyType tells which credential served a generation.
type KeyType string

// Key types
const (
	KeyTypeCustom KeyType = "custom"
	KeyTypeSystem KeyType = "system"
)

// Label is the short display name returned with successful generations.
func (k KeyType) Label() string {
	if k == KeyTypeCustom {
		return "個人用"
	}
	return "システム共有"
}

// ErrorLabel is the name appended to generation error messages.
func (k KeyType) ErrorLabel() string {
	if k == KeyTypeCustom {
		return "個人用APIキー"
	}
	return "システム共有キー"
}

// GenerationError is returned by GenerateDraft when the model call failed.
// Its message names the credential in use so the user can tell whether
// their own key is the problem.
type GenerationError struct {
	KeyType KeyType
	Err     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s\n\n(使用中のキー: %s)", e.Err.Error(), e.KeyType.ErrorLabel())
}

// Unwrap exposes the generation error for errors.Is/errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
