// Package secretbox seals short secrets, such as user-supplied provider API
// keys, before they are written to the database. It uses XChaCha20-Poly1305
// with a random nonce prepended to each ciphertext.
package secretbox

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Errors returned by the sealer
var (
	// ErrInvalidKey is returned when the key is not 32 bytes of hex.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrMalformed is returned when sealed data is too short to contain a nonce.
	ErrMalformed = errors.New("malformed sealed data")

	// ErrDecrypt is returned when authentication fails, e.g. after key rotation.
	ErrDecrypt = errors.New("failed to decrypt sealed data")
)

// Sealer encrypts and authenticates secrets with a single key.
type Sealer struct {
	aead cipher.AEAD
}

// New creates a Sealer from a 32-byte key.
func New(key []byte) (*Sealer, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Sealer{aead: aead}, nil
}

// NewFromHex creates a Sealer from a hex-encoded 32-byte key.
func NewFromHex(hexKey string) (*Sealer, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return New(key)
}

// Seal encrypts plaintext. additionalData binds the ciphertext to its owner
// (for example a user ID) and must be passed to Open unchanged.
func (s *Sealer) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed, additionalData []byte) ([]byte, error) {
	if len(sealed) < s.aead.NonceSize()+s.aead.Overhead() {
		return nil, ErrMalformed
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
