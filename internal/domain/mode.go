package domain

import (
	"errors"
	"strings"
)

// Mode selects the writing style used when drafting a post.
type Mode string

// Supported drafting modes
const (
	ModeBuzz  Mode = "buzz"
	ModeTrust Mode = "trust"
	ModeStory Mode = "story"
)

// ErrInvalidMode is returned when a mode is not one of the supported values.
var ErrInvalidMode = errors.New("invalid mode")

// ParseMode converts a raw string into a Mode.
// Surrounding whitespace and letter case are ignored.
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", ErrInvalidMode
	}
	return mode, nil
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeBuzz, ModeTrust, ModeStory:
		return true
	default:
		return false
	}
}

// Label returns the display label shown next to saved drafts.
func (m Mode) Label() string {
	switch m {
	case ModeBuzz:
		return "🔥 バズ"
	case ModeTrust:
		return "🤝 信頼"
	case ModeStory:
		return "📖 ストーリー"
	default:
		return string(m)
	}
}
