package generation

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"
)

// FailureKind tells the orchestrator whether an error is worth retrying.
type FailureKind int

// Failure kinds
const (
	Permanent FailureKind = iota
	Transient
)

// String returns the kind name used in logs.
func (k FailureKind) String() string {
	if k == Transient {
		return "transient"
	}
	return "permanent"
}

// Signal is the specific condition behind a failure.
type Signal string

// Signals produced by the classifier
const (
	SignalOverloaded    Signal = "overloaded"
	SignalRateLimited   Signal = "rate_limited"
	SignalNetwork       Signal = "network"
	SignalEmptyResponse Signal = "empty_response"
	SignalCanceled      Signal = "canceled"
	SignalUnknown       Signal = "unknown"
)

// Classification is the result of classifying an error.
type Classification struct {
	Kind   FailureKind
	Signal Signal
}

// Switchable reports whether the failure allows moving to another model.
// Only overload and rate-limit signals qualify.
func (c Classification) Switchable() bool {
	return c.Kind == Transient && (c.Signal == SignalOverloaded || c.Signal == SignalRateLimited)
}

// Classifier maps provider errors to a Classification.
type Classifier interface {
	Classify(err error) Classification
}

// SignalRules configures RuleClassifier. Marker matching is case-insensitive.
type SignalRules struct {
	OverloadStatusCodes  []int
	RateLimitStatusCodes []int
	OverloadMarkers      []string
	RateLimitMarkers     []string
	NetworkMarkers       []string
}

// DefaultSignalRules returns the rules used for the Gemini API.
func DefaultSignalRules() SignalRules {
	return SignalRules{
		OverloadStatusCodes:  []int{http.StatusServiceUnavailable},
		RateLimitStatusCodes: []int{http.StatusTooManyRequests},
		OverloadMarkers:      []string{"503", "overloaded", "unavailable"},
		RateLimitMarkers:     []string{"429", "too many requests", "rate limit"},
		NetworkMarkers: []string{
			"fetch failed",
			"connection refused",
			"connection reset",
			"no such host",
			"tls handshake timeout",
			"i/o timeout",
			"unexpected eof",
		},
	}
}

// RuleClassifier classifies errors by status code when the provider reported
// one, and by message markers otherwise. Anything it does not recognize is
// Permanent.
type RuleClassifier struct {
	rules SignalRules
}

// NewRuleClassifier creates a RuleClassifier. Nil rule slices are left empty;
// use DefaultSignalRules as a starting point.
func NewRuleClassifier(rules SignalRules) *RuleClassifier {
	return &RuleClassifier{rules: SignalRules{
		OverloadStatusCodes:  slices.Clone(rules.OverloadStatusCodes),
		RateLimitStatusCodes: slices.Clone(rules.RateLimitStatusCodes),
		OverloadMarkers:      lowerAll(rules.OverloadMarkers),
		RateLimitMarkers:     lowerAll(rules.RateLimitMarkers),
		NetworkMarkers:       lowerAll(rules.NetworkMarkers),
	}}
}

var _ Classifier = (*RuleClassifier)(nil)

// Classify implements Classifier.
func (c *RuleClassifier) Classify(err error) Classification {
	if err == nil {
		return Classification{Kind: Permanent, Signal: SignalUnknown}
	}

	if errors.Is(err, context.Canceled) {
		return Classification{Kind: Permanent, Signal: SignalCanceled}
	}

	// Transport timeouts wrap DeadlineExceeded; a done caller context is
	// detected by the orchestrator.
	if errors.Is(err, context.DeadlineExceeded) {
		return Classification{Kind: Transient, Signal: SignalNetwork}
	}

	if errors.Is(err, ErrEmptyResponse) {
		return Classification{Kind: Permanent, Signal: SignalEmptyResponse}
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.StatusCode != 0 {
		switch {
		case slices.Contains(c.rules.OverloadStatusCodes, providerErr.StatusCode):
			return Classification{Kind: Transient, Signal: SignalOverloaded}
		case slices.Contains(c.rules.RateLimitStatusCodes, providerErr.StatusCode):
			return Classification{Kind: Transient, Signal: SignalRateLimited}
		default:
			return Classification{Kind: Permanent, Signal: SignalUnknown}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, c.rules.OverloadMarkers):
		return Classification{Kind: Transient, Signal: SignalOverloaded}
	case containsAny(msg, c.rules.RateLimitMarkers):
		return Classification{Kind: Transient, Signal: SignalRateLimited}
	case containsAny(msg, c.rules.NetworkMarkers):
		return Classification{Kind: Transient, Signal: SignalNetwork}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Classification{Kind: Transient, Signal: SignalNetwork}
	}

	return Classification{Kind: Permanent, Signal: SignalUnknown}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
