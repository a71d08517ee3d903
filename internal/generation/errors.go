package generation

import (
	"errors"
	"fmt"
)

// Error kinds returned by the generation package. A *Failure always matches
// exactly one of them with errors.Is.
var (
	// ErrConfiguration is returned when no credential was supplied and no
	// default credential is configured.
	ErrConfiguration = errors.New("generation credential not configured")

	// ErrTransientProvider is returned when the provider kept failing with
	// retryable errors (overload, rate limit, network) until the attempt budget ran out.
	ErrTransientProvider = errors.New("transient provider failure")

	// ErrPermanentProvider is returned for provider failures that retrying cannot fix.
	ErrPermanentProvider = errors.New("permanent provider failure")

	// ErrEmptyResponse is wrapped when the provider answered without any text.
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrInvalidInput is returned when the event text is empty or the mode is unknown.
	ErrInvalidInput = errors.New("invalid generation input")

	// ErrCanceled is returned when the caller's context ended the operation.
	ErrCanceled = errors.New("generation canceled")
)

// ProviderError is the normalized shape of an error reported by the model
// provider. StatusCode is zero when the provider did not surface one.
type ProviderError struct {
	StatusCode int
	Status     string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Status != "":
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("provider error: %s", e.Message)
	}
}

// Unwrap returns the underlying transport or SDK error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Failure is the error surfaced by Orchestrator.Generate. Message is safe to
// show to end users; Err keeps the underlying provider error for diagnostics.
type Failure struct {
	// Kind is one of ErrConfiguration, ErrTransientProvider, ErrPermanentProvider,
	// ErrInvalidInput or ErrCanceled.
	Kind error

	// Signal is the classifier signal of the last failed attempt.
	Signal Signal

	// Message is the user-facing message.
	Message string

	// Model is the model that was active when the call gave up.
	Model string

	// Attempts is the number of provider invocations performed.
	Attempts int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap exposes both the kind sentinel and the underlying error to errors.Is/As.
func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if f.Kind != nil {
		errs = append(errs, f.Kind)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// Detail returns the underlying error text, or an empty string.
func (f *Failure) Detail() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}
