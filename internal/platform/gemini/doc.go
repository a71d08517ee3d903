// Package gemini adapts Google's Gemini API (google.golang.org/genai) to the
// generation.Provider interface.
//
// It lists the models available to a credential, performs single generation
// round trips with a system instruction, and converts SDK errors into
// *generation.ProviderError values that keep the HTTP status for
// classification. It performs no retries of its own; retry, backoff and model
// fallback belong to the generation orchestrator.
package gemini
