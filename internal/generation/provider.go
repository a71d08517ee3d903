package generation

import "context"

// ActionGenerateContent is the supported action a model must declare to be
// usable for drafting.
const ActionGenerateContent = "generateContent"

// ModelInfo describes a model returned by the provider's listing endpoint.
type ModelInfo struct {
	// Name is the model identifier, with or without the "models/" prefix.
	Name string

	// SupportedActions lists the generation methods the model accepts.
	SupportedActions []string
}

// Request is a single generation call.
type Request struct {
	Model             string
	SystemInstruction string
	Prompt            string
}

// ModelLister lists the models available to a credential.
type ModelLister interface {
	ListModels(ctx context.Context, apiKey string) ([]ModelInfo, error)
}

// Provider is the boundary between the orchestrator and the language model
// service. Implementations must honor ctx cancellation and should report
// provider failures as *ProviderError so the status signal is preserved.
type Provider interface {
	ModelLister

	// GenerateText performs one round trip and returns the concatenated text
	// of the first candidate. It may return an empty string without error.
	GenerateText(ctx context.Context, apiKey string, req Request) (string, error)
}
