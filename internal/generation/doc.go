// Package generation drafts X (Twitter) posts for an event with a Gemini
// language model and decodes the model's tagged output.
//
// The Orchestrator is the entry point. For every call it discovers the models
// the credential may use (CatalogResolver), invokes the preferred one through
// the Provider interface, and drives an explicit retry/switch/abort state
// machine whose decisions come from a Classifier. Failures that reach the
// caller are *Failure values carrying a user-facing message and the wrapped
// provider error.
//
// Parse turns the raw model text into ParsedContent. It never fails: text
// without any recognized tags is reported as legacy content.
package generation
