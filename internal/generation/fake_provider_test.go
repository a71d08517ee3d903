package generation_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/xgenie/xgenie-api/internal/generation"
)

// reply is one scripted GenerateText outcome.
type reply struct {
	text string
	err  error
}

// fakeProvider replays scripted replies and records every call.
type fakeProvider struct {
	models  []generation.ModelInfo
	listErr error
	replies []reply

	listCalls int
	calls     []generation.Request
	keys      []string
}

func (f *fakeProvider) ListModels(_ context.Context, apiKey string) ([]generation.ModelInfo, error) {
	f.listCalls++
	f.keys = append(f.keys, apiKey)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.models, nil
}

func (f *fakeProvider) GenerateText(_ context.Context, apiKey string, req generation.Request) (string, error) {
	f.calls = append(f.calls, req)
	f.keys = append(f.keys, apiKey)
	if len(f.replies) == 0 {
		return "", nil
	}
	idx := len(f.calls) - 1
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	return f.replies[idx].text, f.replies[idx].err
}

func (f *fakeProvider) invokedModels() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Model)
	}
	return out
}

// generationModels builds listing entries that all support generateContent.
func generationModels(names ...string) []generation.ModelInfo {
	out := make([]generation.ModelInfo, 0, len(names))
	for _, n := range names {
		out = append(out, generation.ModelInfo{
			Name:             "models/" + n,
			SupportedActions: []string{generation.ActionGenerateContent},
		})
	}
	return out
}

// sleepRecorder is a SleepFunc that records requested delays without waiting.
type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func overloaded() error {
	return &generation.ProviderError{StatusCode: 503, Status: "UNAVAILABLE", Message: "The model is overloaded. Please try again later."}
}

func rateLimited() error {
	return &generation.ProviderError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted"}
}
