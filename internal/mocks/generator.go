package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/service"
)

var (
	_ service.Generator   = (*MockGenerator)(nil)
	_ service.KeyResolver = (*MockKeyResolver)(nil)
	_ service.KeyTester   = (*MockKeyTester)(nil)
)

// MockGenerator implements service.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, in generation.Input) (*generation.Result, error)

	// Default response values
	Result *generation.Result
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		mu     sync.Mutex
		Count  int
		Inputs []generation.Input
	}
}

// Generate implements the service.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, in generation.Input) (*generation.Result, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Inputs = append(m.GenerateCalls.Inputs, in)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, in)
	}
	return m.Result, m.Err
}

// LastInput returns the input of the most recent Generate call.
func (m *MockGenerator) LastInput() generation.Input {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Inputs) == 0 {
		return generation.Input{}
	}
	return m.GenerateCalls.Inputs[len(m.GenerateCalls.Inputs)-1]
}

// NewMockGeneratorWithText creates a MockGenerator that succeeds with text.
func NewMockGeneratorWithText(text, model string) *MockGenerator {
	return &MockGenerator{
		Result: &generation.Result{
			RawText:   text,
			ModelUsed: model,
			Content:   generation.Parse(text),
		},
	}
}

// NewMockGeneratorWithError creates a MockGenerator that fails with err.
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockKeyResolver implements service.KeyResolver for testing
type MockKeyResolver struct {
	ResolveKeyFn func(ctx context.Context, userID uuid.UUID) (string, error)

	Key string
	Err error
}

// ResolveKey implements the service.KeyResolver interface
func (m *MockKeyResolver) ResolveKey(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.ResolveKeyFn != nil {
		return m.ResolveKeyFn(ctx, userID)
	}
	return m.Key, m.Err
}

// MockKeyTester implements service.KeyTester for testing
type MockKeyTester struct {
	VerifyFn func(ctx context.Context, apiKey string) (*generation.KeyCheck, error)

	Check *generation.KeyCheck
	Err   error
}

// Verify implements the service.KeyTester interface
func (m *MockKeyTester) Verify(ctx context.Context, apiKey string) (*generation.KeyCheck, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, apiKey)
	}
	return m.Check, m.Err
}
