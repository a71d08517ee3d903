// Package mocks provides centralized mock implementations for testing.
//
// Stores are mocked with testify/mock so tests can assert exact calls.
// Services and collaborators with a small surface use function fields
// with default return values.
//
// Usage:
//
//	drafts := &mocks.TestifyMockDraftStore{}
//	drafts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)
//
//	gen := &mocks.MockGenerator{Result: &generation.Result{RawText: "..."}}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement either a testify mock or a struct with function fields
//  3. Add a compile-time assertion against the interface
package mocks
