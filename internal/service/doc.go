// Package service contains the application use cases: drafting posts for a
// user and persisting the result, and managing the user's own provider API
// key. Services depend on the store interfaces and on the generation
// package, never on concrete infrastructure.
package service
