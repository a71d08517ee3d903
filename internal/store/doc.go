// Package store defines the persistence interfaces for drafts and user API
// keys, together with the errors implementations must return. Postgres
// implementations live in internal/platform/postgres.
package store
