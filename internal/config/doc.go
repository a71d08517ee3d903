// Package config loads application settings from an optional config.yaml,
// a .env file and XGENIE_-prefixed environment variables, in increasing order
// of precedence, and validates them before any component is built.
package config
