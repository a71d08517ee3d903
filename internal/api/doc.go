// Package api handles incoming HTTP requests: routing targets, request
// validation and response formatting. Handlers translate HTTP concerns to
// service calls and map service errors to status codes in errors.go.
package api
