// Package domain contains the business entities of the post drafting
// service: drafting modes, saved drafts and user-registered provider keys.
// It has no knowledge of storage, transport or the language model provider.
package domain
