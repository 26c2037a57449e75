// Package api defines the core data types shared across the plauder
// pipeline: chat messages, outgoing payloads, and the structured error
// taxonomy. The types are provider-agnostic; provider-specific wire
// formats live in the adapter packages under pkg/provider.
package api
