// Package openai implements the provider adapter for OpenAI's Chat
// Completions API. Streaming wire handling is shared with other
// OpenAI-compatible backends via the chatwire package.
package openai
