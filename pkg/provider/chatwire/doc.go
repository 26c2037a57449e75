// Package chatwire implements the Chat Completions streaming wire
// format shared by the OpenAI-compatible adapter family (openai,
// perplexity). Adapters delegate line decoding and error-envelope
// extraction here and keep only their endpoint, model set, and
// parameter allow-list to themselves.
package chatwire
