// Package provider defines the backend-agnostic adapter contract for LLM
// chat-completion backends. Each adapter implementation (e.g., openai,
// anthropic, perplexity) absorbs its backend's wire format internally:
// how streamed lines decode into content deltas, how transport arguments
// are built, and how diagnostic output from a terminated transport
// process is classified. The engine only ever sees the Adapter interface
// and its provider-neutral Event and ExitReport values.
package provider
