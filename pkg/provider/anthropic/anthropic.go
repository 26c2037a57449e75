// Package anthropic implements the provider adapter for Anthropic's
// Messages API. Unlike the Chat Completions family it has its own
// streaming envelope (typed events instead of chunk objects), carries
// the system prompt as a top-level parameter rather than a leading
// message, and signals errors through a structured JSON envelope.
package anthropic

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/debug"
	"github.com/plauderhq/plauder/pkg/provider"
)

// DefaultEndpoint is the Anthropic Messages API endpoint.
const DefaultEndpoint = "https://api.anthropic.com/v1/messages"

// apiVersion is the anthropic-version header value sent with every request.
const apiVersion = "2023-06-01"

var defaultModels = []string{
	"claude-sonnet-4-5",
	"claude-opus-4-1",
	"claude-3-7-sonnet-latest",
	"claude-3-5-haiku-latest",
}

var allowedParams = []string{
	"temperature",
	"top_p",
	"top_k",
	"max_tokens",
	"stream",
	"stop_sequences",
	"metadata",
	"system",
}

// Config holds configuration for the Anthropic adapter.
type Config struct {
	Endpoint     string
	Credential   provider.Credential
	Models       []string
	DefaultModel string
}

// DefaultConfig returns a Config pointed at api.anthropic.com.
func DefaultConfig(cred provider.Credential) Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		Credential: cred,
	}
}

// AnthropicAdapter implements provider.Adapter for the Messages API.
type AnthropicAdapter struct {
	cfg    Config
	logger *slog.Logger

	// Credential is exported and mutable for rotation; callers must
	// re-verify after overwriting it.
	Credential provider.Credential
}

var _ provider.Adapter = (*AnthropicAdapter)(nil)

// New creates a new AnthropicAdapter. Returns an error if the endpoint
// is missing.
func New(cfg Config, logger *slog.Logger) (*AnthropicAdapter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("anthropic: Endpoint is required")
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	if len(cfg.Models) == 0 {
		cfg.Models = defaultModels
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = cfg.Models[0]
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AnthropicAdapter{
		cfg:        cfg,
		logger:     logger,
		Credential: cfg.Credential,
	}, nil
}

func (a *AnthropicAdapter) Name() string         { return "anthropic" }
func (a *AnthropicAdapter) Models() []string     { return a.cfg.Models }
func (a *AnthropicAdapter) DefaultModel() string { return a.cfg.DefaultModel }

func (a *AnthropicAdapter) Supports(descriptor any) bool {
	return provider.SupportsModel(a.cfg.Models, descriptor)
}

func (a *AnthropicAdapter) VerifyCredential() bool {
	return provider.VerifyCredential(a.logger, a.Name(), a.Credential)
}

// Preprocess trims message content, filters parameters, and lifts a
// leading system message into the top-level "system" parameter the
// Messages API expects. Remaining messages keep their order.
func (a *AnthropicAdapter) Preprocess(p *api.Payload) *api.Payload {
	out := provider.SanitizePayload(p, allowedParams)

	if len(out.Messages) > 0 && out.Messages[0].Role == api.RoleSystem {
		if out.Params == nil {
			out.Params = make(map[string]any, 1)
		}
		out.Params["system"] = out.Messages[0].Content
		out.Messages = out.Messages[1:]
	}

	return out
}

// TransportArgs returns the Messages API header convention: x-api-key
// instead of a bearer token, plus the pinned API version. The order is
// fixed and never varies for the same configuration.
func (a *AnthropicAdapter) TransportArgs() []string {
	return []string{
		a.cfg.Endpoint,
		"-H",
		"x-api-key: " + a.Credential.Value,
		"-H",
		"anthropic-version: " + apiVersion,
		"content-type: text/event-stream",
	}
}

// Decode interprets one streamed line as a Messages API event. SSE
// "event:" framing lines are expected and skipped silently; only
// content_block_delta events with text carry a delta; message_stop is
// the terminal marker. Everything else (message_start, ping,
// content_block_start, malformed fragments) resolves to EventNone.
func (a *AnthropicAdapter) Decode(line string) provider.Event {
	payload := strings.TrimSpace(line)
	if payload == "" || strings.HasPrefix(payload, "event:") {
		return provider.Event{Type: provider.EventNone}
	}
	payload = strings.TrimPrefix(payload, "data: ")

	var ev streamEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		a.logger.Debug("anthropic - skipping unparsable stream line",
			"error", err.Error(),
			"line", debug.Truncate(payload, 200),
		)
		return provider.Event{Type: provider.EventNone}
	}

	switch ev.Type {
	case eventMessageStop:
		return provider.Event{Type: provider.EventDone}
	case eventContentBlockDelta:
		if ev.Delta == nil || ev.Delta.Text == "" {
			return provider.Event{Type: provider.EventNone}
		}
		return provider.Event{Type: provider.EventDelta, Delta: ev.Delta.Text}
	default:
		a.logger.Debug("anthropic - ignoring stream event", "type", ev.Type)
		return provider.Event{Type: provider.EventNone}
	}
}

// InspectExit classifies the buffered transport output. The structured
// error envelope is preferred; the status-line heuristic is the
// fallback for diagnostics that never reached JSON (e.g., proxy
// banners).
func (a *AnthropicAdapter) InspectExit(lines []string) provider.ExitReport {
	msg, ok := a.extractErrorEnvelope(lines)
	if !ok {
		msg, ok = provider.ScanStatusLine(lines)
	}
	if !ok {
		return provider.ExitReport{}
	}
	a.logger.Error(fmt.Sprintf("%s - message: %s", a.Name(), msg))
	return provider.ExitReport{Failed: true, Message: msg}
}

// extractErrorEnvelope scans the buffer for the Messages API error
// envelope: {"type":"error","error":{"type":...,"message":...}}.
func (a *AnthropicAdapter) extractErrorEnvelope(lines []string) (string, bool) {
	for _, line := range lines {
		payload := strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		if payload == "" || payload[0] != '{' {
			continue
		}
		var ev streamEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			continue
		}
		if ev.Type == eventError && ev.Error != nil && ev.Error.Message != "" {
			return strings.TrimSpace(ev.Error.Message), true
		}
	}
	return "", false
}
