package openai

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/provider"
	"github.com/plauderhq/plauder/pkg/provider/chatwire"
)

// allowedParams is the Chat Completions parameter allow-list. Keys not
// listed here are dropped during preprocessing.
var allowedParams = []string{
	"temperature",
	"top_p",
	"n",
	"max_tokens",
	"stream",
	"stop",
	"presence_penalty",
	"frequency_penalty",
	"logit_bias",
	"logprobs",
	"top_logprobs",
	"seed",
	"response_format",
	"user",
}

// OpenAIAdapter implements provider.Adapter for the OpenAI Chat
// Completions API.
type OpenAIAdapter struct {
	cfg    Config
	logger *slog.Logger

	// Credential authenticates transport requests. The field is
	// exported and mutable so callers can rotate the secret on a live
	// adapter; mutation bypasses construction-time validation, so
	// callers must re-verify with VerifyCredential afterwards.
	Credential provider.Credential
}

// Ensure OpenAIAdapter implements provider.Adapter at compile time.
var _ provider.Adapter = (*OpenAIAdapter)(nil)

// New creates a new OpenAIAdapter with the given configuration. A nil
// logger falls back to slog.Default. Returns an error if the endpoint
// is missing.
func New(cfg Config, logger *slog.Logger) (*OpenAIAdapter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("openai: Endpoint is required")
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

	return &OpenAIAdapter{
		cfg:        cfg,
		logger:     logger,
		Credential: cfg.Credential,
	}, nil
}

// Name returns the provider identifier.
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Models returns the supported model identifiers.
func (a *OpenAIAdapter) Models() []string {
	return a.cfg.Models
}

// DefaultModel returns the model used when a payload omits one.
func (a *OpenAIAdapter) DefaultModel() string {
	return a.cfg.DefaultModel
}

// Supports reports whether the descriptor names a supported model.
func (a *OpenAIAdapter) Supports(descriptor any) bool {
	return provider.SupportsModel(a.cfg.Models, descriptor)
}

// VerifyCredential reports whether the credential is usable, logging
// an error when it is not.
func (a *OpenAIAdapter) VerifyCredential() bool {
	return provider.VerifyCredential(a.logger, a.Name(), a.Credential)
}

// Preprocess trims message content and drops parameters outside the
// Chat Completions allow-list.
func (a *OpenAIAdapter) Preprocess(p *api.Payload) *api.Payload {
	return provider.SanitizePayload(p, allowedParams)
}

// TransportArgs returns the fixed transport argument list for the
// configured endpoint and credential.
func (a *OpenAIAdapter) TransportArgs() []string {
	return provider.BearerArgs(a.cfg.Endpoint, a.Credential)
}

// Decode interprets one streamed line as a Chat Completions chunk.
func (a *OpenAIAdapter) Decode(line string) provider.Event {
	return chatwire.DecodeLine(a.logger, a.Name(), line)
}

// InspectExit classifies the buffered transport output.
func (a *OpenAIAdapter) InspectExit(lines []string) provider.ExitReport {
	return chatwire.ClassifyExit(a.logger, a.Name(), lines)
}
