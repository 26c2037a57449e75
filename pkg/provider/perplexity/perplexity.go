// Package perplexity implements the provider adapter for the
// Perplexity API. The wire format is Chat Completions compatible, so
// stream decoding and exit classification are shared via chatwire; the
// adapter contributes its own endpoint, sonar model set, and parameter
// allow-list including Perplexity's search extensions.
package perplexity

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/provider"
	"github.com/plauderhq/plauder/pkg/provider/chatwire"
)

// DefaultEndpoint is the Perplexity chat completions endpoint.
const DefaultEndpoint = "https://api.perplexity.ai/chat/completions"

var defaultModels = []string{
	"sonar",
	"sonar-pro",
	"sonar-reasoning",
	"sonar-reasoning-pro",
}

// allowedParams is narrower than OpenAI's list but admits Perplexity's
// search-specific parameters.
var allowedParams = []string{
	"temperature",
	"top_p",
	"top_k",
	"max_tokens",
	"stream",
	"presence_penalty",
	"frequency_penalty",
	"search_domain_filter",
	"search_recency_filter",
	"return_citations",
	"return_images",
}

// Config holds configuration for the Perplexity adapter.
type Config struct {
	Endpoint     string
	Credential   provider.Credential
	Models       []string
	DefaultModel string
}

// DefaultConfig returns a Config pointed at api.perplexity.ai.
func DefaultConfig(cred provider.Credential) Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		Credential: cred,
	}
}

// PerplexityAdapter implements provider.Adapter for Perplexity.
type PerplexityAdapter struct {
	cfg    Config
	logger *slog.Logger

	// Credential is exported and mutable for rotation; callers must
	// re-verify after overwriting it.
	Credential provider.Credential
}

var _ provider.Adapter = (*PerplexityAdapter)(nil)

// New creates a new PerplexityAdapter. Returns an error if the
// endpoint is missing.
func New(cfg Config, logger *slog.Logger) (*PerplexityAdapter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("perplexity: Endpoint is required")
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

	return &PerplexityAdapter{
		cfg:        cfg,
		logger:     logger,
		Credential: cfg.Credential,
	}, nil
}

func (a *PerplexityAdapter) Name() string         { return "perplexity" }
func (a *PerplexityAdapter) Models() []string     { return a.cfg.Models }
func (a *PerplexityAdapter) DefaultModel() string { return a.cfg.DefaultModel }

func (a *PerplexityAdapter) Supports(descriptor any) bool {
	return provider.SupportsModel(a.cfg.Models, descriptor)
}

func (a *PerplexityAdapter) VerifyCredential() bool {
	return provider.VerifyCredential(a.logger, a.Name(), a.Credential)
}

func (a *PerplexityAdapter) Preprocess(p *api.Payload) *api.Payload {
	return provider.SanitizePayload(p, allowedParams)
}

func (a *PerplexityAdapter) TransportArgs() []string {
	return provider.BearerArgs(a.cfg.Endpoint, a.Credential)
}

func (a *PerplexityAdapter) Decode(line string) provider.Event {
	return chatwire.DecodeLine(a.logger, a.Name(), line)
}

func (a *PerplexityAdapter) InspectExit(lines []string) provider.ExitReport {
	return chatwire.ClassifyExit(a.logger, a.Name(), lines)
}
