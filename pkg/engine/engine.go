package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/debug"
	"github.com/plauderhq/plauder/pkg/observability"
	"github.com/plauderhq/plauder/pkg/provider"
	"github.com/plauderhq/plauder/pkg/storage"
	"github.com/plauderhq/plauder/pkg/transport"
)

// Sink receives content deltas as they are decoded from the stream.
// A non-nil error stops delivery; the transport run still completes
// and is inspected before Chat returns.
type Sink func(delta string) error

// Result is the outcome of one completed chat exchange.
type Result struct {
	// Reply is the assembled assistant text.
	Reply string

	// Model is the model that served the request, after defaulting.
	Model string

	// TranscriptID is set when the exchange was persisted.
	TranscriptID string
}

// Engine drives the request pipeline for one provider adapter.
type Engine struct {
	adapter  provider.Adapter
	launcher transport.Launcher
	store    storage.TranscriptStore
	cfg      Config
	logger   *slog.Logger
}

// New creates an Engine. The adapter and launcher must not be nil. The
// store can be nil for ephemeral operation.
func New(adapter provider.Adapter, launcher transport.Launcher, store storage.TranscriptStore, cfg Config, logger *slog.Logger) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("engine: adapter must not be nil")
	}
	if launcher == nil {
		return nil, fmt.Errorf("engine: launcher must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.defaults()
	return &Engine{
		adapter:  adapter,
		launcher: launcher,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Chat runs one request through the pipeline. Deltas are delivered to
// sink in arrival order; the assembled reply is returned once the
// transport process has terminated and its output has been classified.
// A nil sink discards deltas.
func (e *Engine) Chat(ctx context.Context, p *api.Payload, sink Sink) (*Result, error) {
	name := e.adapter.Name()

	if !e.adapter.VerifyCredential() {
		observability.CredentialRejectionsTotal.WithLabelValues(name).Inc()
		return nil, api.NewConfigError(fmt.Sprintf("%s: credential is not usable", name))
	}

	work := p.Clone()
	if work.Model == "" {
		work.Model = e.adapter.DefaultModel()
	}

	if apiErr := api.ValidatePayload(work, e.cfg.Validation); apiErr != nil {
		return nil, apiErr
	}

	if !e.adapter.Supports(work.Model) {
		return nil, api.NewInvalidRequestError("model",
			fmt.Sprintf("model %q is not served by provider %s", work.Model, name))
	}

	work.Messages = api.PrependSystemPrompt(work.Messages, e.cfg.SystemPrompt)
	work = e.adapter.Preprocess(work)

	body, err := json.Marshal(work)
	if err != nil {
		return nil, fmt.Errorf("engine: encoding payload: %w", err)
	}

	debug.Log("engine", "starting chat request",
		"provider", name,
		"model", work.Model,
		"messages", len(work.Messages),
	)

	observability.TransportLaunchesTotal.WithLabelValues(name, work.Model).Inc()
	start := time.Now()

	session, err := e.launcher.Launch(ctx, e.adapter.TransportArgs(), body)
	if err != nil {
		observability.TransportFailuresTotal.WithLabelValues(name).Inc()
		return nil, api.NewTransportError(err.Error())
	}

	var reply strings.Builder
	var sinkErr error

	for line := range session.Lines {
		ev := e.adapter.Decode(line)
		switch ev.Type {
		case provider.EventDelta:
			observability.StreamEventsTotal.WithLabelValues(name, "delta").Inc()
			reply.WriteString(ev.Delta)
			if sink != nil && sinkErr == nil {
				sinkErr = sink(ev.Delta)
			}
		case provider.EventDone:
			observability.StreamEventsTotal.WithLabelValues(name, "done").Inc()
		default:
			observability.StreamEventsTotal.WithLabelValues(name, "none").Inc()
		}
	}

	// The stream has ended; collect the full history and classify the
	// run exactly once.
	buffer := session.Wait()
	report := e.adapter.InspectExit(buffer)

	observability.TransportDuration.WithLabelValues(name, work.Model).Observe(time.Since(start).Seconds())

	if report.Failed {
		observability.TransportFailuresTotal.WithLabelValues(name).Inc()
		return nil, api.NewTransportError(report.Message)
	}
	if sinkErr != nil {
		return nil, fmt.Errorf("engine: delivering delta: %w", sinkErr)
	}

	result := &Result{
		Reply: reply.String(),
		Model: work.Model,
	}

	if e.store != nil && e.cfg.SaveTranscripts {
		result.TranscriptID = e.saveTranscript(ctx, work, result.Reply)
	}

	return result, nil
}

// saveTranscript persists the completed exchange. Persistence failures
// are logged but never fail the chat itself.
func (e *Engine) saveTranscript(ctx context.Context, work *api.Payload, reply string) string {
	name := e.adapter.Name()

	messages := make([]api.Message, 0, len(work.Messages)+1)
	messages = append(messages, work.Messages...)
	messages = append(messages, api.Message{Role: api.RoleAssistant, Content: reply})

	tr := &storage.Transcript{
		ID:        api.NewTranscriptID(),
		Provider:  name,
		Model:     work.Model,
		Messages:  messages,
		CreatedAt: time.Now().UTC(),
	}

	if err := e.store.SaveTranscript(ctx, tr); err != nil {
		observability.TranscriptsSavedTotal.WithLabelValues(name, "error").Inc()
		e.logger.Warn("saving transcript failed", "id", tr.ID, "error", err.Error())
		return ""
	}

	observability.TranscriptsSavedTotal.WithLabelValues(name, "ok").Inc()
	debug.Log("storage", "transcript saved", "id", tr.ID, "provider", name)
	return tr.ID
}
