package chatwire

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/plauderhq/plauder/pkg/debug"
	"github.com/plauderhq/plauder/pkg/provider"
)

// DecodeLine interprets one line of streamed transport output as a Chat
// Completions chunk and returns the extracted content delta, the
// terminal marker, or no content.
//
// Malformed or partial lines are an expected artifact of line-buffered
// streaming: they produce an EventNone result and a single debug-level
// log, never an error. Lines carrying a different object type
// (heartbeats, usage summaries) are valid and resolve to EventNone as
// well. Absence of the nested delta content at any level resolves to
// EventNone.
func DecodeLine(logger *slog.Logger, name, line string) provider.Event {
	// Tolerate the SSE "data: " framing some transports leave in place.
	payload := strings.TrimPrefix(strings.TrimSpace(line), "data: ")
	if payload == "" {
		return provider.Event{Type: provider.EventNone}
	}

	if payload == doneSentinel {
		return provider.Event{Type: provider.EventDone}
	}

	var c chunk
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		logger.Debug(name+" - skipping unparsable stream line",
			"error", err.Error(),
			"line", debug.Truncate(payload, 200),
		)
		return provider.Event{Type: provider.EventNone}
	}

	if c.Object != ObjectChunk {
		logger.Debug(name+" - ignoring non-chunk stream object",
			"object", c.Object,
		)
		return provider.Event{Type: provider.EventNone}
	}

	if len(c.Choices) == 0 {
		return provider.Event{Type: provider.EventNone}
	}

	// First choice only; the pipeline never requests n > 1.
	d := c.Choices[0].Delta
	if d.Content == nil || *d.Content == "" {
		// Finish-marker chunks arrive with an empty delta object.
		return provider.Event{Type: provider.EventNone}
	}

	return provider.Event{Type: provider.EventDelta, Delta: *d.Content}
}
