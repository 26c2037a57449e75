package provider

import (
	"github.com/plauderhq/plauder/pkg/api"
)

// Adapter abstracts one LLM backend family behind a uniform contract.
// The transport (an external process streaming text lines) is a
// collaborator: adapters never perform network I/O themselves. They
// prepare what goes out (Preprocess, TransportArgs) and interpret what
// comes back (Decode, InspectExit).
//
// An adapter instance is a short-lived, single-owner value for the
// duration of one request/response cycle. No internal locking is
// performed; callers must not mutate configuration while a request is
// in flight.
type Adapter interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Models returns the identifiers this adapter can serve.
	Models() []string

	// DefaultModel returns the model used when a payload omits one.
	DefaultModel() string

	// Supports reports whether the given model descriptor names a
	// supported model. The descriptor is either a bare identifier
	// string or a *api.Payload whose Model field is consulted.
	// An unsupported model is a normal query outcome, not an error;
	// no logging occurs.
	Supports(descriptor any) bool

	// VerifyCredential reports whether the configured credential is a
	// usable, resolved value. Returns false with exactly one error log
	// when the credential is empty or unresolved.
	VerifyCredential() bool

	// Preprocess returns a sanitized copy of the payload: message
	// content trimmed of surrounding whitespace, and parameters not on
	// the adapter's allow-list dropped. Message order and roles are
	// preserved. Preprocess is idempotent.
	Preprocess(p *api.Payload) *api.Payload

	// TransportArgs returns the ordered argument list handed to the
	// transport-launch collaborator. The result is a pure function of
	// the adapter's endpoint and credential: order and exact header
	// text are part of the external contract and never vary run to run
	// for the same configuration.
	TransportArgs() []string

	// Decode interprets one line of streamed transport output. Lines
	// that are not valid JSON, carry a different event type, or lack
	// the nested delta field resolve to an EventNone result; none of
	// these abort the stream.
	Decode(line string) Event

	// InspectExit classifies the full buffered output of a terminated
	// transport process. A recognizable error banner anywhere in the
	// buffer yields a Failed report and exactly one error log; a buffer
	// of ordinary response text yields Success with no log. It is
	// invoked exactly once per request, after process termination.
	InspectExit(lines []string) ExitReport
}
