package provider

// Credential is the resolved secret an adapter authenticates with.
// A credential is either a resolved non-empty Value or carries the
// Unresolved marker: a configuration reference (e.g., a secret file)
// that failed to resolve to an actual value. An unresolved credential
// is never silently treated as valid.
type Credential struct {
	// Value is the resolved secret. Empty when absent or unresolved.
	Value string

	// Ref is the configuration reference the credential came from
	// (e.g., a file path). Informational, used in log output.
	Ref string

	// Unresolved marks a reference that could not be resolved.
	Unresolved bool
}

// ResolvedCredential returns a credential holding a literal value.
func ResolvedCredential(value string) Credential {
	return Credential{Value: value}
}

// UnresolvedCredential returns the distinguished unresolved marker for
// the given reference.
func UnresolvedCredential(ref string) Credential {
	return Credential{Ref: ref, Unresolved: true}
}

// EventType classifies the outcome of decoding one streamed line.
type EventType int

const (
	// EventNone means the line carried no content delta: a heartbeat,
	// a malformed fragment, or a finish chunk with an empty delta.
	// This is a normal outcome, not an error.
	EventNone EventType = iota

	// EventDelta means the line carried incremental text content.
	EventDelta

	// EventDone means the line is the stream's terminal marker.
	EventDone
)

// Event is the decoded result of one streamed line.
type Event struct {
	Type  EventType
	Delta string
}

// ExitReport classifies the buffered output of a terminated transport
// process. Failed reports carry a human-readable message extracted from
// the buffer; success reports carry nothing and trigger no logging.
type ExitReport struct {
	Failed  bool
	Message string
}
