package provider

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/plauderhq/plauder/pkg/api"
)

// FilterParams returns only the parameters whose keys appear on the
// allow-list. Unknown parameters are dropped silently; an outgoing
// request never fails because the caller attached a parameter the
// backend does not understand.
func FilterParams(params map[string]any, allowed []string) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		if slices.Contains(allowed, k) {
			out[k] = v
		}
	}
	return out
}

// SanitizePayload implements the shared preprocessing step: it clones
// the payload, trims every message's content of surrounding whitespace,
// and filters parameters against the allow-list. Message order and
// roles are untouched. Applying it twice yields the same result as once.
func SanitizePayload(p *api.Payload, allowed []string) *api.Payload {
	out := p.Clone()
	for i := range out.Messages {
		out.Messages[i].Content = strings.TrimSpace(out.Messages[i].Content)
	}
	out.Params = FilterParams(out.Params, allowed)
	return out
}

// SupportsModel reports whether the descriptor names a model in the
// supported set. The descriptor is either a bare identifier string or
// a *api.Payload; both forms normalize to a single identifier before
// lookup. Any other descriptor type resolves to false.
func SupportsModel(models []string, descriptor any) bool {
	var id string
	switch d := descriptor.(type) {
	case string:
		id = d
	case *api.Payload:
		if d == nil {
			return false
		}
		id = d.Model
	default:
		return false
	}
	return slices.Contains(models, id)
}

// VerifyCredential reports whether cred is a usable, resolved value.
// An empty or unresolved credential logs exactly one error, prefixed
// with the provider name, and returns false. A valid credential logs
// nothing.
func VerifyCredential(logger *slog.Logger, name string, cred Credential) bool {
	if cred.Unresolved {
		logger.Error(name+" - credential reference could not be resolved", "ref", cred.Ref)
		return false
	}
	if cred.Value == "" {
		logger.Error(name + " - credential is not set")
		return false
	}
	return true
}
