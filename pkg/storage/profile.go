package storage

import "context"

type profileKey struct{}

// WithProfile returns a context carrying the given profile name.
// Stores use it to scope reads and writes.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

// ProfileFromContext extracts the profile name from the context.
// Returns the empty string when no profile was set, which stores
// treat as single-profile mode.
func ProfileFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(profileKey{}).(string); ok {
		return v
	}
	return ""
}
