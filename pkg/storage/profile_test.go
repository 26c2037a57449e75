package storage

import (
	"context"
	"testing"
)

func TestProfileFromContext(t *testing.T) {
	if got := ProfileFromContext(context.Background()); got != "" {
		t.Errorf("expected empty profile on bare context, got %q", got)
	}

	ctx := WithProfile(context.Background(), "work")
	if got := ProfileFromContext(ctx); got != "work" {
		t.Errorf("expected profile %q, got %q", "work", got)
	}

	// Nested WithProfile overrides the outer value.
	inner := WithProfile(ctx, "personal")
	if got := ProfileFromContext(inner); got != "personal" {
		t.Errorf("expected profile %q, got %q", "personal", got)
	}
	if got := ProfileFromContext(ctx); got != "work" {
		t.Errorf("outer context changed, got %q", got)
	}
}
