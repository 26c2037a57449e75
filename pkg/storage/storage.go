package storage

import (
	"context"
	"time"

	"github.com/plauderhq/plauder/pkg/api"
)

// Transcript is one completed chat exchange: the preprocessed request
// messages plus the assembled assistant reply.
type Transcript struct {
	ID        string        `json:"id"`
	Provider  string        `json:"provider"`
	Model     string        `json:"model"`
	Messages  []api.Message `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

// TranscriptStore persists transcripts. Implementations scope access
// by the profile carried in the context; an empty profile means
// single-profile mode with no scoping.
type TranscriptStore interface {
	// SaveTranscript persists a transcript. Returns ErrConflict when
	// the ID already exists.
	SaveTranscript(ctx context.Context, tr *Transcript) error

	// GetTranscript retrieves a transcript by ID. Returns ErrNotFound
	// when it does not exist or belongs to another profile.
	GetTranscript(ctx context.Context, id string) (*Transcript, error)

	// ListTranscripts returns up to limit transcripts, newest first.
	// limit <= 0 means no limit.
	ListTranscripts(ctx context.Context, limit int) ([]*Transcript, error)

	// DeleteTranscript removes a transcript by ID. Returns ErrNotFound
	// when it does not exist.
	DeleteTranscript(ctx context.Context, id string) error

	// Close releases store resources.
	Close() error
}
