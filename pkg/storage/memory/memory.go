// Package memory provides an in-memory implementation of
// storage.TranscriptStore for testing and lightweight deployments.
// Transcripts are lost when the process restarts. Optional LRU
// eviction limits memory usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"

	"github.com/plauderhq/plauder/pkg/storage"
)

// entry holds a stored transcript and its metadata.
type entry struct {
	tr      *storage.Transcript
	profile string
	lruElem *list.Element // position in LRU list
}

// Store is an in-memory TranscriptStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently used, back = least recently used
	maxSize int        // 0 = unlimited
}

// Ensure Store implements storage.TranscriptStore at compile time.
var _ storage.TranscriptStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest entry is evicted when the
// limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveTranscript persists a transcript in memory.
func (s *Store) SaveTranscript(ctx context.Context, tr *storage.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[tr.ID]; exists {
		return storage.ErrConflict
	}

	profile := storage.ProfileFromContext(ctx)

	// Evict if at capacity.
	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(tr.ID)
	s.entries[tr.ID] = &entry{
		tr:      tr,
		profile: profile,
		lruElem: elem,
	}

	return nil
}

// GetTranscript retrieves a transcript by ID. Scoped by profile when
// one is present in the context.
func (s *Store) GetTranscript(ctx context.Context, id string) (*storage.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	profile := storage.ProfileFromContext(ctx)
	if profile != "" && e.profile != profile {
		return nil, storage.ErrNotFound
	}

	return e.tr, nil
}

// ListTranscripts returns stored transcripts newest first, filtered by
// the profile in the context.
func (s *Store) ListTranscripts(ctx context.Context, limit int) ([]*storage.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := storage.ProfileFromContext(ctx)

	var matches []*storage.Transcript
	for _, e := range s.entries {
		if profile != "" && e.profile != profile {
			continue
		}
		matches = append(matches, e.tr)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// DeleteTranscript removes a transcript by ID.
func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return storage.ErrNotFound
	}

	profile := storage.ProfileFromContext(ctx)
	if profile != "" && e.profile != profile {
		return storage.ErrNotFound
	}

	s.lruList.Remove(e.lruElem)
	delete(s.entries, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
