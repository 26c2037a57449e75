package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/storage"
)

func makeTranscript(id string, created time.Time) *storage.Transcript {
	return &storage.Transcript{
		ID:       id,
		Provider: "openai",
		Model:    "test-model",
		Messages: []api.Message{
			{Role: api.RoleUser, Content: "hello"},
			{Role: api.RoleAssistant, Content: "hi"},
		},
		CreatedAt: created,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	tr := makeTranscript("chat_test1", time.Now())
	if err := s.SaveTranscript(ctx, tr); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	got, err := s.GetTranscript(ctx, "chat_test1")
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}

	if got.ID != "chat_test1" {
		t.Errorf("ID = %q, want %q", got.ID, "chat_test1")
	}
	if got.Model != "test-model" {
		t.Errorf("Model = %q, want %q", got.Model, "test-model")
	}
	if len(got.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(got.Messages))
	}
}

func TestGetNotFound(t *testing.T) {
	s := New(0)

	_, err := s.GetTranscript(context.Background(), "chat_missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateSave(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	tr := makeTranscript("chat_dup", time.Now())
	s.SaveTranscript(ctx, tr)

	err := s.SaveTranscript(ctx, tr)
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	s.SaveTranscript(ctx, makeTranscript("chat_del", time.Now()))

	if err := s.DeleteTranscript(ctx, "chat_del"); err != nil {
		t.Fatalf("DeleteTranscript failed: %v", err)
	}

	if _, err := s.GetTranscript(ctx, "chat_del"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := New(0)

	err := s.DeleteTranscript(context.Background(), "chat_missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	base := time.Now()
	s.SaveTranscript(ctx, makeTranscript("chat_old", base.Add(-2*time.Minute)))
	s.SaveTranscript(ctx, makeTranscript("chat_mid", base.Add(-1*time.Minute)))
	s.SaveTranscript(ctx, makeTranscript("chat_new", base))

	got, err := s.ListTranscripts(ctx, 0)
	if err != nil {
		t.Fatalf("ListTranscripts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"chat_new", "chat_mid", "chat_old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	// Limit applies after ordering.
	limited, _ := s.ListTranscripts(ctx, 2)
	if len(limited) != 2 || limited[0].ID != "chat_new" {
		t.Errorf("limited list wrong: %v", limited)
	}
}

func TestLRUEviction(t *testing.T) {
	s := New(3) // max 3 entries
	ctx := context.Background()

	now := time.Now()
	s.SaveTranscript(ctx, makeTranscript("chat_a", now))
	s.SaveTranscript(ctx, makeTranscript("chat_b", now))
	s.SaveTranscript(ctx, makeTranscript("chat_c", now))

	// All three should be accessible.
	for _, id := range []string{"chat_a", "chat_b", "chat_c"} {
		if _, err := s.GetTranscript(ctx, id); err != nil {
			t.Fatalf("expected %s to exist, got %v", id, err)
		}
	}

	// Save a 4th: oldest (chat_a) should be evicted.
	s.SaveTranscript(ctx, makeTranscript("chat_d", now))

	if _, err := s.GetTranscript(ctx, "chat_a"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("expected chat_a to be evicted")
	}

	for _, id := range []string{"chat_b", "chat_c", "chat_d"} {
		if _, err := s.GetTranscript(ctx, id); err != nil {
			t.Errorf("expected %s to exist after eviction, got %v", id, err)
		}
	}
}

func TestProfileIsolation(t *testing.T) {
	s := New(0)

	ctxA := storage.WithProfile(context.Background(), "work")
	ctxB := storage.WithProfile(context.Background(), "personal")
	ctxNone := context.Background()

	s.SaveTranscript(ctxA, makeTranscript("chat_a1", time.Now()))

	if _, err := s.GetTranscript(ctxA, "chat_a1"); err != nil {
		t.Fatalf("owner profile should retrieve own transcript: %v", err)
	}

	if _, err := s.GetTranscript(ctxB, "chat_a1"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("other profile should not see the transcript")
	}

	// No profile (single-profile mode) sees everything.
	if _, err := s.GetTranscript(ctxNone, "chat_a1"); err != nil {
		t.Fatalf("no-profile context should see all transcripts: %v", err)
	}

	// Other profile cannot delete either.
	if err := s.DeleteTranscript(ctxB, "chat_a1"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("other profile should not delete the transcript")
	}
	if err := s.DeleteTranscript(ctxA, "chat_a1"); err != nil {
		t.Fatalf("owner profile should delete own transcript: %v", err)
	}
}

func TestListProfileScoped(t *testing.T) {
	s := New(0)

	ctxA := storage.WithProfile(context.Background(), "work")
	ctxB := storage.WithProfile(context.Background(), "personal")

	s.SaveTranscript(ctxA, makeTranscript("chat_w1", time.Now()))
	s.SaveTranscript(ctxA, makeTranscript("chat_w2", time.Now()))
	s.SaveTranscript(ctxB, makeTranscript("chat_p1", time.Now()))

	got, err := s.ListTranscripts(ctxA, 0)
	if err != nil {
		t.Fatalf("ListTranscripts failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 transcripts for profile, got %d", len(got))
	}
	for _, tr := range got {
		if tr.ID == "chat_p1" {
			t.Error("list leaked another profile's transcript")
		}
	}
}
