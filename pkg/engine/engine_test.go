package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/provider"
	"github.com/plauderhq/plauder/pkg/storage/memory"
	"github.com/plauderhq/plauder/pkg/transport"
)

// stubAdapter is a minimal Adapter with a trivial line protocol:
// "D:<text>" is a delta, "DONE" terminates the stream, anything
// containing "ERROR" fails exit inspection.
type stubAdapter struct {
	credentialOK bool
	inspectCalls int
}

func (a *stubAdapter) Name() string         { return "stub" }
func (a *stubAdapter) Models() []string     { return []string{"m1", "m2"} }
func (a *stubAdapter) DefaultModel() string { return "m1" }

func (a *stubAdapter) Supports(descriptor any) bool {
	switch d := descriptor.(type) {
	case string:
		return d == "m1" || d == "m2"
	case *api.Payload:
		return a.Supports(d.Model)
	}
	return false
}

func (a *stubAdapter) VerifyCredential() bool { return a.credentialOK }

func (a *stubAdapter) Preprocess(p *api.Payload) *api.Payload {
	out := p.Clone()
	for i := range out.Messages {
		out.Messages[i].Content = strings.TrimSpace(out.Messages[i].Content)
	}
	return out
}

func (a *stubAdapter) TransportArgs() []string { return []string{"unused"} }

func (a *stubAdapter) Decode(line string) provider.Event {
	switch {
	case line == "DONE":
		return provider.Event{Type: provider.EventDone}
	case strings.HasPrefix(line, "D:"):
		return provider.Event{Type: provider.EventDelta, Delta: line[2:]}
	}
	return provider.Event{Type: provider.EventNone}
}

func (a *stubAdapter) InspectExit(lines []string) provider.ExitReport {
	a.inspectCalls++
	for _, l := range lines {
		if strings.Contains(l, "ERROR") {
			return provider.ExitReport{Failed: true, Message: l}
		}
	}
	return provider.ExitReport{}
}

var _ provider.Adapter = (*stubAdapter)(nil)

// scriptLauncher runs a shell script instead of curl. The adapter args
// become positional parameters and are ignored by the scripts.
func scriptLauncher(script string) transport.Launcher {
	return &transport.CurlLauncher{Binary: "sh", BaseArgs: []string{"-c", script}}
}

func userPayload(content string) *api.Payload {
	return &api.Payload{
		Messages: []api.Message{{Role: api.RoleUser, Content: content}},
	}
}

func TestChatStreamsDeltas(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:Hello\nD: world\nDONE\n'`)

	e, err := New(adapter, launcher, nil, Config{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var deltas []string
	result, err := e.Chat(context.Background(), userPayload("hi"), func(d string) error {
		deltas = append(deltas, d)
		return nil
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if result.Reply != "Hello world" {
		t.Errorf("Reply = %q, want %q", result.Reply, "Hello world")
	}
	if result.Model != "m1" {
		t.Errorf("Model = %q, want default %q", result.Model, "m1")
	}
	if len(deltas) != 2 || deltas[0] != "Hello" || deltas[1] != " world" {
		t.Errorf("deltas = %v", deltas)
	}
	if adapter.inspectCalls != 1 {
		t.Errorf("InspectExit called %d times, want 1", adapter.inspectCalls)
	}
}

func TestChatNilSink(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:ok\nDONE\n'`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	result, err := e.Chat(context.Background(), userPayload("hi"), nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if result.Reply != "ok" {
		t.Errorf("Reply = %q, want %q", result.Reply, "ok")
	}
}

func TestChatRefusesUnusableCredential(t *testing.T) {
	adapter := &stubAdapter{credentialOK: false}
	launcher := scriptLauncher(`printf 'D:never\n'`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	_, err := e.Chat(context.Background(), userPayload("hi"), nil)

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
	if adapter.inspectCalls != 0 {
		t.Error("no transport run should have happened")
	}
}

func TestChatRejectsUnsupportedModel(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:never\n'`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	p := userPayload("hi")
	p.Model = "other-model"

	_, err := e.Chat(context.Background(), p, nil)

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeInvalidRequest {
		t.Fatalf("expected invalid request error, got %v", err)
	}
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:never\n'`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	_, err := e.Chat(context.Background(), &api.Payload{Model: "m1"}, nil)

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeInvalidRequest {
		t.Fatalf("expected invalid request error, got %v", err)
	}
}

func TestChatClassifiesFailedRun(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'ERROR 401 unauthorized\n'; exit 22`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	_, err := e.Chat(context.Background(), userPayload("hi"), nil)

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "401") {
		t.Errorf("message = %q, want the extracted banner", apiErr.Message)
	}
	if adapter.inspectCalls != 1 {
		t.Errorf("InspectExit called %d times, want 1", adapter.inspectCalls)
	}
}

func TestChatSinkErrorStillInspectsExit(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:a\nD:b\nDONE\n'`)

	e, _ := New(adapter, launcher, nil, Config{}, nil)
	sinkErr := errors.New("consumer gone")
	_, err := e.Chat(context.Background(), userPayload("hi"), func(string) error {
		return sinkErr
	})

	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if adapter.inspectCalls != 1 {
		t.Errorf("InspectExit called %d times, want 1", adapter.inspectCalls)
	}
}

func TestChatSavesTranscript(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'D:saved reply\nDONE\n'`)
	store := memory.New(0)

	e, _ := New(adapter, launcher, store, Config{
		SystemPrompt:    "be brief",
		SaveTranscripts: true,
	}, nil)

	result, err := e.Chat(context.Background(), userPayload("  hi  "), nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if result.TranscriptID == "" {
		t.Fatal("expected a transcript ID")
	}

	tr, err := store.GetTranscript(context.Background(), result.TranscriptID)
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}

	// System prompt prepended, user content trimmed, reply appended.
	if len(tr.Messages) != 3 {
		t.Fatalf("len(Messages) = %d, want 3", len(tr.Messages))
	}
	if tr.Messages[0].Role != api.RoleSystem || tr.Messages[0].Content != "be brief" {
		t.Errorf("Messages[0] = %+v", tr.Messages[0])
	}
	if tr.Messages[1].Content != "hi" {
		t.Errorf("Messages[1].Content = %q, want trimmed %q", tr.Messages[1].Content, "hi")
	}
	if tr.Messages[2].Role != api.RoleAssistant || tr.Messages[2].Content != "saved reply" {
		t.Errorf("Messages[2] = %+v", tr.Messages[2])
	}
	if tr.Provider != "stub" || tr.Model != "m1" {
		t.Errorf("Provider/Model = %q/%q", tr.Provider, tr.Model)
	}
}

func TestChatDoesNotMutateCallerPayload(t *testing.T) {
	adapter := &stubAdapter{credentialOK: true}
	launcher := scriptLauncher(`printf 'DONE\n'`)

	e, _ := New(adapter, launcher, nil, Config{SystemPrompt: "prompt"}, nil)
	p := userPayload("  spaced  ")

	if _, err := e.Chat(context.Background(), p, nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if p.Model != "" {
		t.Errorf("caller model mutated: %q", p.Model)
	}
	if len(p.Messages) != 1 || p.Messages[0].Content != "  spaced  " {
		t.Errorf("caller messages mutated: %v", p.Messages)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	launcher := scriptLauncher(`true`)

	if _, err := New(nil, launcher, nil, Config{}, nil); err == nil {
		t.Error("expected error for nil adapter")
	}
	if _, err := New(&stubAdapter{}, nil, nil, Config{}, nil); err == nil {
		t.Error("expected error for nil launcher")
	}
}
