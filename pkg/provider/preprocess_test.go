package provider

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/plauderhq/plauder/pkg/api"
)

func TestFilterParams(t *testing.T) {
	allowed := []string{"temperature", "top_p", "max_tokens"}

	params := map[string]any{
		"temperature": 0.7,
		"top_p":       0.9,
		"tools":       []string{"search"},
		"seed":        42,
	}

	got := FilterParams(params, allowed)

	want := map[string]any{"temperature": 0.7, "top_p": 0.9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterParams = %v, want %v", got, want)
	}

	// The input map is untouched.
	if len(params) != 4 {
		t.Errorf("input params mutated: %v", params)
	}
}

func TestFilterParamsNil(t *testing.T) {
	if got := FilterParams(nil, []string{"temperature"}); got != nil {
		t.Errorf("FilterParams(nil) = %v, want nil", got)
	}
}

func TestSanitizePayloadTrimsContent(t *testing.T) {
	p := &api.Payload{
		Model: "gpt-4o",
		Messages: []api.Message{
			{Role: api.RoleSystem, Content: "  be brief\n"},
			{Role: api.RoleUser, Content: "\thello world  "},
		},
		Params: map[string]any{"temperature": 0.5, "unknown": true},
	}

	got := SanitizePayload(p, []string{"temperature"})

	if got.Messages[0].Content != "be brief" {
		t.Errorf("messages[0].Content = %q", got.Messages[0].Content)
	}
	if got.Messages[1].Content != "hello world" {
		t.Errorf("messages[1].Content = %q", got.Messages[1].Content)
	}
	// Roles and order preserved.
	if got.Messages[0].Role != api.RoleSystem || got.Messages[1].Role != api.RoleUser {
		t.Errorf("roles changed: %v", got.Messages)
	}
	if len(got.Messages) != 2 {
		t.Errorf("message count = %d, want 2", len(got.Messages))
	}
	if _, ok := got.Params["unknown"]; ok {
		t.Error("unknown param survived filtering")
	}
	// The original payload is untouched.
	if p.Messages[0].Content != "  be brief\n" {
		t.Errorf("input payload mutated: %q", p.Messages[0].Content)
	}
}

func TestSanitizePayloadIdempotent(t *testing.T) {
	p := &api.Payload{
		Model: "gpt-4o",
		Messages: []api.Message{
			{Role: api.RoleUser, Content: " question "},
		},
		Params: map[string]any{"temperature": 0.3},
	}
	allowed := []string{"temperature"}

	once := SanitizePayload(p, allowed)
	twice := SanitizePayload(once, allowed)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("SanitizePayload not idempotent: %v vs %v", once, twice)
	}
}

func TestSupportsModel(t *testing.T) {
	models := []string{"gpt-4o", "gpt-4o-mini"}

	if !SupportsModel(models, "gpt-4o") {
		t.Error("bare string descriptor for supported model = false")
	}
	if SupportsModel(models, "gpt-3") {
		t.Error("bare string descriptor for unsupported model = true")
	}

	// A payload descriptor behaves identically to its bare model string.
	for _, id := range models {
		p := &api.Payload{Model: id}
		if SupportsModel(models, p) != SupportsModel(models, id) {
			t.Errorf("payload and bare descriptor disagree for %q", id)
		}
	}
	if SupportsModel(models, &api.Payload{Model: "nope"}) {
		t.Error("payload descriptor for unsupported model = true")
	}

	if SupportsModel(models, 42) {
		t.Error("unknown descriptor type = true, want false")
	}
	if SupportsModel(models, (*api.Payload)(nil)) {
		t.Error("nil payload descriptor = true, want false")
	}
}

func TestVerifyCredential(t *testing.T) {
	tests := []struct {
		name     string
		cred     Credential
		want     bool
		wantLogs int
	}{
		{"resolved value", ResolvedCredential("sk-live-abc"), true, 0},
		{"empty value", Credential{}, false, 1},
		{"unresolved marker", UnresolvedCredential("/run/secrets/key"), false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			got := VerifyCredential(logger, "openai", tt.cred)
			if got != tt.want {
				t.Errorf("VerifyCredential = %v, want %v", got, tt.want)
			}

			logs := countLogLines(buf.String())
			if logs != tt.wantLogs {
				t.Errorf("log count = %d, want %d (output: %q)", logs, tt.wantLogs, buf.String())
			}
			if tt.wantLogs > 0 {
				if !strings.Contains(buf.String(), "level=ERROR") {
					t.Errorf("expected error-level log, got %q", buf.String())
				}
				if !strings.Contains(buf.String(), "openai") {
					t.Errorf("log not prefixed with provider name: %q", buf.String())
				}
			}
		})
	}
}

// countLogLines counts non-empty log records in text handler output.
func countLogLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
