package chatwire

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plauderhq/plauder/pkg/provider"
)

// ExtractErrorMessage scans buffered transport output for a JSON error
// envelope ({"error":{"message":...}}) and returns the contained
// message. The envelope may appear on any line of the buffer. Returns
// ok=false when no line carries one.
func ExtractErrorMessage(lines []string) (string, bool) {
	for _, line := range lines {
		payload := strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		if payload == "" || payload[0] != '{' {
			continue
		}
		var env errorEnvelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			continue
		}
		if env.Error.Message != "" {
			return strings.TrimSpace(env.Error.Message), true
		}
	}
	return "", false
}

// ClassifyExit implements exit inspection for the Chat Completions
// family: the buffered output is scanned for a status-line shape first,
// then for a JSON error envelope. A match classifies the run as failed
// and logs exactly one error-level record prefixed with the provider
// name. No recognizable pattern means success and no logging; a buffer
// of ordinary response text must never produce a false-positive error.
func ClassifyExit(logger *slog.Logger, name string, lines []string) provider.ExitReport {
	msg, ok := provider.ScanStatusLine(lines)
	if !ok {
		msg, ok = ExtractErrorMessage(lines)
	}
	if !ok {
		return provider.ExitReport{}
	}
	logger.Error(fmt.Sprintf("%s - message: %s", name, msg))
	return provider.ExitReport{Failed: true, Message: msg}
}
