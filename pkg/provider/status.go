package provider

import (
	"regexp"
	"strings"
)

// statusLinePattern matches an HTTP status code followed by a reason
// phrase, e.g. "401 Authorization Required" or "HTTP/2 503 Service
// Unavailable". This is a best-effort heuristic: transport diagnostics
// interleave blank lines, server banners, and the real error at
// unpredictable positions, and numeric response content can in
// principle false-trigger. Adapters with a structured error channel
// (a JSON error envelope) should prefer that and fall back to this scan.
var statusLinePattern = regexp.MustCompile(`\b([1-5][0-9]{2}) +([A-Za-z][A-Za-z'\- ]*[A-Za-z])`)

// ScanStatusLine scans the buffered transport output for a status-line
// shape and returns the concatenated status code and reason phrase,
// trimmed. The whole buffer is scanned; the error may appear on any
// line. Returns ok=false when no recognizable pattern exists anywhere,
// in which case the buffer is treated as ordinary response text.
func ScanStatusLine(lines []string) (string, bool) {
	for _, line := range lines {
		if m := statusLinePattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1] + " " + m[2]), true
		}
	}
	return "", false
}
