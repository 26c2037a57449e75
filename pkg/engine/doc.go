// Package engine orchestrates one chat-completion request: it verifies
// the adapter's credential, prepares the payload, launches the external
// transport process, decodes the streamed output, and classifies the
// run once the process has terminated.
package engine
