package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/plauderhq/plauder/pkg/debug"
)

// Launcher starts the external transport process for one request.
// Implementations hand the serialized payload to the process on stdin
// and expose its output through the returned Session.
type Launcher interface {
	Launch(ctx context.Context, args []string, body []byte) (*Session, error)
}

// Session is one running transport process. Lines delivers streamed
// stdout lines in order and is closed when the stream ends. Wait must
// be called exactly once, after Lines has been drained; it blocks until
// the process has terminated and returns the full buffered output
// history, stdout and stderr combined, blank lines included.
type Session struct {
	Lines <-chan string

	mu     sync.Mutex
	buffer []string
	wg     *sync.WaitGroup
	cmd    *exec.Cmd
	logger *slog.Logger
}

// Wait blocks until the process exits and all output has been
// collected, then returns the buffered lines. A non-zero exit is not
// an error at this layer: whether the run failed is decided by the
// adapter's exit inspection over the returned buffer.
func (s *Session) Wait() []string {
	s.wg.Wait()
	if err := s.cmd.Wait(); err != nil {
		// DNS failures, killed processes and the like. The diagnostic
		// lines are already in the buffer; the exit code itself is
		// only debug information.
		s.logger.Debug("transport process exited non-zero", "error", err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.buffer))
	copy(out, s.buffer)
	return out
}

func (s *Session) append(line string) {
	s.mu.Lock()
	s.buffer = append(s.buffer, line)
	s.mu.Unlock()
}

// CurlLauncher launches curl as the transport process. The adapter's
// argument list is appended verbatim after the fixed base flags; its
// well-formedness is part of the adapter contract, not interpreted
// here. No retries and no timeouts are applied: cancellation of ctx is
// the only lifecycle control.
type CurlLauncher struct {
	// Binary is the executable to launch. Defaults to "curl".
	Binary string

	// BaseArgs precede the adapter arguments. Defaults to the silent
	// streaming POST invocation reading the body from stdin.
	BaseArgs []string

	logger *slog.Logger
}

// NewCurlLauncher creates a launcher with the standard curl invocation.
// A nil logger falls back to slog.Default.
func NewCurlLauncher(logger *slog.Logger) *CurlLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurlLauncher{
		Binary:   "curl",
		BaseArgs: []string{"--silent", "--show-error", "--no-buffer", "-X", "POST", "-d", "@-"},
		logger:   logger,
	}
}

// Launch starts the transport process, feeds it the body on stdin, and
// begins collecting output. Streamed stdout lines are delivered on
// Session.Lines as they arrive; stderr lines go into the buffer only.
func (l *CurlLauncher) Launch(ctx context.Context, args []string, body []byte) (*Session, error) {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	argv := append(append([]string{}, l.BaseArgs...), args...)
	debug.Log("transport", "launching transport process",
		"binary", l.Binary,
		"args", fmt.Sprintf("%q", argv),
	)

	cmd := exec.CommandContext(ctx, l.Binary, argv...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("transport: starting %s: %w", l.Binary, err)
	}

	go func() {
		defer stdin.Close()
		if len(body) > 0 {
			if _, err := stdin.Write(body); err != nil {
				logger.Debug("transport stdin write failed", "error", err.Error())
			}
		}
	}()

	lines := make(chan string, 16)
	var wg sync.WaitGroup

	session := &Session{
		Lines:  lines,
		wg:     &wg,
		cmd:    cmd,
		logger: logger,
	}

	// Stdout: stream to the consumer and keep in the buffer.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(lines)
		scanLines(stdout, func(line string) {
			session.append(line)
			select {
			case lines <- line:
			case <-ctx.Done():
			}
		})
	}()

	// Stderr: buffer only. Diagnostics surface through exit inspection.
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanLines(stderr, func(line string) {
			session.append(line)
		})
	}()

	return session, nil
}

// scanLines reads r line by line, including blank lines, invoking fn
// for each.
func scanLines(r io.Reader, fn func(string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
}
