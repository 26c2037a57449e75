// Package transport launches the external process that performs the
// actual network request (curl) and exposes its output to the pipeline:
// streamed stdout lines one at a time while the process runs, and the
// full buffered stdout/stderr history once it has terminated. The
// transport knows nothing about providers or wire formats; adapters
// interpret every line it produces.
package transport
