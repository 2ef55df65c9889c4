// Package debug is the ambient diagnostic log backing spec.md §7's
// "debug-flagged pretty-print" that appears when DEBUG/KEYBINDING or
// DEBUG/EVALUATE is non-nil. It is a hand-rolled, mutex-protected
// io.Writer toggle rather than a structured-logging library, matching
// the one analogue in the retrieved pack that solves the same problem
// (standardbeagle-lci's internal/debug package) — no repo in the pack
// reaches for zap/zerolog/logrus for this kind of toggleable trace
// output.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	writer io.Writer = os.Stderr
	tags          = map[string]bool{}
)

// SetWriter redirects every subsequent Logf call to w. Tests typically
// pass a bytes.Buffer so they can assert on emitted lines without
// touching stderr.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

// Enable turns on logging for tag (e.g. "keybinding", "evaluate"). A
// disabled tag's Logf calls are free beyond a map lookup.
func Enable(tag string) {
	mu.Lock()
	defer mu.Unlock()
	tags[tag] = true
}

// Disable turns off logging for tag.
func Disable(tag string) {
	mu.Lock()
	defer mu.Unlock()
	delete(tags, tag)
}

// SetEnabled sets tag's state directly, which is more convenient than
// Enable/Disable when the caller already has a bool (e.g. a Lisp
// DEBUG/* variable's non-nil-ness).
func SetEnabled(tag string, enabled bool) {
	if enabled {
		Enable(tag)
	} else {
		Disable(tag)
	}
}

// Writer returns the current destination for Logf and any other
// debug-gated output (e.g. rope.Dump), so callers outside this package
// can write directly to the same sink.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return writer
}

// Enabled reports whether tag is currently turned on.
func Enabled(tag string) bool {
	mu.Lock()
	defer mu.Unlock()
	return tags[tag]
}

// Logf writes a formatted line tagged with tag, if tag is enabled.
// Nothing is written (not even the format evaluated) when disabled.
func Logf(tag, format string, args ...any) {
	mu.Lock()
	enabled := tags[tag]
	w := writer
	mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
}
