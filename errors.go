// Package flight reassembles the line-oriented, indexed row stream that a
// server-rendered page embeds as a sequence of inline script fragments, and
// resolves the pointer references between its rows.
//
// Fragments are appended in arrival order, then processed exactly once. Each
// row is keyed by a hexadecimal index. Plain rows occupy the rest of their
// line; length-prefixed rows ("T" rows) declare a UTF-8 byte length and may
// span several physical lines or share a line with the next row. Processing
// produces a sparse table of raw values. Resolution replaces "$hex" pointer
// tokens with the referenced rows, recursively, up to a depth limit.
//
// A Processor is owned by one pipeline. Construct a fresh one per page.
package flight

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Callers use errors.Is to tell
// input problems (ErrMalformedHeader, ErrMalformedLength, ErrTruncated) from
// lookups that simply miss (ErrIndexNotFound).
var (
	ErrLocked          = errors.New("processor is locked")
	ErrMalformedHeader = errors.New("malformed row header")
	ErrMalformedLength = errors.New("malformed row length")
	ErrTruncated       = errors.New("length-prefixed row truncated")
	ErrIndexNotFound   = errors.New("index not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrDecompress      = errors.New("decompression failed")
)

// LineError reports the line that failed to parse. Err is one of the
// sentinel errors above.
type LineError struct {
	Line string
	Err  error
}

func (e *LineError) Error() string {
	line := e.Line
	if len(line) > 64 {
		line = line[:64] + "..."
	}
	return fmt.Sprintf("%v: %q", e.Err, line)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
