// Package writer provides the sinks patches are written into.
//
// A Target is a fixed-size, seekable byte store. Writes may overwrite any
// range inside it but never extend it, so the container length stays
// invariant for the lifetime of a run.
package writer

import (
	"errors"
	"io"
)

var (
	// ErrGrow indicates a write that would extend the target past its size.
	ErrGrow = errors.New("writer: write would extend target")

	// ErrClosed indicates use of a closed target.
	ErrClosed = errors.New("writer: target closed")

	// ErrNegativeOffset indicates a seek before the start of the target.
	ErrNegativeOffset = errors.New("writer: negative offset")
)

// Target is a writable, seekable handle onto the container being patched.
type Target interface {
	io.WriteSeeker

	// Size returns the fixed length of the target in bytes.
	Size() int64

	// Sync makes written data durable. full requests the strongest flush the
	// platform offers (F_FULLFSYNC on macOS).
	Sync(full bool) error
}

// resolveSeek computes an absolute position for Seek.
func resolveSeek(pos, size, offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = pos + offset
	case io.SeekEnd:
		abs = size + offset
	default:
		return pos, errors.New("writer: invalid whence")
	}
	if abs < 0 {
		return pos, ErrNegativeOffset
	}
	return abs, nil
}

var (
	_ Target = (*FileTarget)(nil)
	_ Target = (*MemTarget)(nil)
)
