package patch

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetSize indicates a target whose size differs from the source.
	ErrTargetSize = errors.New("patch: target size differs from original container")
)

// PatchError reports a fatal I/O failure while patching one occurrence.
type PatchError struct {
	Label  string // Asset being patched
	Op     string // "seek" or "write"
	Offset int64  // Match offset in the container
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *PatchError) Error() string {
	return fmt.Sprintf("%s for %s at offset %d (0x%X) failed: %v", e.Op, e.Label, e.Offset, e.Offset, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PatchError) Unwrap() error {
	return e.Err
}
