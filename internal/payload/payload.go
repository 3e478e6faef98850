// Package payload normalizes replacement payloads to the length of the
// original payload they overwrite.
package payload

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch indicates a replacement payload longer than its original.
var ErrSizeMismatch = errors.New("payload: replacement larger than original")

// SizeMismatchError reports which asset was rejected and by how much.
type SizeMismatchError struct {
	Label          string // Asset the replacement belongs to
	OriginalLen    int
	ReplacementLen int
}

// Error implements the error interface.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf(
		"payload: replacement for %s is %d bytes, original is %d bytes",
		e.Label,
		e.ReplacementLen,
		e.OriginalLen,
	)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Normalize returns replacement followed by zero bytes up to originalLen.
//
// The result is always a fresh buffer of exactly originalLen bytes; trailing
// bytes of the original are discarded, not preserved. Replacements longer than
// originalLen are rejected with a *SizeMismatchError and never truncated.
func Normalize(label string, originalLen int, replacement []byte) ([]byte, error) {
	if len(replacement) > originalLen {
		return nil, &SizeMismatchError{
			Label:          label,
			OriginalLen:    originalLen,
			ReplacementLen: len(replacement),
		}
	}
	out := make([]byte, originalLen)
	copy(out, replacement)
	return out, nil
}
