//go:build windows

package writer

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync flushes file buffers with FlushFileBuffers.
// The full parameter is ignored on Windows.
func fdatasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
