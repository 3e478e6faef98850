//go:build darwin

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync syncs the file descriptor.
//
// macOS has no fdatasync. With full set, F_FULLFSYNC asks the drive to flush
// its own cache as well.
func fdatasync(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
