//go:build !linux && !darwin && !windows

package writer

import "os"

func fdatasync(f *os.File, _ bool) error {
	return f.Sync()
}
