package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// CopyFile copies src to dst atomically via temp file + rename.
//
// dst never exists in a partially written state: either the rename happens
// after the full copy is synced, or dst is left untouched.
func CopyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(in))

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(filepath.Dir(dst), ".bankpatch-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, copyErr := io.Copy(tmpFile, in); copyErr != nil {
		return fmt.Errorf("write temp file: %w", copyErr)
	}
	if chmodErr := tmpFile.Chmod(info.Mode().Perm()); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, dst); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
