package writer

import (
	"fmt"
	"os"
)

// FileTarget patches an existing file in place.
//
// The file is opened write-only without O_CREATE or O_TRUNC; it must already
// exist as a full copy of the container.
type FileTarget struct {
	Path string

	f    *os.File
	size int64
	pos  int64
}

// OpenFile opens the existing regular file at path for patching.
func OpenFile(path string) (*FileTarget, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("writer: %s is not a regular file", path)
	}
	return &FileTarget{Path: path, f: f, size: info.Size()}, nil
}

// Seek sets the offset for the next Write.
func (t *FileTarget) Seek(offset int64, whence int) (int64, error) {
	if t.f == nil {
		return 0, ErrClosed
	}
	abs, err := resolveSeek(t.pos, t.size, offset, whence)
	if err != nil {
		return t.pos, err
	}
	if _, err := t.f.Seek(abs, 0); err != nil {
		return t.pos, err
	}
	t.pos = abs
	return abs, nil
}

// Write writes p at the current offset. Writes reaching past Size are
// refused before any byte is written.
func (t *FileTarget) Write(p []byte) (int, error) {
	if t.f == nil {
		return 0, ErrClosed
	}
	if t.pos+int64(len(p)) > t.size {
		return 0, fmt.Errorf("%w: %d bytes at offset %d, size %d", ErrGrow, len(p), t.pos, t.size)
	}
	n, err := t.f.Write(p)
	t.pos += int64(n)
	return n, err
}

// Size returns the file size recorded at open time.
func (t *FileTarget) Size() int64 { return t.size }

// Sync flushes written data to disk.
func (t *FileTarget) Sync(full bool) error {
	if t.f == nil {
		return ErrClosed
	}
	return fdatasync(t.f, full)
}

// Close releases the file handle.
func (t *FileTarget) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.f.Close()
	t.f = nil
	return err
}
