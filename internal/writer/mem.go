package writer

import "fmt"

// MemTarget patches a byte slice in memory.
type MemTarget struct {
	Buf   []byte
	Syncs int // number of Sync calls, for tests

	pos int64
}

// NewMem returns a MemTarget over buf. buf is modified in place.
func NewMem(buf []byte) *MemTarget {
	return &MemTarget{Buf: buf}
}

// Seek sets the offset for the next Write.
func (m *MemTarget) Seek(offset int64, whence int) (int64, error) {
	abs, err := resolveSeek(m.pos, int64(len(m.Buf)), offset, whence)
	if err != nil {
		return m.pos, err
	}
	m.pos = abs
	return abs, nil
}

// Write copies p into Buf at the current offset.
func (m *MemTarget) Write(p []byte) (int, error) {
	if m.pos+int64(len(p)) > int64(len(m.Buf)) {
		return 0, fmt.Errorf("%w: %d bytes at offset %d, size %d", ErrGrow, len(p), m.pos, len(m.Buf))
	}
	n := copy(m.Buf[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

// Size returns len(Buf).
func (m *MemTarget) Size() int64 { return int64(len(m.Buf)) }

// Sync records the call.
func (m *MemTarget) Sync(bool) error {
	m.Syncs++
	return nil
}
