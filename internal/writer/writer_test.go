package writer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemTargetWriteAtOffset(t *testing.T) {
	m := NewMem(make([]byte, 8))

	off, err := m.Seek(3, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(3), off)

	n, err := m.Write([]byte{7, 7})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{0, 0, 0, 7, 7, 0, 0, 0}, m.Buf)
	require.Equal(t, int64(8), m.Size())
}

func TestMemTargetRefusesGrowth(t *testing.T) {
	m := NewMem(make([]byte, 4))
	_, err := m.Seek(2, io.SeekStart)
	require.NoError(t, err)

	n, err := m.Write([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrGrow)
	require.Zero(t, n)
	require.Equal(t, []byte{0, 0, 0, 0}, m.Buf)
}

func TestMemTargetSeekWhence(t *testing.T) {
	m := NewMem(make([]byte, 10))

	off, err := m.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	require.Equal(t, int64(8), off)

	off, err = m.Seek(-3, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(5), off)

	_, err = m.Seek(-1, io.SeekStart)
	require.ErrorIs(t, err, ErrNegativeOffset)

	_, err = m.Seek(0, 42)
	require.Error(t, err)
}

func TestFileTargetPatchesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.brsar")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

	ft, err := OpenFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(16), ft.Size())

	_, err = ft.Seek(10, io.SeekStart)
	require.NoError(t, err)
	_, err = ft.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, ft.Sync(false))
	require.NoError(t, ft.Close())
	require.NoError(t, ft.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := make([]byte, 16)
	copy(want[10:], []byte{1, 2, 3})
	require.Equal(t, want, got)
}

func TestFileTargetRefusesGrowth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.brsar")
	require.NoError(t, os.WriteFile(path, make([]byte, 4), 0o644))

	ft, err := OpenFile(path)
	require.NoError(t, err)
	defer ft.Close()

	_, err = ft.Seek(3, io.SeekStart)
	require.NoError(t, err)
	_, err = ft.Write([]byte{1, 2})
	require.ErrorIs(t, err, ErrGrow)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(4), info.Size())
}

func TestFileTargetMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.brsar"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileTargetClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.brsar")
	require.NoError(t, os.WriteFile(path, make([]byte, 4), 0o644))
	ft, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, ft.Close())

	_, err = ft.Seek(0, io.SeekStart)
	require.ErrorIs(t, err, ErrClosed)
	_, err = ft.Write([]byte{1})
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, ft.Sync(false), ErrClosed)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "WZSound.brsar")
	dst := filepath.Join(dir, "copy.brsar")
	want := []byte("RSAR payload bytes")
	require.NoError(t, os.WriteFile(src, want, 0o640))

	require.NoError(t, CopyFile(dst, src))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, want, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "temp file must not be left behind")
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "dst"), filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(filepath.Join(dir, "dst"))
	require.True(t, os.IsNotExist(statErr))
}
