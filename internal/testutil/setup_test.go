package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	cfg := Workspace(t, []byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, ReadFile(t, cfg.OriginalContainer))
	require.NoFileExists(t, cfg.TargetContainer)
	require.Equal(t, filepath.Join(Dir(cfg), "WZModified", "WZSound.brsar"), cfg.TargetContainer)
}

func TestWorkspaceWithoutContainer(t *testing.T) {
	cfg := Workspace(t, nil)
	require.NoFileExists(t, cfg.OriginalContainer)
	require.DirExists(t, Dir(cfg))
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.brwav")
	WriteFile(t, path, []byte("x"))
	require.Equal(t, []byte("x"), ReadFile(t, path))
}
