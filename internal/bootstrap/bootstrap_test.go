package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/testutil"
)

func TestPrepareCreatesCopyAndDirs(t *testing.T) {
	container := []byte("RSAR\x00\x00\x01\x02\x03")
	cfg := testutil.Workspace(t, container)

	res, err := Prepare(cfg, nil)
	require.NoError(t, err)
	require.True(t, res.Created)
	require.Equal(t, int64(len(container)), res.Size)
	require.Equal(t, cfg.TargetContainer, res.Target)
	require.Equal(t, []string{cfg.OriginalDir, cfg.ReplacementDir}, res.Dirs)

	got, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	require.Equal(t, container, got)
	require.DirExists(t, cfg.OriginalDir)
	require.DirExists(t, cfg.ReplacementDir)
}

func TestPrepareKeepsExistingTarget(t *testing.T) {
	cfg := testutil.Workspace(t, []byte{0, 0, 0, 0})
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.TargetContainer), 0o755))
	require.NoError(t, os.WriteFile(cfg.TargetContainer, []byte{7, 7, 0, 0}, 0o644))

	res, err := Prepare(cfg, nil)
	require.NoError(t, err)
	require.False(t, res.Created)

	got, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 7, 0, 0}, got, "earlier patches must survive")
}

func TestPrepareMissingOriginal(t *testing.T) {
	cfg := testutil.Workspace(t, nil)
	_, err := Prepare(cfg, nil)
	require.ErrorIs(t, err, ErrOriginalMissing)
	require.NoFileExists(t, cfg.TargetContainer)
}

func TestPrepareOriginalIsDirectory(t *testing.T) {
	cfg := testutil.Workspace(t, nil)
	require.NoError(t, os.Mkdir(cfg.OriginalContainer, 0o755))
	_, err := Prepare(cfg, nil)
	require.ErrorIs(t, err, ErrNotRegular)
}

func TestPrepareSizeMismatch(t *testing.T) {
	cfg := testutil.Workspace(t, []byte{0, 0, 0, 0})
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.TargetContainer), 0o755))
	require.NoError(t, os.WriteFile(cfg.TargetContainer, []byte{0, 0}, 0o644))

	_, err := Prepare(cfg, nil)
	require.ErrorIs(t, err, ErrSizeDiffers)
}

func TestPrepareDryRunTouchesNothing(t *testing.T) {
	cfg := testutil.Workspace(t, []byte{1, 2, 3})
	cfg.DryRun = true

	res, err := Prepare(cfg, nil)
	require.NoError(t, err)
	require.False(t, res.Created)
	require.NoFileExists(t, cfg.TargetContainer)
	require.NoDirExists(t, cfg.OriginalDir)
}

func TestPrepareIndexPairingSkipsDirs(t *testing.T) {
	cfg := testutil.Workspace(t, []byte{1})
	cfg.Pairing = config.PairByIndex

	res, err := Prepare(cfg, nil)
	require.NoError(t, err)
	require.Empty(t, res.Dirs)
	require.NoDirExists(t, cfg.OriginalDir)
}

func TestRestore(t *testing.T) {
	cfg := testutil.Workspace(t, []byte{1, 2, 3})
	_, err := Prepare(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.TargetContainer, []byte{9, 9, 9}, 0o644))

	require.NoError(t, Restore(cfg, nil))
	got, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestRestoreMissingOriginal(t *testing.T) {
	cfg := testutil.Workspace(t, nil)
	require.ErrorIs(t, Restore(cfg, nil), ErrOriginalMissing)
}
