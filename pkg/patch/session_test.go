package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bankpatch/internal/bootstrap"
	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/testutil"
)

// workspace lays out the default convention in a temp dir.
func workspace(t *testing.T, container []byte) config.Config {
	t.Helper()
	cfg := testutil.Workspace(t, container)
	_, err := bootstrap.Prepare(cfg, nil)
	require.NoError(t, err)
	return cfg
}

func addAsset(t *testing.T, cfg config.Config, name string, original, replacement []byte) {
	t.Helper()
	if original != nil {
		testutil.WriteFile(t, filepath.Join(cfg.OriginalDir, name), original)
	}
	if replacement != nil {
		testutil.WriteFile(t, filepath.Join(cfg.ReplacementDir, name), replacement)
	}
}

func TestPatchFilesEndToEnd(t *testing.T) {
	cfg := workspace(t, scenario())
	addAsset(t, cfg, "a.brwav", []byte{1, 2, 3}, []byte{7, 7})
	addAsset(t, cfg, "b.brwav", []byte{1, 2}, []byte{1, 2, 3})
	addAsset(t, cfg, "c.brwav", []byte{1, 2, 3}, nil)

	report, err := PatchFiles(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Patched)
	require.Equal(t, 2, report.Skipped)

	got, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	want := make([]byte, 20)
	copy(want[2:], []byte{7, 7, 0})
	copy(want[10:], []byte{7, 7, 0})
	require.Equal(t, want, got)

	orig, err := os.ReadFile(cfg.OriginalContainer)
	require.NoError(t, err)
	require.Equal(t, scenario(), orig, "original container is never written")
}

func TestPatchFilesIsRepeatable(t *testing.T) {
	cfg := workspace(t, scenario())
	addAsset(t, cfg, "a.brwav", []byte{1, 2, 3}, []byte{7, 7})

	_, err := PatchFiles(cfg, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)

	// Searching always happens in the original, so a second run finds the
	// same offsets and writes the same bytes.
	report, err := PatchFiles(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 2, report.Matches)
	second, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPatchFilesDryRun(t *testing.T) {
	cfg := workspace(t, scenario())
	addAsset(t, cfg, "a.brwav", []byte{1, 2, 3}, []byte{7})
	cfg.DryRun = true

	report, err := PatchFiles(cfg, nil)
	require.NoError(t, err)
	require.True(t, report.DryRun)
	require.Equal(t, 2, report.Matches)
	require.Zero(t, report.BytesWritten)

	got, err := os.ReadFile(cfg.TargetContainer)
	require.NoError(t, err)
	require.Equal(t, scenario(), got)
}

func TestPatchFilesIndexPairing(t *testing.T) {
	cfg := workspace(t, scenario())
	cfg.Pairing = config.PairByIndex
	cfg.FirstIndex, cfg.LastIndex = 1, 3
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OriginalDir, "2.brwav"), []byte{1, 2, 3}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ReplacementDir, "2.brwav"), []byte{5}, 0o644))

	report, err := PatchFiles(cfg, nil)
	require.NoError(t, err)
	a, ok := report.Asset("slot 2")
	require.True(t, ok)
	require.Equal(t, []int64{2, 10}, a.Offsets)
}

func TestOpenRequiresTarget(t *testing.T) {
	cfg := config.Default().Resolve(t.TempDir())
	require.NoError(t, os.WriteFile(cfg.OriginalContainer, []byte{1}, 0o644))

	_, err := Open(cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenRejectsSameFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Resolve(dir)
	require.NoError(t, os.WriteFile(cfg.OriginalContainer, []byte{1, 2}, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.TargetContainer), 0o755))
	require.NoError(t, os.Link(cfg.OriginalContainer, cfg.TargetContainer))

	_, err := Open(cfg)
	require.ErrorIs(t, err, config.ErrSameFile)
}

func TestOpenRejectsSizeMismatch(t *testing.T) {
	cfg := workspace(t, []byte{1, 2, 3, 4})
	require.NoError(t, os.WriteFile(cfg.TargetContainer, []byte{1, 2}, 0o644))

	_, err := Open(cfg)
	require.ErrorIs(t, err, ErrTargetSize)
}

func TestSessionDryRunHasNoTarget(t *testing.T) {
	cfg := config.Default().Resolve(t.TempDir())
	require.NoError(t, os.WriteFile(cfg.OriginalContainer, scenario(), 0o644))
	cfg.DryRun = true

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, scenario(), s.Source())

	rep, err := s.Patcher(nil).Apply("a", []byte{1, 2, 3}, []byte{9})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 10}, rep.Offsets)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
