// Package testutil builds on-disk container workspaces for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/bankpatch/internal/config"
)

// Workspace creates a temporary directory and returns the default layout
// resolved against it. A non-nil container is written to the original
// container path. The target container is not created.
//
// Example:
//
//	cfg := testutil.Workspace(t, []byte("RSAR..."))
//	testutil.WriteFile(t, filepath.Join(cfg.OriginalDir, "a.brwav"), data)
func Workspace(t testing.TB, container []byte) config.Config {
	t.Helper()
	cfg := config.Default().Resolve(t.TempDir())
	if container != nil {
		WriteFile(t, cfg.OriginalContainer, container)
	}
	return cfg
}

// Dir returns the directory a Workspace was resolved against.
func Dir(cfg config.Config) string {
	return filepath.Dir(cfg.OriginalContainer)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}
