// Package bootstrap prepares the working tree before a patch run: it checks
// the original container, provisions the patched copy and creates the asset
// directories.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/writer"
)

var (
	// ErrOriginalMissing indicates the original container does not exist.
	ErrOriginalMissing = errors.New("bootstrap: original container not found")

	// ErrNotRegular indicates a container path that is not a regular file.
	ErrNotRegular = errors.New("bootstrap: not a regular file")

	// ErrSizeDiffers indicates a target that cannot be a copy of the original.
	ErrSizeDiffers = errors.New("bootstrap: target size differs from original")
)

// Result describes what Prepare did.
type Result struct {
	Target  string // Path of the patched copy
	Size    int64  // Container size in bytes
	Created bool   // Target was copied from the original during this call
	Dirs    []string
}

// Prepare validates and provisions the files a run needs.
//
// The original container must exist. A missing target is created as a byte
// for byte copy of the original; an existing target must have the same size.
// For name pairing the asset directories are created when missing. In dry-run
// mode only the original container is checked.
func Prepare(cfg config.Config, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	size, err := checkOriginal(cfg.OriginalContainer)
	if err != nil {
		return Result{}, err
	}
	res := Result{Target: cfg.TargetContainer, Size: size}
	if cfg.DryRun {
		return res, nil
	}

	info, err := os.Stat(cfg.TargetContainer)
	switch {
	case os.IsNotExist(err):
		if err := provision(cfg.OriginalContainer, cfg.TargetContainer); err != nil {
			return res, err
		}
		res.Created = true
		log.Info("created working copy", "original", cfg.OriginalContainer, "target", cfg.TargetContainer)
	case err != nil:
		return res, fmt.Errorf("bootstrap: stat target %s: %w", cfg.TargetContainer, err)
	case !info.Mode().IsRegular():
		return res, fmt.Errorf("%w: %s", ErrNotRegular, cfg.TargetContainer)
	case info.Size() != size:
		return res, fmt.Errorf("%w: %s is %d bytes, %s is %d bytes",
			ErrSizeDiffers, cfg.TargetContainer, info.Size(), cfg.OriginalContainer, size)
	}

	if cfg.Pairing == config.PairByName {
		for _, dir := range []string{cfg.OriginalDir, cfg.ReplacementDir} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return res, fmt.Errorf("bootstrap: create directory %s: %w", dir, err)
			}
			res.Dirs = append(res.Dirs, dir)
		}
	}
	return res, nil
}

// Restore overwrites the target with a fresh copy of the original container.
// It is the recovery path for a partially patched target.
func Restore(cfg config.Config, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if _, err := checkOriginal(cfg.OriginalContainer); err != nil {
		return err
	}
	if err := provision(cfg.OriginalContainer, cfg.TargetContainer); err != nil {
		return err
	}
	log.Info("restored working copy", "original", cfg.OriginalContainer, "target", cfg.TargetContainer)
	return nil
}

// checkOriginal returns the size of the original container.
func checkOriginal(path string) (int64, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("%w: %s (place it next to this tool or set [container] original)",
			ErrOriginalMissing, path)
	}
	if err != nil {
		return 0, fmt.Errorf("bootstrap: stat original %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	return info.Size(), nil
}

func provision(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("bootstrap: create directory %s: %w", filepath.Dir(dst), err)
	}
	if err := writer.CopyFile(dst, src); err != nil {
		return fmt.Errorf("bootstrap: copy %s to %s: %w", src, dst, err)
	}
	return nil
}
