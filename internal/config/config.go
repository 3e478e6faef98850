// Package config holds the explicit run configuration: where the original
// container, the patched copy and the asset inputs live.
//
// Defaults reproduce the fixed working-directory convention of the tool:
//
//	WZSound.brsar              original container (never written)
//	WZModified/WZSound.brsar   patched copy (created from the original once)
//	original/                  original asset payloads
//	replacement/               replacement payloads, same file names
//
// An optional INI file overrides any of these; see Load.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joshuapare/bankpatch/internal/dirty"
)

// Pairing strategies.
const (
	PairByName  = "name"
	PairByIndex = "index"
)

// IndexPlaceholder is replaced by the slot number in index templates.
const IndexPlaceholder = "{index}"

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "bankpatch.ini"

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrSameFile indicates the original container and the target name the
	// same file, either by path or on disk.
	ErrSameFile = errors.New("config: original container and target must differ")
)

// Config is the full set of inputs for one run.
type Config struct {
	// OriginalContainer is searched and never written.
	OriginalContainer string
	// TargetContainer receives the patches. Created from OriginalContainer
	// when missing.
	TargetContainer string

	// Pairing selects how assets are paired: PairByName or PairByIndex.
	Pairing string

	// OriginalDir and ReplacementDir are used by PairByName.
	OriginalDir    string
	ReplacementDir string

	// OriginalTemplate and ReplacementTemplate are used by PairByIndex;
	// IndexPlaceholder is replaced with each slot in FirstIndex..LastIndex.
	OriginalTemplate    string
	ReplacementTemplate string
	FirstIndex          int
	LastIndex           int

	// DryRun searches without writing; the target is not opened.
	DryRun bool
	// Flush selects how the target is synced after a successful run.
	Flush dirty.FlushMode
}

// Default returns the fixed working-directory convention.
func Default() Config {
	return Config{
		OriginalContainer:   "WZSound.brsar",
		TargetContainer:     filepath.Join("WZModified", "WZSound.brsar"),
		Pairing:             PairByName,
		OriginalDir:         "original",
		ReplacementDir:      "replacement",
		OriginalTemplate:    filepath.Join("original", IndexPlaceholder+".brwav"),
		ReplacementTemplate: filepath.Join("replacement", IndexPlaceholder+".brwav"),
		FirstIndex:          1,
		LastIndex:           500,
		Flush:               dirty.FlushData,
	}
}

// Resolve returns a copy of c with relative paths joined onto base.
func (c Config) Resolve(base string) Config {
	if base == "" {
		return c
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.OriginalContainer = join(c.OriginalContainer)
	c.TargetContainer = join(c.TargetContainer)
	c.OriginalDir = join(c.OriginalDir)
	c.ReplacementDir = join(c.ReplacementDir)
	c.OriginalTemplate = join(c.OriginalTemplate)
	c.ReplacementTemplate = join(c.ReplacementTemplate)
	return c
}

// Validate checks that c describes a runnable configuration.
func (c Config) Validate() error {
	if c.OriginalContainer == "" {
		return fmt.Errorf("%w: original container path is empty", ErrInvalid)
	}
	if c.TargetContainer == "" && !c.DryRun {
		return fmt.Errorf("%w: target container path is empty", ErrInvalid)
	}
	if c.TargetContainer != "" && filepath.Clean(c.OriginalContainer) == filepath.Clean(c.TargetContainer) {
		return fmt.Errorf("%w: %s", ErrSameFile, c.OriginalContainer)
	}

	switch c.Pairing {
	case PairByName:
		if c.OriginalDir == "" || c.ReplacementDir == "" {
			return fmt.Errorf("%w: name pairing needs both asset directories", ErrInvalid)
		}
	case PairByIndex:
		for _, tmpl := range []string{c.OriginalTemplate, c.ReplacementTemplate} {
			if !strings.Contains(tmpl, IndexPlaceholder) {
				return fmt.Errorf("%w: template %q has no %s placeholder", ErrInvalid, tmpl, IndexPlaceholder)
			}
		}
		if c.FirstIndex < 0 || c.FirstIndex > c.LastIndex {
			return fmt.Errorf("%w: index range %d..%d", ErrInvalid, c.FirstIndex, c.LastIndex)
		}
	default:
		return fmt.Errorf("%w: unknown pairing %q (want %q or %q)", ErrInvalid, c.Pairing, PairByName, PairByIndex)
	}
	return nil
}
