// Package pairs enumerates (original, replacement) asset payloads.
//
// Two strategies exist. ByName pairs files with the same name across an
// original and a replacement directory. ByIndex pairs numbered slots expanded
// from two path templates. Both present the same Source contract, so the
// applier never sees directory or template details.
package pairs

import (
	"fmt"
	"os"

	"github.com/joshuapare/bankpatch/internal/config"
)

// Skip reasons.
const (
	ReasonNotRegular    = "not a regular file"
	ReasonNoReplacement = "no corresponding replacement file"
	ReasonNoOriginal    = "no corresponding original file"
)

// Pair is one asset to patch.
type Pair struct {
	Label       string // Identifies the asset in logs and reports
	Original    []byte // Payload expected verbatim in the container
	Replacement []byte // Payload to write in its place
}

// Skip is a pairing warning: an asset present on only one side.
type Skip struct {
	Label  string
	Reason string
}

// Source enumerates asset pairs.
//
// Each calls fn for every complete pair and skip for every pairing warning,
// in a deterministic order. Payloads are read lazily, one pair at a time. An
// error returned by fn stops enumeration and is returned unchanged; failures
// reading an asset are returned wrapped with its path. skip may be nil.
type Source interface {
	Each(fn func(Pair) error, skip func(Skip)) error
}

// FromConfig returns the Source selected by cfg.Pairing.
func FromConfig(cfg config.Config) (Source, error) {
	switch cfg.Pairing {
	case config.PairByName:
		return ByName{OriginalDir: cfg.OriginalDir, ReplacementDir: cfg.ReplacementDir}, nil
	case config.PairByIndex:
		return ByIndex{
			OriginalTemplate:    cfg.OriginalTemplate,
			ReplacementTemplate: cfg.ReplacementTemplate,
			First:               cfg.FirstIndex,
			Last:                cfg.LastIndex,
		}, nil
	default:
		return nil, fmt.Errorf("pairs: unknown pairing %q", cfg.Pairing)
	}
}

// readPair loads both payloads of a pair.
func readPair(label, origPath, replPath string) (Pair, error) {
	orig, err := os.ReadFile(origPath)
	if err != nil {
		return Pair{}, fmt.Errorf("pairs: read original %s: %w", origPath, err)
	}
	repl, err := os.ReadFile(replPath)
	if err != nil {
		return Pair{}, fmt.Errorf("pairs: read replacement %s: %w", replPath, err)
	}
	return Pair{Label: label, Original: orig, Replacement: repl}, nil
}

func emit(skip func(Skip), s Skip) {
	if skip != nil {
		skip(s)
	}
}
