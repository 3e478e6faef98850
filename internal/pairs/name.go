package pairs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ByName pairs files with identical names in OriginalDir and ReplacementDir.
//
// Originals are visited in lexical order. Names are compared in Unicode NFC
// so that a name stored decomposed on one side (as some filesystems and
// archivers do) still pairs with its composed twin. A directory that does
// not exist yet is treated as empty.
type ByName struct {
	OriginalDir    string
	ReplacementDir string
}

// Each implements Source.
func (s ByName) Each(fn func(Pair) error, skip func(Skip)) error {
	entries, err := readDir(s.OriginalDir)
	if err != nil {
		return fmt.Errorf("pairs: read original directory: %w", err)
	}
	replacements, err := s.replacements()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			emit(skip, Skip{Label: name, Reason: ReasonNotRegular})
			continue
		}
		replName, ok := replacements[norm.NFC.String(name)]
		if !ok {
			emit(skip, Skip{Label: name, Reason: ReasonNoReplacement})
			continue
		}

		pair, err := readPair(
			name,
			filepath.Join(s.OriginalDir, name),
			filepath.Join(s.ReplacementDir, replName),
		)
		if err != nil {
			return err
		}
		if err := fn(pair); err != nil {
			return err
		}
	}
	return nil
}

// replacements maps NFC file names to on-disk names of regular files in
// ReplacementDir.
func (s ByName) replacements() (map[string]string, error) {
	entries, err := readDir(s.ReplacementDir)
	if err != nil {
		return nil, fmt.Errorf("pairs: read replacement directory: %w", err)
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		key := norm.NFC.String(name)
		// An exact on-disk match wins over a normalized one.
		if prev, ok := out[key]; ok && prev == key {
			continue
		}
		out[key] = name
	}
	return out, nil
}

// readDir lists dir, reporting a missing directory as empty.
func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}
