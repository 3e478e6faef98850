package pairs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/bankpatch/internal/config"
)

// Default slot range.
const (
	DefaultFirst = 1
	DefaultLast  = 500
)

// ByIndex pairs numbered slots. For each i in First..Last (inclusive) the
// config.IndexPlaceholder in both templates is replaced by i.
//
// A slot missing on both sides is ignored silently; a slot present on only
// one side is reported through skip. A zero First and Last mean the default
// 1..500 range.
type ByIndex struct {
	OriginalTemplate    string
	ReplacementTemplate string
	First               int
	Last                int
}

// Each implements Source.
func (s ByIndex) Each(fn func(Pair) error, skip func(Skip)) error {
	first, last := s.First, s.Last
	if first == 0 && last == 0 {
		first, last = DefaultFirst, DefaultLast
	}

	for i := first; i <= last; i++ {
		label := "slot " + strconv.Itoa(i)
		origPath := expand(s.OriginalTemplate, i)
		replPath := expand(s.ReplacementTemplate, i)

		hasOrig, err := isFile(origPath)
		if err != nil {
			return err
		}
		hasRepl, err := isFile(replPath)
		if err != nil {
			return err
		}

		switch {
		case !hasOrig && !hasRepl:
			continue
		case !hasRepl:
			emit(skip, Skip{Label: label, Reason: ReasonNoReplacement})
			continue
		case !hasOrig:
			emit(skip, Skip{Label: label, Reason: ReasonNoOriginal})
			continue
		}

		pair, err := readPair(label, origPath, replPath)
		if err != nil {
			return err
		}
		if err := fn(pair); err != nil {
			return err
		}
	}
	return nil
}

func expand(tmpl string, i int) string {
	return strings.ReplaceAll(tmpl, config.IndexPlaceholder, strconv.Itoa(i))
}

// isFile reports whether path is an existing regular file. Errors other than
// non-existence are returned.
func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("pairs: stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}
