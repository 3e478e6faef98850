// Package search implements exact byte-sequence matching over large buffers.
//
// A Searcher is compiled once per pattern and can then scan any number of
// haystacks. Matching runs in time linear in len(pattern)+len(haystack):
// the prefix table lets the scan resume after a mismatch without ever moving
// backwards in the haystack, and runs of bytes that cannot start a match are
// skipped with bytes.IndexByte.
//
// Enumeration is non-overlapping. After a match at offset o the next search
// starts at o+len(pattern), so pattern "aa" in haystack "aaaa" yields offsets
// 0 and 2 only.
package search

import (
	"bytes"
	"iter"
)

// Searcher finds occurrences of a single fixed pattern.
//
// A Searcher is immutable after Compile and safe for concurrent use.
type Searcher struct {
	pattern []byte
	border  []int // border[i] = length of the longest proper border of pattern[:i+1]
}

// Compile prepares a Searcher for pattern. The pattern is copied.
func Compile(pattern []byte) *Searcher {
	p := make([]byte, len(pattern))
	copy(p, pattern)
	return &Searcher{
		pattern: p,
		border:  borders(p),
	}
}

// Index returns the absolute offset of the first occurrence of the pattern at
// or after start, or -1 when there is none. An empty pattern never matches.
func (s *Searcher) Index(haystack []byte, start int) int {
	m := len(s.pattern)
	if m == 0 || start < 0 || start > len(haystack) || len(haystack)-start < m {
		return -1
	}

	first := s.pattern[0]
	k := 0 // number of pattern bytes currently matched
	for i := start; i < len(haystack); i++ {
		if k == 0 {
			j := bytes.IndexByte(haystack[i:], first)
			if j < 0 {
				return -1
			}
			i += j
			if len(haystack)-i < m {
				return -1
			}
		}
		c := haystack[i]
		for k > 0 && c != s.pattern[k] {
			k = s.border[k-1]
		}
		if c == s.pattern[k] {
			k++
		}
		if k == m {
			return i - m + 1
		}
	}
	return -1
}

// All returns the non-overlapping match offsets of the pattern in haystack, in
// increasing order. The sequence is lazy and restartable: every range over it
// scans from offset 0.
func (s *Searcher) All(haystack []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		cursor := 0
		for {
			off := s.Index(haystack, cursor)
			if off < 0 || !yield(off) {
				return
			}
			cursor = off + len(s.pattern)
		}
	}
}

// Offsets collects All into a slice.
func (s *Searcher) Offsets(haystack []byte) []int {
	var out []int
	for off := range s.All(haystack) {
		out = append(out, off)
	}
	return out
}

// borders computes the Knuth-Morris-Pratt prefix function of p.
func borders(p []byte) []int {
	b := make([]int, len(p))
	k := 0
	for i := 1; i < len(p); i++ {
		for k > 0 && p[i] != p[k] {
			k = b[k-1]
		}
		if p[i] == p[k] {
			k++
		}
		b[i] = k
	}
	return b
}
