// Package dirty tracks the byte ranges written into a patch target and
// flushes them when a run completes.
//
// Two assets whose original payloads are byte-identical match the same
// offsets. The tracker is how the applier notices that one asset is
// overwriting bytes an earlier asset already claimed.
package dirty

import (
	"fmt"
	"sort"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// FlushMode controls durability at the end of a run.
type FlushMode int

const (
	// FlushData syncs file data once all writes are done.
	FlushData FlushMode = iota

	// FlushNone leaves durability to the OS.
	FlushNone

	// FlushFull syncs with the strongest guarantee the platform offers
	// (F_FULLFSYNC on macOS).
	FlushFull
)

// ParseFlushMode maps "data", "full" or "none" to a FlushMode.
func ParseFlushMode(s string) (FlushMode, error) {
	for _, m := range []FlushMode{FlushData, FlushFull, FlushNone} {
		if s == m.String() {
			return m, nil
		}
	}
	return FlushData, fmt.Errorf("dirty: unknown flush mode %q (want data, full or none)", s)
}

// String implements fmt.Stringer.
func (m FlushMode) String() string {
	switch m {
	case FlushData:
		return "data"
	case FlushNone:
		return "none"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Syncer is the flush side of a patch target.
type Syncer interface {
	Sync(full bool) error
}

// Range is a written byte range (absolute offsets).
type Range struct {
	Off int64
	Len int64
}

// End returns the offset one past the range.
func (r Range) End() int64 { return r.Off + r.Len }

// Tracker accumulates written ranges.
//
// Ranges recorded since the last Seal are pending. Seal folds them into a
// sorted, coalesced claimed set, which is what Overlapping searches. One
// asset's matches never overlap each other, so callers seal once per asset
// and each lookup costs O(log n).
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges  []Range // insertion order
	claimed []Range // coalesced ranges[:sealed]
	sealed  int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ranges: make([]Range, 0, defaultRangeCapacity)}
}

// Add records a write of [off, off+length).
func (t *Tracker) Add(off, length int64) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: off, Len: length})
}

// Seal moves every pending range into the claimed set.
func (t *Tracker) Seal() {
	pending := t.ranges[t.sealed:]
	if len(pending) == 0 {
		return
	}
	t.claimed = merge(t.claimed, sorted(pending))
	t.sealed = len(t.ranges)
}

// Overlapping returns the claimed ranges sharing at least one byte with
// [off, off+length). Pending ranges are not consulted.
func (t *Tracker) Overlapping(off, length int64) []Range {
	end := off + length
	i := sort.Search(len(t.claimed), func(i int) bool {
		return t.claimed[i].End() > off
	})
	var out []Range
	for ; i < len(t.claimed) && t.claimed[i].Off < end; i++ {
		out = append(out, t.claimed[i])
	}
	return out
}

// Coalesced returns every recorded range, sealed or pending, sorted and
// merged where they overlap or touch.
func (t *Tracker) Coalesced() []Range {
	return merge(t.claimed, sorted(t.ranges[t.sealed:]))
}

// Bytes returns the number of distinct bytes covered by the recorded ranges.
func (t *Tracker) Bytes() int64 {
	var n int64
	for _, r := range t.Coalesced() {
		n += r.Len
	}
	return n
}

// Flush syncs s according to mode. Nothing is flushed when no range has been
// recorded.
func (t *Tracker) Flush(s Syncer, mode FlushMode) error {
	if mode == FlushNone || len(t.ranges) == 0 {
		return nil
	}
	return s.Sync(mode == FlushFull)
}

// sorted returns a copy of rs ordered by offset.
func sorted(rs []Range) []Range {
	out := make([]Range, len(rs))
	copy(out, rs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Off < out[j].Off
	})
	return out
}

// merge coalesces two offset-ordered range lists in one pass.
func merge(a, b []Range) []Range {
	out := make([]Range, 0, len(a)+len(b))
	push := func(r Range) {
		if n := len(out); n > 0 && r.Off <= out[n-1].End() {
			if r.End() > out[n-1].End() {
				out[n-1].Len = r.End() - out[n-1].Off
			}
			return
		}
		out = append(out, r)
	}
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j == len(b) || (i < len(a) && a[i].Off <= b[j].Off) {
			push(a[i])
			i++
		} else {
			push(b[j])
			j++
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
