package patch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/bankpatch/internal/dirty"
	"github.com/joshuapare/bankpatch/internal/pairs"
	"github.com/joshuapare/bankpatch/internal/payload"
	"github.com/joshuapare/bankpatch/internal/search"
	"github.com/joshuapare/bankpatch/internal/writer"
)

// Options controls a Patcher.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// DryRun searches and reports offsets without writing. The target may be nil.
	DryRun bool

	// Flush is applied to the target after a successful Run.
	Flush dirty.FlushMode

	// OnMatch is called for every occurrence, after it has been written.
	OnMatch func(label string, offset int64)

	// OnAsset is called once per asset, including skipped ones.
	OnAsset func(AssetReport)
}

// Patcher applies asset pairs to a target.
//
// source is the unmodified container and is only read. Writes go exclusively
// to target, which must be a different resource. A Patcher is not safe for
// concurrent use.
type Patcher struct {
	source  []byte
	target  writer.Target
	opts    Options
	log     *slog.Logger
	tracker *dirty.Tracker
}

// New returns a Patcher searching source and writing into target.
func New(source []byte, target writer.Target, opts *Options) *Patcher {
	p := &Patcher{
		source:  source,
		target:  target,
		tracker: dirty.NewTracker(),
	}
	if opts != nil {
		p.opts = *opts
	}
	p.log = p.opts.Logger
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	return p
}

// Apply patches every non-overlapping occurrence of original with
// replacement, zero-padded to len(original).
//
// Oversized replacements, checked first, and empty originals are skipped with
// a nil error and no write. A seek or write failure stops immediately and returns a
// *PatchError; the returned report then lists the offsets written before the
// failure.
func (p *Patcher) Apply(label string, original, replacement []byte) (AssetReport, error) {
	rep := AssetReport{
		Label:          label,
		OriginalLen:    len(original),
		ReplacementLen: len(replacement),
	}

	normalized, err := payload.Normalize(label, len(original), replacement)
	if err != nil {
		if errors.Is(err, payload.ErrSizeMismatch) {
			rep.Status = StatusOversize
			rep.Reason = err.Error()
			p.log.Warn("replacement is bigger than original, ignoring",
				"asset", label,
				"original_len", len(original),
				"replacement_len", len(replacement))
			return rep, nil
		}
		return rep, err
	}
	if len(original) == 0 {
		rep.Status = StatusEmptyOriginal
		rep.Reason = "original payload is empty"
		p.log.Warn("original payload is empty, ignoring", "asset", label)
		return rep, nil
	}
	if !p.opts.DryRun && p.target == nil {
		rep.Status = StatusFailed
		return rep, errors.New("patch: no target to write to")
	}

	p.log.Info("starting replacement", "asset", label, "len", len(original))
	defer p.tracker.Seal()
	s := search.Compile(original)
	for off := range s.All(p.source) {
		offset := int64(off)
		p.log.Debug("found match", "asset", label, "offset", offset)

		if !p.opts.DryRun {
			if err := p.write(label, offset, normalized); err != nil {
				rep.Status = StatusFailed
				rep.Reason = err.Error()
				return rep, err
			}
			p.log.Debug("match written", "asset", label, "offset", offset)
		}
		rep.Offsets = append(rep.Offsets, offset)
		if p.opts.OnMatch != nil {
			p.opts.OnMatch(label, offset)
		}
	}

	if len(rep.Offsets) == 0 {
		rep.Status = StatusNoMatch
		p.log.Warn("no match in container", "asset", label)
		return rep, nil
	}
	rep.Status = StatusPatched
	p.log.Info("asset done", "asset", label, "matches", len(rep.Offsets))
	return rep, nil
}

// write overwrites exactly [offset, offset+len(data)) of the target.
func (p *Patcher) write(label string, offset int64, data []byte) error {
	length := int64(len(data))
	for _, prev := range p.tracker.Overlapping(offset, length) {
		p.log.Warn("overwriting bytes patched by an earlier asset",
			"asset", label,
			"offset", offset,
			"claimed_offset", prev.Off,
			"claimed_end", prev.End())
	}

	if _, err := p.target.Seek(offset, io.SeekStart); err != nil {
		return &PatchError{Label: label, Op: "seek", Offset: offset, Err: err}
	}
	n, err := p.target.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &PatchError{Label: label, Op: "write", Offset: offset, Err: err}
	}
	p.tracker.Add(offset, length)
	return nil
}

// Run applies every pair src enumerates, strictly one at a time in order.
//
// Pairing warnings are recorded as StatusUnpaired. The first fatal error
// stops the run; the partial report is returned along with it and earlier
// writes stay in place. After a successful run the target is flushed
// according to Options.Flush.
func (p *Patcher) Run(src pairs.Source) (*Report, error) {
	report := &Report{DryRun: p.opts.DryRun}

	err := src.Each(func(pair pairs.Pair) error {
		a, err := p.Apply(pair.Label, pair.Original, pair.Replacement)
		p.record(report, a)
		return err
	}, func(s pairs.Skip) {
		p.log.Warn("skipping asset", "asset", s.Label, "reason", s.Reason)
		p.record(report, AssetReport{Label: s.Label, Status: StatusUnpaired, Reason: s.Reason})
	})
	report.DistinctBytes = p.tracker.Bytes()
	if err != nil {
		return report, err
	}

	if !p.opts.DryRun && p.target != nil {
		if err := p.tracker.Flush(p.target, p.opts.Flush); err != nil {
			return report, fmt.Errorf("patch: flush target: %w", err)
		}
	}
	return report, nil
}

func (p *Patcher) record(r *Report, a AssetReport) {
	r.add(a)
	if p.opts.OnAsset != nil {
		p.opts.OnAsset(a)
	}
}
