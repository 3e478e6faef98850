package patch

import (
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/mmfile"
	"github.com/joshuapare/bankpatch/internal/pairs"
	"github.com/joshuapare/bankpatch/internal/writer"
)

// Session owns the two resources of a run: a read-only mapping of the
// original container and a write handle on the patched copy.
type Session struct {
	cfg    config.Config
	view   *mmfile.View
	target *writer.FileTarget
}

// Open maps cfg.OriginalContainer and, unless cfg.DryRun is set, opens
// cfg.TargetContainer for writing. The target must already exist (see
// bootstrap.Prepare), must not be the original file and must have the same
// size.
func Open(cfg config.Config) (*Session, error) {
	view, err := mmfile.Open(cfg.OriginalContainer)
	if err != nil {
		return nil, fmt.Errorf("patch: map original container: %w", err)
	}
	s := &Session{cfg: cfg, view: view}
	if cfg.DryRun {
		return s, nil
	}

	if err := checkDistinct(cfg.OriginalContainer, cfg.TargetContainer); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	target, err := writer.OpenFile(cfg.TargetContainer)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("patch: open target: %w", err), s.Close())
	}
	s.target = target
	if target.Size() != int64(view.Len()) {
		err := fmt.Errorf("%w: %s is %d bytes, %s is %d bytes",
			ErrTargetSize, cfg.TargetContainer, target.Size(), cfg.OriginalContainer, view.Len())
		return nil, multierr.Append(err, s.Close())
	}
	return s, nil
}

// Source returns the mapped original container.
func (s *Session) Source() []byte { return s.view.Bytes() }

// Patcher returns a Patcher over the session's resources. opts.DryRun is
// forced on when the session was opened without a target.
func (s *Session) Patcher(opts *Options) *Patcher {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if s.target == nil {
		o.DryRun = true
		return New(s.view.Bytes(), nil, &o)
	}
	return New(s.view.Bytes(), s.target, &o)
}

// Close releases the target handle and the mapping.
func (s *Session) Close() error {
	var err error
	if s.target != nil {
		err = multierr.Append(err, s.target.Close())
		s.target = nil
	}
	if s.view != nil {
		err = multierr.Append(err, s.view.Close())
	}
	return err
}

// PatchFiles runs a whole patch described by cfg: it enumerates the assets,
// opens the session and applies every pair. Resources are released before
// returning, on success and on failure.
func PatchFiles(cfg config.Config, opts *Options) (report *Report, err error) {
	src, err := pairs.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	s, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(s))

	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.DryRun = o.DryRun || cfg.DryRun
	o.Flush = cfg.Flush
	return s.Patcher(&o).Run(src)
}

// checkDistinct fails when both paths name the same file.
func checkDistinct(original, target string) error {
	oi, err := os.Stat(original)
	if err != nil {
		return fmt.Errorf("patch: stat original container: %w", err)
	}
	ti, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("patch: stat target: %w", err)
	}
	if os.SameFile(oi, ti) {
		return fmt.Errorf("%w: %s and %s are the same file", config.ErrSameFile, original, target)
	}
	return nil
}
