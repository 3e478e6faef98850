/*
Package patch overwrites embedded assets inside a sound-bank container
without parsing it.

Each asset is a pair of payloads: the original bytes believed to be present
in the container and a replacement of equal or smaller size. The patcher
searches the unmodified container for every non-overlapping occurrence of
the original payload and writes the replacement, zero-padded to the original
length, at each offset of a separate working copy. The container never
changes size and bytes outside matched ranges are never touched.

# Quick Start

Patch using the default working-directory layout:

	report, err := patch.PatchFiles(config.Default(), nil)

With explicit resources:

	s, err := patch.Open(cfg)
	if err != nil {
	    return err
	}
	defer s.Close()
	report, err := s.Patcher(&patch.Options{Logger: logger.L}).Run(src)

# Failure Semantics

Oversized replacements, assets missing a counterpart and assets with no
match are reported and skipped. A seek or write failure aborts the whole run
at once and is returned as a *PatchError carrying the asset label and
offset. There is no rollback: a target may be left partially patched, and
the only recovery is recopying it from the original container (see
bootstrap.Restore).

# Ambiguous Payloads

Assets are processed independently in enumeration order. Two assets with
byte-identical original payloads match the same offsets, so the later one
overwrites the earlier one's writes. The patcher logs a warning when a write
lands on bytes another asset already wrote but does not prevent it.
*/
package patch
