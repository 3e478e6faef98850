package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bankpatch/internal/bootstrap"
	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/logger"
	"github.com/joshuapare/bankpatch/pkg/patch"
)

func init() {
	rootCmd.AddCommand(newPatchCmd())
}

func newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patch",
		Short: "Patch the working copy with every replacement asset",
		Long: `The patch command creates the working copy if it does not exist yet,
then overwrites every occurrence of each original asset with its replacement.

Searching always happens in the unmodified original container, so running
patch again after adding assets is safe.

Example:
  bankpatch patch
  bankpatch patch -C ~/mods/wii-sports
  bankpatch patch --pairing index --first-index 1 --last-index 200
  bankpatch patch --dry-run --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd)
		},
	}
}

func runPatch(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return patchWith(cfg)
}

func patchWith(cfg config.Config) error {
	res, err := bootstrap.Prepare(cfg, logger.L)
	if err != nil {
		return err
	}

	opts := &patch.Options{Logger: logger.L}
	if !jsonOut {
		if res.Created {
			printInfo("Created working copy %s\n", res.Target)
		}
		printVerbose("Original container: %s (%d bytes)\n", cfg.OriginalContainer, res.Size)
		if !cfg.DryRun {
			printVerbose("Target container: %s\n", cfg.TargetContainer)
		}
		opts.OnMatch = func(label string, offset int64) {
			printInfo("  match for %s at %d (0x%X)\n", label, offset, offset)
		}
		opts.OnAsset = func(a patch.AssetReport) {
			printAsset(a, cfg.DryRun)
		}
	}

	report, err := patch.PatchFiles(cfg, opts)
	if report != nil {
		if jsonOut {
			if jsonErr := printJSON(report); jsonErr != nil && err == nil {
				err = jsonErr
			}
		} else {
			printSummary(report)
		}
	}
	if err != nil {
		if cfg.DryRun {
			return err
		}
		logger.Warn("run aborted", "target", cfg.TargetContainer, "error", err)
		return fmt.Errorf("patching aborted, %s may be partially patched (run \"bankpatch restore\" to start over): %w",
			cfg.TargetContainer, err)
	}
	logger.Info("run finished",
		"patched", report.Patched,
		"matches", report.Matches,
		"bytes_written", report.BytesWritten,
		"distinct_bytes", report.DistinctBytes)
	return nil
}

func printAsset(a patch.AssetReport, dryRun bool) {
	switch a.Status {
	case patch.StatusPatched:
		verb := "patched"
		if dryRun {
			verb = "found"
		}
		printInfo("%s: %d match(es) %s\n", a.Label, a.Matches(), verb)
	case patch.StatusNoMatch:
		printInfo("%s: no match in container\n", a.Label)
	case patch.StatusOversize:
		printInfo("%s: replacement is bigger than original (%d > %d bytes), skipped\n",
			a.Label, a.ReplacementLen, a.OriginalLen)
	case patch.StatusEmptyOriginal:
		printInfo("%s: original is empty, skipped\n", a.Label)
	case patch.StatusUnpaired:
		printInfo("%s: %s, skipped\n", a.Label, a.Reason)
	case patch.StatusFailed:
		printInfo("%s: failed after %d match(es)\n", a.Label, a.Matches())
	}
}

func printSummary(r *patch.Report) {
	if r.DryRun {
		printInfo("\nDry run: %d asset(s) found, %d match(es); %d skipped, %d without match\n",
			r.Patched, r.Matches, r.Skipped, r.NoMatch)
		return
	}
	printInfo("\nPatched %d asset(s), %d match(es), %d bytes written; %d skipped, %d without match\n",
		r.Patched, r.Matches, r.BytesWritten, r.Skipped, r.NoMatch)
}
