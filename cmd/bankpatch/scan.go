package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List where each original asset occurs without writing anything",
		Long: `The scan command searches the original container for every paired asset
and reports the offsets that patch would write. The working copy is neither
created nor opened, and asset directories that do not exist yet are treated
as empty.

Example:
  bankpatch scan
  bankpatch scan -v
  bankpatch scan --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.DryRun = true
			return patchWith(cfg)
		},
	}
}
