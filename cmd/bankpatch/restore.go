package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/bankpatch/internal/bootstrap"
	"github.com/joshuapare/bankpatch/internal/logger"
)

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Recreate the working copy from the original container",
		Long: `The restore command overwrites the working copy with a fresh copy of the
original container, discarding every patch. Use it after an aborted run left
the working copy partially patched.

Example:
  bankpatch restore`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := bootstrap.Restore(cfg, logger.L); err != nil {
				return err
			}
			printInfo("Restored %s from %s\n", cfg.TargetContainer, cfg.OriginalContainer)
			return nil
		},
	}
}
