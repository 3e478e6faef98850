package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bankpatch/internal/config"
	"github.com/joshuapare/bankpatch/internal/dirty"
	"github.com/joshuapare/bankpatch/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	workDir    string

	// Layout flags, shared by every command
	flagOriginal     string
	flagTarget       string
	flagPairing      string
	flagOriginalDir  string
	flagReplDir      string
	flagOriginalTmpl string
	flagReplTmpl     string
	flagFirstIndex   int
	flagLastIndex    int
	flagDryRun       bool
	flagSync         string
)

var rootCmd = &cobra.Command{
	Use:   "bankpatch",
	Short: "Replace audio assets inside a sound-bank container",
	Long: `bankpatch replaces embedded audio assets in a sound-bank container
(such as WZSound.brsar) without parsing it. Every occurrence of each original
asset is overwritten in a working copy with its replacement, zero-padded to the
original size. Replacements larger than their original are skipped.

With no subcommand, bankpatch runs "patch" using the working-directory layout:

  WZSound.brsar              original container (never modified)
  WZModified/WZSound.brsar   patched copy (created on first run)
  original/                  original assets
  replacement/               replacement assets with the same file names`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	pf.StringVarP(&configPath, "config", "c", "", "INI config file (default: "+config.DefaultFile+" in --dir if present)")
	pf.StringVarP(&workDir, "dir", "C", ".", "Directory relative paths are resolved against")

	pf.StringVar(&flagOriginal, "original", "", "Original container path")
	pf.StringVar(&flagTarget, "target", "", "Patched copy path")
	pf.StringVar(&flagPairing, "pairing", "", `Asset pairing: "name" or "index"`)
	pf.StringVar(&flagOriginalDir, "original-dir", "", "Directory of original assets (name pairing)")
	pf.StringVar(&flagReplDir, "replacement-dir", "", "Directory of replacement assets (name pairing)")
	pf.StringVar(&flagOriginalTmpl, "original-template", "", "Original asset template with {index} (index pairing)")
	pf.StringVar(&flagReplTmpl, "replacement-template", "", "Replacement asset template with {index} (index pairing)")
	pf.IntVar(&flagFirstIndex, "first-index", 0, "First slot (index pairing)")
	pf.IntVar(&flagLastIndex, "last-index", 0, "Last slot (index pairing)")
	pf.BoolVar(&flagDryRun, "dry-run", false, "Search and report without writing")
	pf.StringVar(&flagSync, "sync", dirty.FlushData.String(), "Flush the patched copy after a run: data, full or none")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// initLogging wires the global logger to the output flags.
func initLogging() {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	logger.Init(logger.Options{Enabled: true, Writer: os.Stderr, Level: level, JSON: jsonOut})
}

// loadConfig builds the run configuration: defaults, then the config file,
// then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	path := configPath
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	if path == "" {
		candidate := filepath.Join(workDir, config.DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		logger.Debug("loaded config file", "path", path)
		if !jsonOut {
			printVerbose("Using config: %s\n", path)
		}
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
	if changed("original") {
		cfg.OriginalContainer = flagOriginal
	}
	if changed("target") {
		cfg.TargetContainer = flagTarget
	}
	if changed("pairing") {
		cfg.Pairing = flagPairing
	}
	if changed("original-dir") {
		cfg.OriginalDir = flagOriginalDir
	}
	if changed("replacement-dir") {
		cfg.ReplacementDir = flagReplDir
	}
	if changed("original-template") {
		cfg.OriginalTemplate = flagOriginalTmpl
	}
	if changed("replacement-template") {
		cfg.ReplacementTemplate = flagReplTmpl
	}
	if changed("first-index") {
		cfg.FirstIndex = flagFirstIndex
	}
	if changed("last-index") {
		cfg.LastIndex = flagLastIndex
	}
	if changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if changed("sync") {
		mode, err := dirty.ParseFlushMode(flagSync)
		if err != nil {
			return cfg, err
		}
		cfg.Flush = mode
	}

	cfg = cfg.Resolve(workDir)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("configuration resolved",
		"original", cfg.OriginalContainer,
		"target", cfg.TargetContainer,
		"pairing", cfg.Pairing,
		"dry_run", cfg.DryRun,
		"sync", cfg.Flush.String())
	return cfg, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
