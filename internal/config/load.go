package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/joshuapare/bankpatch/internal/dirty"
)

// Load reads an INI file on top of Default.
//
// Recognized keys:
//
//	[container]
//	original = WZSound.brsar
//	target   = WZModified/WZSound.brsar
//
//	[assets]
//	pairing              = name | index
//	original_dir         = original
//	replacement_dir      = replacement
//	original_template    = original/{index}.brwav
//	replacement_template = replacement/{index}.brwav
//	first_index          = 1
//	last_index           = 500
//
//	[patch]
//	dry_run = false
//	sync    = data | full | none
//
// Relative paths are kept relative; callers apply Resolve. The result is not
// validated, so later layers such as command-line flags can still correct
// it before Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}

	container := f.Section("container")
	setString(container, "original", &cfg.OriginalContainer)
	setString(container, "target", &cfg.TargetContainer)

	assets := f.Section("assets")
	setString(assets, "pairing", &cfg.Pairing)
	setString(assets, "original_dir", &cfg.OriginalDir)
	setString(assets, "replacement_dir", &cfg.ReplacementDir)
	setString(assets, "original_template", &cfg.OriginalTemplate)
	setString(assets, "replacement_template", &cfg.ReplacementTemplate)
	if err := setInt(assets, "first_index", &cfg.FirstIndex); err != nil {
		return cfg, err
	}
	if err := setInt(assets, "last_index", &cfg.LastIndex); err != nil {
		return cfg, err
	}

	patch := f.Section("patch")
	if err := setBool(patch, "dry_run", &cfg.DryRun); err != nil {
		return cfg, err
	}
	if patch.HasKey("sync") {
		mode, err := dirty.ParseFlushMode(patch.Key("sync").String())
		if err != nil {
			return cfg, fmt.Errorf("%w: [patch] sync: %v", ErrInvalid, err)
		}
		cfg.Flush = mode
	}
	return cfg, nil
}

func setString(sec *ini.Section, key string, dst *string) {
	if sec.HasKey(key) {
		*dst = sec.Key(key).String()
	}
}

func setInt(sec *ini.Section, key string, dst *int) error {
	if !sec.HasKey(key) {
		return nil
	}
	v, err := sec.Key(key).Int()
	if err != nil {
		return fmt.Errorf("%w: [%s] %s: %v", ErrInvalid, sec.Name(), key, err)
	}
	*dst = v
	return nil
}

func setBool(sec *ini.Section, key string, dst *bool) error {
	if !sec.HasKey(key) {
		return nil
	}
	v, err := sec.Key(key).Bool()
	if err != nil {
		return fmt.Errorf("%w: [%s] %s: %v", ErrInvalid, sec.Name(), key, err)
	}
	*dst = v
	return nil
}
