package config

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tempo/tempo.toml or OS-specific config dir)
// 3. Project config file (tempo.toml or .tempo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalize(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalize expands paths, derives dependent values, and validates.
func finalize(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.JournalDir = expandPath(cfg.JournalDir)

	if cfg.JournalDir == "" {
		cfg.JournalDir = filepath.Join(cfg.DataDir, "Journal")
	}

	switch cfg.TrendPeriod {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return fmt.Errorf("invalid trend_period %q: must be daily, weekly, or monthly", cfg.TrendPeriod)
	}

	return nil
}
