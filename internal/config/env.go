package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TEMPO_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TEMPO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TEMPO_JOURNAL_DIR"); v != "" {
		cfg.JournalDir = v
	}
	if v := os.Getenv("TEMPO_TREND_PERIOD"); v != "" {
		cfg.TrendPeriod = v
	}
	if v := os.Getenv("TEMPO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TEMPO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TEMPO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

// boolFromString interprets common truthy strings.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
