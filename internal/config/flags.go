package config

import "flag"

// parseFlags defines and parses CLI flags. Flags override every other
// source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tempo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for tempo data files")
	fs.StringVar(&cfg.JournalDir, "journal-dir", cfg.JournalDir, "Directory for journal entries")
	fs.StringVar(&cfg.TrendPeriod, "period", cfg.TrendPeriod, "Trend period: daily, weekly, or monthly")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")

	return fs.Parse(args)
}
