package config

// Trend period values accepted by the stats commands.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Config holds all tempo settings.
type Config struct {
	// DataDir is where the flat JSON data files live.
	DataDir string `toml:"data_dir"`

	// JournalDir is where journal entries live. Defaults to
	// <DataDir>/Journal when not set explicitly.
	JournalDir string `toml:"journal_dir"`

	// TrendPeriod is the default aggregation period for time stats:
	// daily, weekly, or monthly.
	TrendPeriod string `toml:"trend_period"`

	// Logging
	LogLevel      string `toml:"log_level"`      // debug, info, warn, error
	LogFormat     string `toml:"log_format"`     // text, json, logfmt
	LogTimestamps bool   `toml:"log_timestamps"` // include timestamps in log output
}
