package logger

import (
	"os"
	"strconv"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig logs INFO and above as text to stderr
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/raysight.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// Merge fills the zero-valued fields of c from defaults. Booleans are taken
// from c as-is since false is a meaningful setting.
func (c Config) Merge(defaults Config) Config {
	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.ConsoleFormat == "" {
		c.ConsoleFormat = defaults.ConsoleFormat
	}
	if c.FilePath == "" {
		c.FilePath = defaults.FilePath
	}
	if c.FileFormat == "" {
		c.FileFormat = defaults.FileFormat
	}
	if c.FileMaxSizeMB <= 0 {
		c.FileMaxSizeMB = defaults.FileMaxSizeMB
	}
	if c.FileMaxBackups <= 0 {
		c.FileMaxBackups = defaults.FileMaxBackups
	}
	if c.FileMaxAgeDays <= 0 {
		c.FileMaxAgeDays = defaults.FileMaxAgeDays
	}
	return c
}

// ApplyEnv overrides c from LOG_LEVEL, LOG_CONSOLE_FORMAT, LOG_FILE_ENABLED
// and LOG_FILE_PATH.
func (c Config) ApplyEnv() Config {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Level = level
	}

	if format := os.Getenv("LOG_CONSOLE_FORMAT"); format != "" {
		c.ConsoleFormat = format
	}

	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			c.FileEnabled = enabled
		}
	}

	if path := os.Getenv("LOG_FILE_PATH"); path != "" {
		c.FilePath = path
	}

	return c
}
