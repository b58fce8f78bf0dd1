package config

import "time"

// Config is the top-level okreads configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	SnackBar SnackBarConfig `mapstructure:"snackbar" yaml:"snackbar"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// SnackBarConfig controls the undo prompt.
type SnackBarConfig struct {
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
}

// CacheConfig locates the offline snapshot.
type CacheConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig selects log level, format and destination.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
	File   string `mapstructure:"file" yaml:"file"`     // empty = stderr for commands, discarded in the TUI
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errMissing("api.base_url")
	}
	if c.API.RateLimit < 0 {
		return errInvalid("api.rate_limit", "must not be negative")
	}
	if c.SnackBar.Duration < 0 {
		return errInvalid("snackbar.duration", "must not be negative")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return errInvalid("log.format", `must be "text" or "json"`)
	}
	return nil
}
