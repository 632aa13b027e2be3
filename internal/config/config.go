package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration for timetrack. It is loaded once at
// startup and passed explicitly into the layers that need it; there is no
// global lookup at runtime.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default location
	// under the user's home directory, resolved by the caller.
	DBPath string
	// UserID scopes every timer and entry operation. All records created by
	// this process belong to this user.
	UserID string
	// TablePrefix is prepended to every table name, allowing the schema to
	// coexist with other tables in a shared database.
	TablePrefix string
	// Currency is the display currency for rates and amounts.
	Currency string
	// DefaultHourlyRate is applied to new projects created without a rate.
	DefaultHourlyRate float64
	// LogUseCases enables structured logging of service use-case events
	// to stderr.
	LogUseCases bool
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		TablePrefix:       "tt_",
		Currency:          "CHF",
		DefaultHourlyRate: 150.00,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMETRACK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMETRACK_USER"); v != "" {
		cfg.UserID = v
	} else if v := os.Getenv("USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("TIMETRACK_TABLE_PREFIX"); v != "" {
		cfg.TablePrefix = v
	}
	if v := os.Getenv("TIMETRACK_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("TIMETRACK_DEFAULT_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.DefaultHourlyRate = f
		}
	}
	if v := os.Getenv("TIMETRACK_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg
}
