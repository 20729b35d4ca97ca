package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xolan/shifttrack/internal/app"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

// Storage backends
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Config represents the application configuration
type Config struct {
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone is an IANA timezone name or "Local"
	Timezone string `toml:"timezone"`
	// Theme is a bubbletint theme id used by the TUI
	Theme string `toml:"theme"`
	// DefaultProfile is the profile commands act on when --profile is not given
	DefaultProfile string `toml:"default_profile"`

	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects and locates the entry store.
type StorageConfig struct {
	// Backend is one of csv, sqlite, bolt
	Backend string `toml:"backend"`
	// Dir overrides the data directory; empty means the config directory
	Dir string `toml:"dir"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		WeekStartDay: "monday",
		Timezone:     "Local",
		Theme:        "dracula",
		Storage: StorageConfig{
			Backend: BackendCSV,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// GetConfigPath returns the path to the config file, creating the
// application directory if it doesn't exist.
func GetConfigPath() (string, error) {
	dir, err := app.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns DefaultConfig if it does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lowercases enumerated values and fills empty ones with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()

	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	if c.WeekStartDay == "" {
		c.WeekStartDay = def.WeekStartDay
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	c.DefaultProfile = strings.TrimSpace(c.DefaultProfile)

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	c.Storage.Dir = strings.TrimSpace(c.Storage.Dir)

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks every field. Call Normalize first.
func (c Config) Validate() error {
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("week_start_day must be 'monday' or 'sunday', got %q", c.WeekStartDay)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	switch c.Storage.Backend {
	case BackendCSV, BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("storage.backend must be one of csv, sqlite, bolt, got %q", c.Storage.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}

	return nil
}

// Location returns the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// DataDir returns the directory holding the store files.
func (c Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	return app.Dir()
}

// Save writes cfg to path in TOML format.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# " + app.Name + " configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// GenerateSampleConfig returns a commented config file documenting every option.
func GenerateSampleConfig() string {
	return `# ` + app.Name + ` configuration file
# Uncomment and edit the values you want to change.

# Week start day: "monday" or "sunday"
# week_start_day = "monday"

# Timezone: IANA timezone name (e.g., "Europe/London") or "Local"
# timezone = "Local"

# TUI theme (any bubbletint theme id)
# theme = "dracula"

# Profile used when --profile is not given (set by 'login')
# default_profile = ""

[storage]
# Backend: "csv", "sqlite" or "bolt"
# backend = "csv"
# Data directory (defaults to the config directory)
# dir = ""

[log]
# Level: "debug", "info", "warn" or "error"
# level = "warn"
# Format: "text" or "json"
# format = "text"
`
}
