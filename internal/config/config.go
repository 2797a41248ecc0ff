package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/timelog/internal/osutil"
	"github.com/xolan/timelog/internal/stats"
)

const (
	// AppName is the application name used for config directory
	AppName = "timelog"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultEditor is used when neither the config nor $EDITOR name one
	DefaultEditor = "vi"
)

// Config represents the application configuration
type Config struct {
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone defines the timezone for time operations (IANA timezone name, e.g., "America/New_York")
	Timezone string `toml:"timezone"`
	// LogFile overrides the gtimelog location of the time log
	LogFile string `toml:"log_file"`
	// Editor overrides $EDITOR for the :e command
	Editor string `toml:"editor"`
	// Attribution selects which entry of a pair receives the time between them
	Attribution string `toml:"attribution"`
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
// - week_start_day: "monday" (ISO 8601)
// - timezone: "Local" (use system local timezone)
// - attribution: "opening" (time goes to the entry that started it)
// - log_file, editor, theme: "" (resolved at runtime)
func DefaultConfig() Config {
	return Config{
		WeekStartDay: "monday",
		Timezone:     "Local",
		Attribution:  "opening",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file at path, falling back to the defaults
// when it doesn't exist. Any other problem with the file is an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lowercases enumerated values and trims surrounding whitespace.
// A leading ~/ in log_file is expanded to the home directory.
func (c *Config) Normalize() {
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.Attribution = strings.ToLower(strings.TrimSpace(c.Attribution))
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Editor = strings.TrimSpace(c.Editor)
	c.Theme = strings.TrimSpace(c.Theme)
	c.LogFile = strings.TrimSpace(c.LogFile)

	if strings.HasPrefix(c.LogFile, "~/") {
		if home, err := osutil.Provider.UserHomeDir(); err == nil {
			c.LogFile = filepath.Join(home, c.LogFile[2:])
		}
	}
}

// Validate checks the enumerated and zone values. Call Normalize first.
func (c Config) Validate() error {
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("invalid week_start_day %q: must be 'monday' or 'sunday'", c.WeekStartDay)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := stats.ParseAttribution(c.Attribution); err != nil {
		return err
	}

	return nil
}

// Location returns the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, fmt.Errorf("invalid timezone %q: must be an IANA name or 'Local'", c.Timezone)
	}
	if c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AttributionMode returns the parsed attribution, defaulting to opening.
func (c Config) AttributionMode() stats.Attribution {
	a, _ := stats.ParseAttribution(c.Attribution)
	return a
}

// ResolveEditor returns the editor command: the config value, then $EDITOR,
// then DefaultEditor.
func (c Config) ResolveEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := strings.TrimSpace(osutil.Provider.Getenv("EDITOR")); env != "" {
		return env
	}
	return DefaultEditor
}

// GenerateSampleConfig returns a commented sample configuration file.
func GenerateSampleConfig() string {
	return `# timelog configuration file
# Place this file at ~/.config/timelog/config.toml (Linux) or the equivalent
# user config directory on your platform. Every setting is optional.

# First day of the week for weekly reports: "monday" (default) or "sunday"
# week_start_day = "monday"

# Time zone used to read and write timestamps: "Local" (default) or an IANA
# name such as "America/New_York", "Europe/London" or "Asia/Tokyo"
# timezone = "Local"

# Location of the time log. Defaults to the gtimelog location:
# ~/.gtimelog/timelog.txt if that directory exists, otherwise
# $XDG_DATA_HOME/gtimelog/timelog.txt
# log_file = "~/.local/share/gtimelog/timelog.txt"

# Editor for the :e command. Defaults to $EDITOR, then vi
# editor = "vim"

# Which entry receives the time between two entries:
#   "opening" (default): the earlier entry, the task you were doing
#   "closing": the later entry, as gtimelog counts it
# attribution = "opening"

# Color theme for "timelog tui" (any bubbletint theme ID)
# theme = "dracula"
`
}
