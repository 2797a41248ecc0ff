package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/xolan/timelog/internal/config"
)

// ConfigService holds the effective configuration and writes changes made
// from inside the program, such as the theme picked in the TUI.
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// Path returns the path to the config file
func (s *ConfigService) Path() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Init writes the commented sample config. An existing file is never
// overwritten.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetTheme saves name as the TUI theme. The file is re-read first so that
// edits made while the program was running are kept; only the theme changes.
func (s *ConfigService) SetTheme(name string) error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Theme = name

	if err := s.save(cfg); err != nil {
		return err
	}
	s.config.Theme = name
	return nil
}

func (s *ConfigService) save(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := Encode(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Encode returns cfg in TOML format. Empty optional keys are left out.
func Encode(cfg config.Config) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("# timelog configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(fileConfig(cfg)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fileConfig mirrors config.Config with omitempty on the optional keys.
type fileConfig struct {
	WeekStartDay string `toml:"week_start_day"`
	Timezone     string `toml:"timezone"`
	LogFile      string `toml:"log_file,omitempty"`
	Editor       string `toml:"editor,omitempty"`
	Attribution  string `toml:"attribution,omitempty"`
	Theme        string `toml:"theme,omitempty"`
}
