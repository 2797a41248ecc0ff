package service

import (
	"github.com/xolan/timelog/internal/clock"
	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/session"
	"github.com/xolan/timelog/internal/storage"
)

// Services holds everything a front end needs to run a session
type Services struct {
	Config *ConfigService
	Store  *storage.Store
	Clock  clock.Clock
}

// NewServices loads the config and opens the time log. logFile overrides
// both the config's log_file and the gtimelog default location when set.
func NewServices(logFile string) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	storagePath, err := ResolveStoragePath(logFile, cfg)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(storagePath, configPath, cfg)
}

// ResolveStoragePath picks the log location: the flag, then the config,
// then the gtimelog default.
func ResolveStoragePath(logFile string, cfg config.Config) (string, error) {
	if logFile != "" {
		return logFile, nil
	}
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	return storage.GetStoragePath()
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(storagePath, configPath string, cfg config.Config) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(storagePath, loc)
	if err != nil {
		return nil, err
	}

	return &Services{
		Config: NewConfigService(configPath, cfg),
		Store:  store,
		Clock:  clock.Real{Location: loc},
	}, nil
}

// NewSession starts a session over the store in daily mode.
func (s *Services) NewSession() *session.Session {
	cfg := s.Config.Get()
	return session.New(s.Store, s.Clock, session.Options{
		WeekStartDay: cfg.WeekStartDay,
		Attribution:  cfg.AttributionMode(),
	})
}

// Editor returns the command used to edit the log.
func (s *Services) Editor() string {
	return s.Config.Get().ResolveEditor()
}
