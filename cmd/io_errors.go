package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/storage"
)

// logFileFlag returns the persistent --file flag.
func logFileFlag(cmd *cobra.Command) string {
	logFile, _ := cmd.Flags().GetString("file")
	return logFile
}

// loadServices opens the config and the log, reporting failures the usual
// way. Returns nil after calling deps.Exit.
func loadServices(cmd *cobra.Command) *service.Services {
	services, err := deps.Services(logFileFlag(cmd))
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the time log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'timelog config' to check the configuration")
		deps.Exit(1)
		return nil
	}
	return services
}

func failAppend(path string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to add entry to %s\n", path)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	if errors.Is(err, storage.ErrMultiline) {
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: An entry is a single line; use separate entries instead")
	}
	deps.Exit(1)
}

func failConfigPath(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
	deps.Exit(1)
}

func failConfigLoad(configPath string, err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr)
	_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
	_, _ = fmt.Fprintln(deps.Stderr, "Valid week_start_day values: monday, sunday")
	_, _ = fmt.Fprintln(deps.Stderr, "Valid attribution values: opening, closing")
	_, _ = fmt.Fprintln(deps.Stderr, "Valid timezone examples: Local, America/New_York, Europe/London, Asia/Tokyo")
	deps.Exit(1)
}

// loadConfig returns the config path and the effective config, or ok=false
// after reporting the failure.
func loadConfig() (string, config.Config, bool) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		failConfigPath(err)
		return "", config.Config{}, false
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		failConfigLoad(configPath, err)
		return "", config.Config{}, false
	}
	return configPath, cfg, true
}
