package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/tui/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for timelog.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, timelog works without any configuration file. All settings have defaults:
  - week_start_day: monday
  - timezone: Local (system timezone)
  - attribution: opening
  - log_file: the gtimelog location
  - editor: $EDITOR, then vi

Examples:

  timelog config                   Show all current settings
  timelog config --init            Write a commented sample config file
  timelog config --themes          List the color themes for 'timelog tui'

Configuration file location:
  ~/.config/timelog/config.toml          Linux
  ~/Library/Application Support/timelog/config.toml   macOS
  %APPDATA%\timelog\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		themesFlag, _ := cmd.Flags().GetBool("themes")
		switch {
		case initFlag:
			initConfig()
		case themesFlag:
			listThemes()
		default:
			showConfig(logFileFlag(cmd))
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Create a sample config file")
	configCmd.Flags().Bool("themes", false, "List available TUI themes")
}

// showConfig displays the current effective configuration
func showConfig(logFile string) {
	configPath, cfg, ok := loadConfig()
	if !ok {
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for timelog")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Week Start Day:  %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:        %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "Attribution:     %s\n", cfg.AttributionMode())

	logPath, err := service.ResolveStoragePath(logFile, cfg)
	switch {
	case err != nil:
		_, _ = fmt.Fprintf(deps.Stdout, "Log File:        (unknown: %v)\n", err)
	case logFile == "" && cfg.LogFile == "":
		_, _ = fmt.Fprintf(deps.Stdout, "Log File:        %s (gtimelog default)\n", logPath)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Log File:        %s\n", logPath)
	}

	if cfg.Editor == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Editor:          %s (from environment)\n", cfg.ResolveEditor())
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Editor:          %s\n", cfg.Editor)
	}

	switch {
	case cfg.Theme == "":
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s (default)\n", ui.DefaultTheme)
	case !ui.KnownTheme(cfg.Theme):
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s (unknown, using %s)\n", cfg.Theme, ui.DefaultTheme)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	}

	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'timelog config --init' to create a config file with all options.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file if none exists yet
func initConfig() {
	configPath, err := config.GetConfigPath()
	if err != nil {
		failConfigPath(err)
		return
	}

	svc := service.NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created %s\n", configPath)
}

// listThemes prints the theme IDs accepted by the 'theme' setting
func listThemes() {
	tp := ui.NewThemeProvider("")
	for _, id := range tp.Themes() {
		marker := "  "
		if id == ui.DefaultTheme {
			marker = "* "
		}
		_, _ = fmt.Fprintln(deps.Stdout, marker+id)
	}
}
