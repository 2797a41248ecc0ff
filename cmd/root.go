package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/repl"
	"github.com/xolan/timelog/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "timelog",
	Short: "Log what you just finished, see where the day went",
	Long: `timelog is an interactive time log compatible with gtimelog.

Run it without arguments and type what you just finished after each task.
The time since the previous entry is credited to it, and a daily or weekly
report is shown after every entry.

Usage:
  timelog                          Start the interactive session
  timelog add <description>        Log a finished task without the session
  timelog report [--week]          Print a report and exit
  timelog edit                     Open the time log in your editor
  timelog validate                 Check the time log for malformed lines
  timelog tui                      Start the full-screen interface

Inside the session:
  :d, :d3    daily report, last 3 days
  :w, :w2    weekly report, last 2 weeks
  :e         edit the log      :h  help      :q  quit

Start a description with ** to count it as slacking, e.g. "** lunch".
Entries go to the gtimelog file (~/.local/share/gtimelog/timelog.txt
or ~/.gtimelog/timelog.txt), so both programs can share one log.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		runInteractive(cmd)
	},
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Log a finished task",
	Long: `Append an entry stamped with the current minute to the time log.

The arguments are joined with spaces, so quoting is optional:
  timelog add fixed the login bug
  timelog add '** coffee'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addEntry(cmd, args)
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the time log in your editor",
	Long: `Open the time log in the editor named by the config file or $EDITOR.

A backup of the log is written to <log>.bak.1 before the editor starts.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		editLog(cmd)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check time log health",
	Long:  `Validate the time log and report malformed and out-of-order lines, along with the available backups.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Time log to use instead of the configured one")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timelog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runInteractive runs the read-eval-print loop on the terminal.
func runInteractive(cmd *cobra.Command) {
	services := loadServices(cmd)
	if services == nil {
		return
	}
	warnMalformedLines(services.Store)

	input, err := deps.LineInput()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Line editing unavailable, reading plain input: %v\n", err)
		input = repl.NewBasicLineInput(deps.Stdin, deps.Stdout)
	}
	defer func() { _ = input.Close() }()

	r := repl.New(services.NewSession(), input, deps.Stdout, deps.Stderr, repl.Options{
		Editor:      services.Editor(),
		ClearScreen: repl.Interactive(input),
		RunEditor:   deps.RunEditor,
	})
	if err := r.Run(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Interactive session failed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

// warnMalformedLines reports lines of the log that were skipped or are out
// of order.
func warnMalformedLines(store *storage.Store) {
	warnings := store.Warnings()
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintf(deps.Stderr, "Warning: %d %s in %s could not be used as written:\n",
		len(warnings), cli.Pluralize("line", len(warnings)), store.Path())
	for _, w := range warnings {
		_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(w))
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Fix them with 'timelog edit'")
}

// addEntry appends one entry for the current minute
func addEntry(cmd *cobra.Command, args []string) {
	services := loadServices(cmd)
	if services == nil {
		return
	}

	e := entry.New(services.Clock.Now(), strings.TrimSpace(strings.Join(args, " ")))
	if err := services.Store.Append(e); err != nil {
		failAppend(services.Store.Path(), err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", e.String())
}

// editLog opens the log in the configured editor and reports problems
// found in the edited file.
func editLog(cmd *cobra.Command) {
	services := loadServices(cmd)
	if services == nil {
		return
	}

	editor := services.Editor()
	c, err := cli.EditorCommand(editor, services.Store.Path())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to prepare the editor")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := deps.RunEditor(c); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to run %s on %s\n", editor, services.Store.Path())
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set 'editor' in the config file or $EDITOR")
		deps.Exit(1)
		return
	}

	if err := services.Store.Reload(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the edited log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	warnMalformedLines(services.Store)
}

// validateStorage checks the log file health and reports status
func validateStorage(cmd *cobra.Command) {
	services := loadServices(cmd)
	if services == nil {
		return
	}
	storagePath := services.Store.Path()

	health, err := storage.ValidateStorage(storagePath, services.Store.Location())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Time log: %s\n", storagePath)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:       %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Blank lines:       %d\n", health.BlankLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid entries:     %d\n", health.ValidEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Malformed lines:   %d\n", health.Malformed)
	_, _ = fmt.Fprintf(deps.Stdout, "Out of order:      %d\n", health.OutOfOrder)

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Problem lines:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	if backups := storage.ListBackups(storagePath); len(backups) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Backups (most recent first):")
		for _, b := range backups {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", b.Number, b.Path)
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Time log is healthy")
	} else {
		problems := health.Malformed + health.OutOfOrder
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Time log has %d problem %s\n", problems, cli.Pluralize("line", problems))
	}
}
