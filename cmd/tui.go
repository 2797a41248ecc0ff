package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the full-screen terminal interface",
	Long: `Launch the full-screen interface for timelog.

It runs the same session as the plain prompt: the report fills the screen,
the command line sits below it, and the time since the last entry updates
every minute. Commands (:d, :w, :e, :h, :q) work the same way.

Keyboard shortcuts:
  - Enter: add the entry or run the command
  - Up/Down: browse previous activities
  - Tab: complete a previous activity
  - PgUp/PgDn: scroll the report
  - Ctrl+E: edit the log
  - Ctrl+T: next color theme (saved to the config)
  - F1: help
  - Ctrl+C: quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch the full-screen terminal interface")
}

// runTUI initializes and runs the TUI application
func runTUI(cmd *cobra.Command) {
	services := loadServices(cmd)
	if services == nil {
		return
	}

	if err := tui.Run(services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to run TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd)
		return true
	}
	return false
}
