package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/filter"
	"github.com/xolan/timelog/internal/session"
	"github.com/xolan/timelog/internal/stats"
	"github.com/xolan/timelog/internal/timeutil"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a daily or weekly report and exit",
	Long: `Print the same report the interactive session shows, then exit.

Examples:

  timelog report                        Today
  timelog report --span 7               The last 7 days
  timelog report --week                 This week
  timelog report --week --span 4        The last 4 weeks
  timelog report --date yesterday       Yesterday
  timelog report --week --date 2024-03-06
                                        The week containing March 6, 2024
  timelog report --attribution closing  Credit time the way gtimelog does
  timelog report -w --match gtimelog    Only activities mentioning gtimelog

Dates are YYYY-MM-DD, DD/MM/YYYY, a weekday name, 'today' or 'yesterday'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolP("week", "w", false, "Report by week instead of by day")
	reportCmd.Flags().IntP("span", "n", 1, "Number of days or weeks to include")
	reportCmd.Flags().StringP("date", "d", "", "Report on the day or week containing this date")
	reportCmd.Flags().String("attribution", "", "Override the configured attribution: opening or closing")
	reportCmd.Flags().StringP("match", "m", "", "Only show activities containing this text")

	_ = reportCmd.RegisterFlagCompletionFunc("attribution", completeAttribution)
	_ = reportCmd.RegisterFlagCompletionFunc("date", completeDate)
}

func completeAttribution(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"opening", "closing"}, cobra.ShellCompDirectiveNoFileComp
}

func completeDate(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"today", "yesterday"}, cobra.ShellCompDirectiveNoFileComp
}

// runReport handles the report command logic
func runReport(cmd *cobra.Command) {
	week, _ := cmd.Flags().GetBool("week")
	span, _ := cmd.Flags().GetInt("span")
	date, _ := cmd.Flags().GetString("date")
	attribution, _ := cmd.Flags().GetString("attribution")
	match, _ := cmd.Flags().GetString("match")

	if span < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --span %d. Must be at least 1\n", span)
		deps.Exit(1)
		return
	}

	services := loadServices(cmd)
	if services == nil {
		return
	}
	cfg := services.Config.Get()

	mode := cfg.AttributionMode()
	if attribution != "" {
		parsed, err := stats.ParseAttribution(strings.ToLower(attribution))
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid --attribution value")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		mode = parsed
	}

	now := services.Clock.Now()
	anchor, err := parseAnchor(date, now)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid --date value")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM-DD, DD/MM/YYYY, a weekday name, 'today' or 'yesterday'")
		deps.Exit(1)
		return
	}

	sess := session.New(services.Store, services.Clock, session.Options{
		WeekStartDay: cfg.WeekStartDay,
		Attribution:  mode,
	})
	state := session.State{Mode: session.ModeDay, Span: span, Anchor: anchor}
	if week {
		state.Mode = session.ModeWeek
	}
	sess.SetState(state)

	result := filter.NewFilter(match).Apply(sess.Report())
	_, _ = fmt.Fprintln(deps.Stdout, cli.RenderHeader(state.Mode, result.Window, now))
	_, _ = fmt.Fprint(deps.Stdout, cli.RenderReport(result, span > 1))
	if w := cli.RenderGapWarnings(result.Warnings); w != "" {
		_, _ = fmt.Fprint(deps.Stderr, w)
	}
}

// parseAnchor converts --date into the session anchor. The zero time means
// "now".
func parseAnchor(date string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "", "today":
		return time.Time{}, nil
	}
	return timeutil.ParseDay(date, now)
}
