package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/xolan/timelog/internal/session"
	"github.com/xolan/timelog/internal/stats"
	"github.com/xolan/timelog/internal/timeutil"
)

// Separator goes between the activity lines and the totals.
const Separator = "-------"

// Prompt is printed before reading a line in the interactive session.
const Prompt = "> "

const promptSuffix = "; type command (:h for help) or entry"

// History hints for the help text of each front end.
const (
	ReadlineHistoryHint = "`^r` - history search (like in bash) through previous activities"
	TUIHistoryHint      = "`↑`/`↓` - browse previous activities, `tab` completes"
)

// RenderHeader returns the title line of a report.
func RenderHeader(mode session.Mode, w timeutil.Window, now time.Time) string {
	current := w.Contains(now)
	last := w.End.AddDate(0, 0, -1)

	if mode == session.ModeWeek {
		weeks := (w.Days() + 6) / 7
		if weeks > 1 {
			return fmt.Sprintf("Work done in the %s (%s):", spanPhrase(weeks, "week", current), dateRange(w.Start, last))
		}
		year, week := w.Start.AddDate(0, 0, 3).ISOWeek()
		label := fmt.Sprintf("%d, week %d (%s)", year, week, dateRange(w.Start, last))
		if current {
			return "Work done this week " + label + ":"
		}
		return "Work done in " + label + ":"
	}

	if days := w.Days(); days > 1 {
		return fmt.Sprintf("Work done in the %s (%s to %s):", spanPhrase(days, "day", current),
			w.Start.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	label := dayLabel(w.Start)
	if current {
		return "Work done today " + label + ":"
	}
	return "Work done on " + label + ":"
}

func spanPhrase(n int, unit string, current bool) string {
	if current {
		return fmt.Sprintf("last %d %s", n, Pluralize(unit, n))
	}
	return fmt.Sprintf("%d %s", n, Pluralize(unit, n))
}

// dayLabel formats a day like "Monday, 2024-03-04 (week 10)".
func dayLabel(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("%s (week %d)", t.Format("Monday, 2006-01-02"), week)
}

// dateRange formats an inclusive range of days, e.g. "March 4-10" or
// "March 25 - April 7".
func dateRange(first, last time.Time) string {
	if first.Month() == last.Month() && first.Year() == last.Year() {
		return fmt.Sprintf("%s %d-%d", first.Format("January"), first.Day(), last.Day())
	}
	return fmt.Sprintf("%s - %s", first.Format("January 2"), last.Format("January 2"))
}

// RenderReport returns the activity lines followed by the totals. With
// showAverage, multi-day reports also show the average work per day.
func RenderReport(r stats.Result, showAverage bool) string {
	var b strings.Builder
	for _, a := range r.Activities {
		b.WriteString(FormatActivity(a))
		b.WriteString("\n")
	}
	b.WriteString(Separator + "\n")
	fmt.Fprintf(&b, "Total work done: %s\n", FormatDuration(r.Work))
	fmt.Fprintf(&b, "Total slacking: %s\n", FormatDuration(r.Slack))
	if showAverage && r.DaysWithEntries > 1 {
		fmt.Fprintf(&b, "Average work per day: %s (%d %s)\n",
			FormatDuration(r.AverageWorkPerDay()), r.DaysWithEntries, Pluralize("day", r.DaysWithEntries))
	}
	return b.String()
}

// RenderGapWarnings returns one line per negative gap found while aggregating.
func RenderGapWarnings(warnings []stats.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Warning: %d %s out of order in this period:\n", len(warnings), Pluralize("entry", len(warnings)))
	for _, w := range warnings {
		b.WriteString("  " + w.String() + "\n")
	}
	return b.String()
}

// RenderPrompt returns the line shown above the input prompt.
func RenderPrompt(sinceLast time.Duration, ok bool) string {
	if !ok {
		return "no entries yet today" + promptSuffix
	}
	return FormatDuration(sinceLast) + " since last entry" + promptSuffix
}

// HelpMarkdown returns the command reference as markdown.
func HelpMarkdown(historyHint string) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("- `:w` - switch to weekly mode (`:w2` for the last 2 weeks)\n")
	b.WriteString("- `:d` - switch to daily mode (`:d7` for the last 7 days)\n")
	b.WriteString("- `:q` - quit\n")
	b.WriteString("- `:h` - show this help\n")
	b.WriteString("- `:e` - open the time log in $EDITOR\n")
	if historyHint != "" {
		b.WriteString("- " + historyHint + "\n")
	}
	b.WriteString("\nAny other input is the description of a task that you just finished.\n")
	b.WriteString("Start it with `**` to count it as slacking, e.g. `** lunch`.\n")
	return b.String()
}

// HelpText renders the help for a terminal of the given width. Falls back to
// the plain markdown if rendering fails.
func HelpText(width int, historyHint string) string {
	content := HelpMarkdown(historyHint)
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}
