// Package stats turns a sequence of log entries into per-activity durations
// for a reporting window.
//
// An entry only marks the moment something was finished; time is the gap
// between consecutive entries of the same day. The gap is accounted to one
// of the two entries of the pair, chosen by Attribution.
package stats

import (
	"fmt"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/timeutil"
)

// Attribution selects which entry of a consecutive pair receives the gap.
type Attribution int

const (
	// AttributeOpening credits the gap to the earlier entry of the pair.
	AttributeOpening Attribution = iota
	// AttributeClosing credits the gap to the later entry, as gtimelog does.
	AttributeClosing
)

// ParseAttribution converts a config value into an Attribution.
func ParseAttribution(s string) (Attribution, error) {
	switch s {
	case "", "opening":
		return AttributeOpening, nil
	case "closing":
		return AttributeClosing, nil
	default:
		return AttributeOpening, fmt.Errorf("invalid attribution %q: must be 'opening' or 'closing'", s)
	}
}

// String returns the config spelling of the attribution.
func (a Attribution) String() string {
	if a == AttributeClosing {
		return "closing"
	}
	return "opening"
}

// Options tunes the aggregation.
type Options struct {
	Attribution Attribution
}

// ActivityTotal is the accumulated duration of one activity bucket.
type ActivityTotal struct {
	Activity entry.Activity
	Duration time.Duration
}

// DisplayName returns the bucket name as shown to the user. Slack buckets
// keep their marker so they stand out from work with the same name.
func (a ActivityTotal) DisplayName() string {
	if !a.Activity.Slack {
		return a.Activity.Name
	}
	if a.Activity.Name == "" {
		return entry.SlackMarker
	}
	return entry.SlackMarker + " " + a.Activity.Name
}

// Warning reports a pair of entries whose gap was negative and therefore
// counted as zero.
type Warning struct {
	Previous entry.Entry
	Entry    entry.Entry
	Gap      time.Duration
}

// String describes the warning for the user.
func (w Warning) String() string {
	return fmt.Sprintf("entry %q goes back in time by %s; counted as zero",
		w.Entry.String(), (-w.Gap).String())
}

// Result is the aggregation of one window.
type Result struct {
	Window timeutil.Window
	// Entries are the entries inside the window, in log order.
	Entries []entry.Entry
	// Activities in the order they first received time.
	Activities []ActivityTotal
	Work       time.Duration
	Slack      time.Duration
	// DaysWithEntries counts the distinct calendar days with at least one entry.
	DaysWithEntries int
	// Open is set when the window's last entry is the last entry of the log;
	// SinceLast then holds the time elapsed since it. Neither counts towards
	// the totals.
	Open      bool
	SinceLast time.Duration
	Warnings  []Warning
}

// AverageWorkPerDay returns the work time divided by the number of days
// with entries, or zero when there are none.
func (r Result) AverageWorkPerDay() time.Duration {
	if r.DaysWithEntries == 0 {
		return 0
	}
	return r.Work / time.Duration(r.DaysWithEntries)
}

// Aggregate computes per-activity, work and slack durations for the entries
// inside window. all must be the complete log in file order; it is needed to
// decide whether the window ends with the log's last entry.
func Aggregate(all []entry.Entry, window timeutil.Window, now time.Time, opts Options) Result {
	result := Result{
		Window:     window,
		Entries:    []entry.Entry{},
		Activities: []ActivityTotal{},
	}

	lastIndex := -1
	days := make(map[string]bool)
	for i, e := range all {
		if !window.Contains(e.Timestamp) {
			continue
		}
		result.Entries = append(result.Entries, e)
		days[e.Timestamp.Format("2006-01-02")] = true
		lastIndex = i
	}
	result.DaysWithEntries = len(days)

	index := make(map[entry.Activity]int)
	for i := 1; i < len(result.Entries); i++ {
		prev, cur := result.Entries[i-1], result.Entries[i]

		// the first entry of every day only marks the start time
		if !entry.SameDay(prev.Timestamp, cur.Timestamp) {
			continue
		}

		gap := cur.Timestamp.Sub(prev.Timestamp)
		if gap < 0 {
			result.Warnings = append(result.Warnings, Warning{Previous: prev, Entry: cur, Gap: gap})
			gap = 0
		}

		owner := prev
		if opts.Attribution == AttributeClosing {
			owner = cur
		}

		if owner.IsSlack() {
			result.Slack += gap
		} else {
			result.Work += gap
		}

		key := owner.Activity()
		if pos, ok := index[key]; ok {
			result.Activities[pos].Duration += gap
			continue
		}
		index[key] = len(result.Activities)
		result.Activities = append(result.Activities, ActivityTotal{Activity: key, Duration: gap})
	}

	if lastIndex >= 0 && lastIndex == len(all)-1 {
		result.Open = true
		result.SinceLast = sinceLast(all[lastIndex], now)
	}

	return result
}

// SinceLastEntry returns the time elapsed since the log's last entry when
// that entry lies inside window.
func SinceLastEntry(all []entry.Entry, window timeutil.Window, now time.Time) (time.Duration, bool) {
	if len(all) == 0 {
		return 0, false
	}
	last := all[len(all)-1]
	if !window.Contains(last.Timestamp) {
		return 0, false
	}
	return sinceLast(last, now), true
}

func sinceLast(last entry.Entry, now time.Time) time.Duration {
	d := now.Sub(last.Timestamp)
	if d < 0 {
		return 0
	}
	return d
}
