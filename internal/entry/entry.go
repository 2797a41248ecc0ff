package entry

import (
	"strings"
	"time"
)

// TimeLayout is the gtimelog timestamp format. It is shared with gtimelog
// itself, so it must never change.
const TimeLayout = "2006-01-02 15:04"

// SlackMarker prefixes descriptions of non-work activities.
const SlackMarker = "**"

// Entry represents a single line of the time log: the moment an activity
// was finished and its description.
type Entry struct {
	Timestamp   time.Time
	Description string
}

// Activity identifies the bucket an entry's time is accounted to.
type Activity struct {
	Name  string // Description for work, slack label for slack
	Slack bool
}

// New creates an entry, truncating the timestamp to minute precision.
func New(t time.Time, description string) Entry {
	return Entry{
		Timestamp:   TruncateToMinute(t),
		Description: description,
	}
}

// TruncateToMinute drops seconds and sub-seconds while keeping the location.
func TruncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// IsSlack reports whether the entry describes slacking.
func (e Entry) IsSlack() bool {
	return strings.HasPrefix(e.Description, SlackMarker)
}

// SlackLabel returns the description with the slack marker stripped and
// surrounding whitespace trimmed. It is empty for work entries and for the
// unnamed slack bucket.
func (e Entry) SlackLabel() string {
	if !e.IsSlack() {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(e.Description, SlackMarker))
}

// Activity returns the aggregation key of the entry.
func (e Entry) Activity() Activity {
	if e.IsSlack() {
		return Activity{Name: e.SlackLabel(), Slack: true}
	}
	return Activity{Name: e.Description}
}

// String formats the entry exactly as it is stored in the log file,
// without the trailing newline.
func (e Entry) String() string {
	return e.Timestamp.Format(TimeLayout) + ": " + e.Description
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
