package filter

import (
	"strings"

	"github.com/xolan/timelog/internal/stats"
)

// Filter narrows a report down to the activities whose name contains a
// keyword. An empty keyword matches every activity.
type Filter struct {
	Keyword string // Case-insensitive substring of the displayed activity name
}

// NewFilter creates a new Filter for keyword.
func NewFilter(keyword string) *Filter {
	return &Filter{Keyword: strings.TrimSpace(keyword)}
}

// IsEmpty returns true if the filter matches all activities
func (f *Filter) IsEmpty() bool {
	return f.Keyword == ""
}

// Matches returns true if the keyword is found in the activity name,
// including the slack marker.
func (f *Filter) Matches(a stats.ActivityTotal) bool {
	if f.IsEmpty() {
		return true
	}
	return strings.Contains(strings.ToLower(a.DisplayName()), strings.ToLower(f.Keyword))
}

// Apply returns r restricted to the matching activities with the work and
// slack totals recomputed from them. The window, its entries and the days
// with entries are left alone, so the average still divides by every day
// that was logged.
func (f *Filter) Apply(r stats.Result) stats.Result {
	if f.IsEmpty() {
		return r
	}

	activities := make([]stats.ActivityTotal, 0, len(r.Activities))
	r.Work, r.Slack = 0, 0
	for _, a := range r.Activities {
		if !f.Matches(a) {
			continue
		}
		activities = append(activities, a)
		if a.Activity.Slack {
			r.Slack += a.Duration
		} else {
			r.Work += a.Duration
		}
	}
	r.Activities = activities
	return r
}
