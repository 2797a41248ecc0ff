package timeutil

import (
	"strings"
	"time"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfNextDay returns midnight of the day after t. AddDate is used rather
// than adding 24h so days with a DST shift keep their real length.
func StartOfNextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// StartOfWeek returns Monday 00:00:00 of the week containing the given time (ISO standard)
// Handles the Sunday edge case where Go's Weekday() returns 0
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// StartOfWeekWithConfig returns the first day of the week containing t,
// honouring the configured week start ("monday" or "sunday").
func StartOfWeekWithConfig(t time.Time, weekStartDay string) time.Time {
	if strings.EqualFold(weekStartDay, "sunday") {
		return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
	}
	return StartOfWeek(t)
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window. Start is inclusive,
// End is exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days returns the number of calendar days the window covers.
func (w Window) Days() int {
	days := 0
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// DayWindow returns the window spanning n days and ending with the day that
// contains anchor. n < 1 is treated as 1.
func DayWindow(anchor time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	return Window{
		Start: StartOfDay(anchor).AddDate(0, 0, -(n - 1)),
		End:   StartOfNextDay(anchor),
	}
}

// WeekWindow returns the window spanning n weeks and ending with the week
// that contains anchor. n < 1 is treated as 1.
func WeekWindow(anchor time.Time, n int, weekStartDay string) Window {
	if n < 1 {
		n = 1
	}
	start := StartOfWeekWithConfig(anchor, weekStartDay)
	return Window{
		Start: start.AddDate(0, 0, -7*(n-1)),
		End:   start.AddDate(0, 0, 7),
	}
}
