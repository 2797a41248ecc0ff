package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ParseDay resolves a day named relative to now and returns its start in
// now's location. Accepted forms:
//   - "today", "yesterday"
//   - a weekday name such as "friday", meaning the most recent one (today
//     included)
//   - "2024-01-15" (ISO, preferred for ambiguous input)
//   - "15/01/2024" (day first)
func ParseDay(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use YYYY-MM-DD, DD/MM/YYYY, a weekday, 'today' or 'yesterday')")
	}

	today := StartOfDay(now)
	switch lower := strings.ToLower(input); lower {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	default:
		if wd, ok := weekdays[lower]; ok {
			back := (int(today.Weekday()) - int(wd) + 7) % 7
			return today.AddDate(0, 0, -back), nil
		}
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, buildDateParseError(input)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)   // YYYY-MM
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`) // MM-DD or DD-MM
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`) // DD/MM
	fullDateRe      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})$`)
)

// buildDateParseError explains what is missing from a date that didn't parse
func buildDateParseError(input string) error {
	switch {
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (e.g. %s-15)", input, input)
	case isoPartialDayRe.MatchString(input), euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use YYYY-MM-DD or DD/MM/YYYY)", input)
	case fullDateRe.MatchString(input):
		return fmt.Errorf("no such day '%s'", input)
	default:
		return fmt.Errorf("invalid date '%s' (use YYYY-MM-DD, DD/MM/YYYY, a weekday, 'today' or 'yesterday')", input)
	}
}
