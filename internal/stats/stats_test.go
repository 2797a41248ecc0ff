package stats

import (
	"testing"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/timeutil"
)

// Helper function to create test times with specific dates
func makeTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func parse(t *testing.T, raw string) []entry.Entry {
	t.Helper()
	result := entry.Parse(raw, time.Local)
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected parse warnings: %v", result.Warnings)
	}
	return result.Entries
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

const oneDay = `
2022-06-10 07:00: arrived
2022-06-10 08:45: gtimelog: code
2022-06-10 09:00: ** tea
2022-06-10 12:05: gtimelog: code
2022-06-10 12:35: customer joe: inquiry
2022-06-10 13:15: ** lunch
2022-06-10 14:00: code
2022-06-10 15:00: bug triage
2022-06-10 15:10: ** tea
2022-06-10 16:00: customer joe: support
`

const twoWeeks = `
2022-06-01 06:00: arrived
2022-06-01 07:00: workw1
2022-06-01 07:10: ** tea

2022-06-03 06:00: arrived
2022-06-03 07:00: workw1
2022-06-03 07:10: ** tea

2022-06-08 06:00: arrived
2022-06-08 07:00: workw2
2022-06-08 07:10: ** tea

2022-06-09 06:00: arrived
2022-06-09 07:00: workw2

2022-06-10 06:00: arrived
2022-06-10 07:00: workw2
2022-06-10 07:10: ** tea
`

func TestAggregate_Empty(t *testing.T) {
	w := timeutil.DayWindow(makeTime(2022, time.June, 10, 12, 0), 1)
	r := Aggregate(nil, w, makeTime(2022, time.June, 10, 12, 0), Options{})

	if len(r.Activities) != 0 {
		t.Errorf("expected no activities, got %d", len(r.Activities))
	}
	if r.Work != 0 || r.Slack != 0 {
		t.Errorf("expected zero totals, got work=%v slack=%v", r.Work, r.Slack)
	}
	if r.Open {
		t.Error("expected no open entry for empty log")
	}
}

func TestAggregate_DailyOpeningAttribution(t *testing.T) {
	entries := parse(t, oneDay)
	now := makeTime(2022, time.June, 10, 16, 20)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	if r.Work != minutes(260) {
		t.Errorf("Work = %v, expected 4h20m", r.Work)
	}
	if r.Slack != minutes(280) {
		t.Errorf("Slack = %v, expected 4h40m", r.Slack)
	}
	if total(r) != 9*time.Hour {
		t.Errorf("Total = %v, expected 9h", total(r))
	}

	expected := []struct {
		name     string
		duration time.Duration
	}{
		{"arrived", minutes(105)},
		{"gtimelog: code", minutes(45)},
		{"** tea", minutes(235)},
		{"customer joe: inquiry", minutes(40)},
		{"** lunch", minutes(45)},
		{"code", minutes(60)},
		{"bug triage", minutes(10)},
	}
	if len(r.Activities) != len(expected) {
		t.Fatalf("expected %d activities, got %d: %+v", len(expected), len(r.Activities), r.Activities)
	}
	for i, want := range expected {
		got := r.Activities[i]
		if got.DisplayName() != want.name || got.Duration != want.duration {
			t.Errorf("Activities[%d] = %s %v, expected %s %v", i, got.DisplayName(), got.Duration, want.name, want.duration)
		}
	}

	if !r.Open {
		t.Fatal("expected last entry to be open")
	}
	if r.SinceLast != minutes(20) {
		t.Errorf("SinceLast = %v, expected 20m", r.SinceLast)
	}
}

func TestAggregate_DailyClosingAttribution(t *testing.T) {
	entries := parse(t, oneDay)
	now := makeTime(2022, time.June, 10, 17, 0)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{Attribution: AttributeClosing})

	if r.Work != minutes(475) {
		t.Errorf("Work = %v, expected 7h55m", r.Work)
	}
	if r.Slack != minutes(65) {
		t.Errorf("Slack = %v, expected 1h5m", r.Slack)
	}
	if len(r.Activities) != 7 {
		t.Fatalf("expected 7 activities, got %d", len(r.Activities))
	}
	if r.Activities[0].DisplayName() != "gtimelog: code" {
		t.Errorf("first activity = %q, expected %q", r.Activities[0].DisplayName(), "gtimelog: code")
	}
	// first block 1:45, second block 3:05
	if r.Activities[0].Duration != 4*time.Hour+50*time.Minute {
		t.Errorf("gtimelog: code = %v, expected 4h50m", r.Activities[0].Duration)
	}
	if d, ok := lookup(r, entry.Activity{Name: "tea", Slack: true}); !ok || d != minutes(25) {
		t.Errorf("tea = %v (found %v), expected 25m", d, ok)
	}
}

func TestAggregate_Weekly(t *testing.T) {
	entries := parse(t, twoWeeks)
	// Tuesday; data has Wed to Fri of that week
	now := makeTime(2022, time.June, 7, 12, 0)
	w := timeutil.WeekWindow(now, 1, "monday")

	closing := Aggregate(entries, w, now, Options{Attribution: AttributeClosing})
	if closing.Work != 3*time.Hour {
		t.Errorf("closing Work = %v, expected 3h", closing.Work)
	}
	if closing.Slack != minutes(20) {
		t.Errorf("closing Slack = %v, expected 20m", closing.Slack)
	}
	if len(closing.Activities) != 2 || closing.Activities[0].DisplayName() != "workw2" || closing.Activities[1].DisplayName() != "** tea" {
		t.Errorf("closing activities = %+v", closing.Activities)
	}
	if closing.DaysWithEntries != 3 {
		t.Errorf("DaysWithEntries = %d, expected 3", closing.DaysWithEntries)
	}
	if closing.AverageWorkPerDay() != time.Hour {
		t.Errorf("AverageWorkPerDay = %v, expected 1h", closing.AverageWorkPerDay())
	}

	opening := Aggregate(entries, w, now, Options{})
	if opening.Work != 3*time.Hour+20*time.Minute {
		t.Errorf("opening Work = %v, expected 3h20m", opening.Work)
	}
	if opening.Slack != 0 {
		t.Errorf("opening Slack = %v, expected 0", opening.Slack)
	}
	if d, _ := lookup(opening, entry.Activity{Name: "arrived"}); d != 3*time.Hour {
		t.Errorf("arrived = %v, expected 3h", d)
	}
	if !opening.Open {
		t.Error("expected open entry: the window ends with the last log entry")
	}
}

func TestAggregate_WeekIncludesMoreThanToday(t *testing.T) {
	entries := parse(t, twoWeeks)
	now := makeTime(2022, time.June, 10, 8, 0)

	day := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})
	week := Aggregate(entries, timeutil.WeekWindow(now, 1, "monday"), now, Options{})

	if total(day) != minutes(70) {
		t.Errorf("day Total = %v, expected 1h10m", total(day))
	}
	if total(week) != minutes(200) {
		t.Errorf("week Total = %v, expected 3h20m", total(week))
	}
	if len(week.Entries) != 8 {
		t.Errorf("week entries = %d, expected 8", len(week.Entries))
	}
}

func TestAggregate_DayBreakNotCounted(t *testing.T) {
	entries := parse(t, `
2024-01-15 17:00: arrived
2024-01-15 18:00: late work

2024-01-16 08:00: arrived
2024-01-16 09:00: early work
`)
	now := makeTime(2024, time.January, 16, 10, 0)
	r := Aggregate(entries, timeutil.WeekWindow(now, 1, "monday"), now, Options{})

	if total(r) != 2*time.Hour {
		t.Errorf("Total = %v, expected 2h (overnight gap excluded)", total(r))
	}
}

func TestAggregate_ScenarioOpenSlack(t *testing.T) {
	entries := parse(t, `
2024-03-04 09:00: arrived
2024-03-04 12:45: wrote design doc
2024-03-04 13:03: ** lunch
`)
	now := makeTime(2024, time.March, 4, 13, 30)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	if d, _ := lookup(r, entry.Activity{Name: "arrived"}); d != 3*time.Hour+45*time.Minute {
		t.Errorf("arrived = %v, expected 3h45m", d)
	}
	if _, ok := lookup(r, entry.Activity{Name: "lunch", Slack: true}); ok {
		t.Error("open lunch must not have a bucket yet")
	}
	if r.Slack != 0 {
		t.Errorf("Slack = %v, expected 0", r.Slack)
	}
	if !r.Open || r.SinceLast != minutes(27) {
		t.Errorf("Open = %v SinceLast = %v, expected open with 27m", r.Open, r.SinceLast)
	}
}

func TestAggregate_UnnamedSlack(t *testing.T) {
	entries := parse(t, `
2024-01-01 09:00: **
2024-01-01 09:30: fixed bug
`)
	now := makeTime(2024, time.January, 1, 10, 0)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	d, ok := lookup(r, entry.Activity{Name: "", Slack: true})
	if !ok || d != minutes(30) {
		t.Errorf("unnamed slack = %v (found %v), expected 30m", d, ok)
	}
	if r.Slack != minutes(30) || r.Work != 0 {
		t.Errorf("Slack = %v Work = %v, expected 30m / 0", r.Slack, r.Work)
	}
	if r.Activities[0].DisplayName() != "**" {
		t.Errorf("DisplayName = %q, expected %q", r.Activities[0].DisplayName(), "**")
	}
}

func TestAggregate_SlackLabelsMerge(t *testing.T) {
	entries := parse(t, `
2024-01-01 09:00: **tea
2024-01-01 09:10: work
2024-01-01 10:00: ** tea
2024-01-01 10:15: tea
2024-01-01 10:20: done
`)
	now := makeTime(2024, time.January, 1, 11, 0)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	if d, _ := lookup(r, entry.Activity{Name: "tea", Slack: true}); d != minutes(25) {
		t.Errorf("slack tea = %v, expected 25m", d)
	}
	if d, _ := lookup(r, entry.Activity{Name: "tea"}); d != minutes(5) {
		t.Errorf("work tea = %v, expected 5m", d)
	}
}

func TestAggregate_EmptyDescriptionIsWork(t *testing.T) {
	entries := parse(t, "2024-01-01 09:00:\n2024-01-01 09:05: email\n2024-01-01 09:20: review\n")
	now := makeTime(2024, time.January, 1, 10, 0)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	d, ok := lookup(r, entry.Activity{Name: ""})
	if !ok || d != minutes(5) {
		t.Errorf("empty description bucket = %v (found %v), expected 5m", d, ok)
	}
	if r.Work != minutes(20) {
		t.Errorf("Work = %v, expected 20m", r.Work)
	}
}

func TestAggregate_ZeroAndNegativeGaps(t *testing.T) {
	raw := "2024-01-01 09:00: arrived\n" +
		"2024-01-01 09:00: same minute\n" +
		"2024-01-01 10:00: work\n" +
		"2024-01-01 09:30: edited by hand\n" +
		"2024-01-01 10:00: more work\n"
	entries := entry.Parse(raw, time.Local).Entries
	now := makeTime(2024, time.January, 1, 11, 0)
	r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{})

	if d, ok := lookup(r, entry.Activity{Name: "arrived"}); !ok || d != 0 {
		t.Errorf("arrived = %v (found %v), expected zero bucket", d, ok)
	}
	if d, _ := lookup(r, entry.Activity{Name: "work"}); d != 0 {
		t.Errorf("work = %v, expected 0 (negative gap clamped)", d)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(r.Warnings))
	}
	if r.Warnings[0].Gap != -30*time.Minute {
		t.Errorf("warning gap = %v, expected -30m", r.Warnings[0].Gap)
	}
	if r.Work != 90*time.Minute {
		t.Errorf("Work = %v, expected 1h30m", r.Work)
	}
}

func TestAggregate_WindowBoundaries(t *testing.T) {
	entries := parse(t, `
2024-01-14 23:59: previous day
2024-01-15 00:00: at start
2024-01-15 00:30: inside
2024-01-16 00:00: at end
`)
	w := timeutil.DayWindow(makeTime(2024, time.January, 15, 12, 0), 1)
	r := Aggregate(entries, w, makeTime(2024, time.January, 16, 1, 0), Options{})

	if len(r.Entries) != 2 {
		t.Fatalf("expected 2 entries in window, got %d", len(r.Entries))
	}
	if r.Entries[0].Description != "at start" {
		t.Errorf("first entry = %q, expected the one at the start boundary", r.Entries[0].Description)
	}
	if r.Open {
		t.Error("window does not end with the log's last entry, expected not open")
	}
	if total(r) != minutes(30) {
		t.Errorf("Total = %v, expected 30m", total(r))
	}
}

func TestAggregate_TotalsEqualSumOfGaps(t *testing.T) {
	entries := parse(t, oneDay)
	now := makeTime(2022, time.June, 10, 18, 0)

	var gaps time.Duration
	for i := 1; i < len(entries); i++ {
		gaps += entries[i].Timestamp.Sub(entries[i-1].Timestamp)
	}

	for _, attr := range []Attribution{AttributeOpening, AttributeClosing} {
		r := Aggregate(entries, timeutil.DayWindow(now, 1), now, Options{Attribution: attr})
		if r.Work+r.Slack != gaps {
			t.Errorf("%s: work+slack = %v, expected %v", attr, r.Work+r.Slack, gaps)
		}
		var sum time.Duration
		for _, a := range r.Activities {
			sum += a.Duration
		}
		if sum != gaps {
			t.Errorf("%s: sum of activities = %v, expected %v", attr, sum, gaps)
		}
	}
}

func TestAggregate_DayOrderDoesNotChangeTotals(t *testing.T) {
	a := parse(t, `
2022-06-08 06:00: arrived
2022-06-08 07:00: workw2
2022-06-08 07:10: ** tea
2022-06-09 06:00: arrived
2022-06-09 07:00: workw2
`)
	b := []entry.Entry{a[3], a[4], a[0], a[1], a[2]}
	now := makeTime(2022, time.June, 10, 12, 0)
	w := timeutil.WeekWindow(now, 1, "monday")

	ra := Aggregate(a, w, now, Options{})
	rb := Aggregate(b, w, now, Options{})

	if ra.Work != rb.Work || ra.Slack != rb.Slack {
		t.Errorf("totals differ: %v/%v vs %v/%v", ra.Work, ra.Slack, rb.Work, rb.Slack)
	}
	for _, at := range ra.Activities {
		if d, _ := lookup(rb, at.Activity); d != at.Duration {
			t.Errorf("%s: %v vs %v", at.DisplayName(), at.Duration, d)
		}
	}
}

func TestSinceLastEntry(t *testing.T) {
	entries := parse(t, oneDay)
	now := makeTime(2022, time.June, 10, 17, 15)

	d, ok := SinceLastEntry(entries, timeutil.DayWindow(now, 1), now)
	if !ok || d != minutes(75) {
		t.Errorf("SinceLastEntry = %v (ok %v), expected 1h15m", d, ok)
	}

	tomorrow := now.AddDate(0, 0, 1)
	if _, ok := SinceLastEntry(entries, timeutil.DayWindow(tomorrow, 1), tomorrow); ok {
		t.Error("expected no open entry on a day without entries")
	}

	if _, ok := SinceLastEntry(nil, timeutil.DayWindow(now, 1), now); ok {
		t.Error("expected no open entry for an empty log")
	}
}

func TestParseAttribution(t *testing.T) {
	tests := []struct {
		input    string
		expected Attribution
		wantErr  bool
	}{
		{"", AttributeOpening, false},
		{"opening", AttributeOpening, false},
		{"closing", AttributeClosing, false},
		{"sideways", AttributeOpening, true},
	}
	for _, tt := range tests {
		got, err := ParseAttribution(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAttribution(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseAttribution(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func lookup(r Result, a entry.Activity) (time.Duration, bool) {
	for _, at := range r.Activities {
		if at.Activity == a {
			return at.Duration, true
		}
	}
	return 0, false
}

func total(r Result) time.Duration {
	return r.Work + r.Slack
}
