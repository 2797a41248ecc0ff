package entry

import (
	"fmt"
	"strings"
	"time"
)

// ParseWarning represents a warning about a line that was skipped or is
// suspicious (e.g. goes back in time)
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the line
	Error      string // Description of the problem
}

// ParseResult contains the entries parsed from a log together with any
// warnings about malformed or out-of-order lines.
type ParseResult struct {
	Entries  []Entry
	Warnings []ParseWarning
	// BlankLines counts whitespace-only separator lines.
	BlankLines int
	// TotalLines counts every line of the input.
	TotalLines int
}

// OutOfOrder returns the warnings about lines that go back in time.
func (r ParseResult) OutOfOrder() []ParseWarning {
	var out []ParseWarning
	for _, w := range r.Warnings {
		if strings.HasPrefix(w.Error, errBackInTime) {
			out = append(out, w)
		}
	}
	return out
}

const errBackInTime = "goes back in time"

// ParseLine parses a single log line of the form "YYYY-MM-DD HH:MM: description".
// Surrounding whitespace is ignored. A line consisting of the timestamp and
// a bare colon parses as an entry with an empty description, which is how an
// empty description looks after trimming.
func ParseLine(line string, loc *time.Location) (Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, fmt.Errorf("empty line")
	}

	n := len(TimeLayout)
	if len(line) <= n || line[n] != ':' {
		return Entry{}, fmt.Errorf("invalid line: expected '%s: description'", "YYYY-MM-DD HH:MM")
	}

	rest := line[n+1:]
	var description string
	switch {
	case rest == "":
		description = ""
	case rest[0] == ' ':
		description = rest[1:]
	default:
		return Entry{}, fmt.Errorf("invalid line: missing ': ' after timestamp")
	}

	if loc == nil {
		loc = time.Local
	}
	ts, err := time.ParseInLocation(TimeLayout, line[:n], loc)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp %q: %w", line[:n], err)
	}

	return Entry{Timestamp: ts, Description: description}, nil
}

// Parse converts raw log text into entries in file order. Blank lines are
// separators and carry no data. Malformed lines are skipped and reported as
// warnings; entries earlier than their predecessor are kept but reported.
func Parse(raw string, loc *time.Location) ParseResult {
	result := ParseResult{
		Entries:  []Entry{},
		Warnings: []ParseWarning{},
	}

	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		// trailing newline
		lines = lines[:len(lines)-1]
	}

	lineNumber := 0
	for _, content := range lines {
		lineNumber++
		content = strings.TrimSuffix(content, "\r")

		if strings.TrimSpace(content) == "" {
			result.BlankLines++
			continue
		}

		e, err := ParseLine(content, loc)
		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      err.Error(),
			})
			continue
		}

		if n := len(result.Entries); n > 0 && e.Timestamp.Before(result.Entries[n-1].Timestamp) {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      fmt.Sprintf("%s (previous entry at %s)", errBackInTime, result.Entries[n-1].Timestamp.Format(TimeLayout)),
			})
		}
		result.Entries = append(result.Entries, e)
	}
	result.TotalLines = lineNumber

	return result
}

// History returns the unique descriptions of the given entries in the order
// they first appear.
func History(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	history := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.Description] {
			continue
		}
		seen[e.Description] = true
		history = append(history, e.Description)
	}
	return history
}
