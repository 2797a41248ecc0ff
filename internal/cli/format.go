// Package cli provides the text presentation layer shared by the interactive
// prompt and the one-shot commands: report layout, prompt line and help.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/stats"
)

// splitDuration returns whole hours and the remaining minutes of d.
// Negative durations are treated as zero.
func splitDuration(d time.Duration) (int, int) {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return minutes / 60, minutes % 60
}

// FormatDuration formats a duration as hours and minutes.
// Examples: "0 h 5 min", "4 h 50 min"
func FormatDuration(d time.Duration) string {
	h, m := splitDuration(d)
	return fmt.Sprintf("%d h %d min", h, m)
}

// FormatActivity formats one report line with right-aligned hours and minutes.
// Example: " 4 h 50 min: gtimelog: code"
func FormatActivity(a stats.ActivityTotal) string {
	h, m := splitDuration(a.Duration)
	return fmt.Sprintf("%2d h %2d min: %s", h, m, a.DisplayName())
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning entry.ParseWarning) string {
	content := warning.Content
	if runes := []rune(content); len(runes) > 50 {
		content = string(runes[:47]) + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
