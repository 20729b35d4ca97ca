// Package cli provides the CLI presentation layer for shifttrack.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/store"
)

// ShortIDLength is the number of id characters shown in listings
const ShortIDLength = 8

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatHours formats a decimal hour count with two decimals, e.g. "8.50"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FormatElapsedTime formats a duration as human-readable elapsed time
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	return FormatDuration(int(d.Minutes()))
}

// FormatTimeRange returns "HH:MM-HH:MM", or blank padding of the same
// width for duration-only entries so columns stay aligned.
func FormatTimeRange(e entry.Entry) string {
	if !e.HasRange() {
		return "           "
	}
	return e.Start.String() + "-" + e.End.String()
}

// ShortID returns the first ShortIDLength characters of an entry id
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// FormatEntryLine formats an entry as one listing line:
// "[id] date  HH:MM-HH:MM  8.50h  note"
func FormatEntryLine(e entry.Entry) string {
	line := fmt.Sprintf("[%s] %s  %s  %5sh", ShortID(e.ID), e.DateString(), FormatTimeRange(e), FormatHours(e.Hours()))
	if e.Note != "" {
		line += "  " + e.Note
	}
	return line
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning store.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	if warning.LineNumber == 0 {
		return fmt.Sprintf("  %s (error: %s)", content, warning.Error)
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// BuildPeriodWithKeyword appends the search keyword to the period description.
// Example: "all time" -> "all time (matching "till")"
func BuildPeriodWithKeyword(period, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return period
	}
	return fmt.Sprintf("%s (matching %q)", period, keyword)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

// FormatClockStartTime formats the clock-in time for display relative to now
func FormatClockStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("15:04")

	isToday := startedAt.Year() == now.Year() &&
		startedAt.Month() == now.Month() &&
		startedAt.Day() == now.Day()

	if isToday {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}
