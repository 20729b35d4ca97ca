// Package timeutil contains calendar helpers shared by the CLI, services and TUI.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	yearOnlyRe     = regexp.MustCompile(`^\d{4}$`)
	isoPartialRe   = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	euroPartialRe  = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
	slashedISORe   = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
)

// ParseDate parses a date in YYYY-MM-DD, YYYY/MM/DD or DD/MM/YYYY format, or
// one of the words "today" and "yesterday". The result is local midnight.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	switch strings.ToLower(input) {
	case "today":
		return StartOfDay(time.Now()), nil
	case "yesterday":
		return StartOfDay(time.Now().AddDate(0, 0, -1)), nil
	}

	layouts := []string{"2006-01-02", "02/01/2006"}
	if slashedISORe.MatchString(input) {
		layouts = []string{"2006/1/2"}
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, dateParseError(input)
}

// dateParseError creates a helpful error message based on the input pattern
func dateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns the first day of the week containing t at midnight.
// weekStart is "monday" or "sunday"; anything else means monday.
func StartOfWeek(t time.Time, weekStart string) time.Time {
	offset := int(t.Weekday())
	if weekStart != "sunday" {
		// Shift so Monday is 0 and Sunday is 6.
		offset = (offset + 6) % 7
	}
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfWeek returns the last nanosecond of the week containing t.
func EndOfWeek(t time.Time, weekStart string) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month at 00:00:00 in the same timezone
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of the last day of the month
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
