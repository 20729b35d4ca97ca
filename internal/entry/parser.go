package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// combinedTimePattern matches combined time duration in XhYm format (e.g., "1h30m", "8h15m")
var combinedTimePattern = regexp.MustCompile(`^(\d+)h(\d+)m$`)

// timePattern matches time duration in Yh (hours) or Ym (minutes) format
var timePattern = regexp.MustCompile(`^(\d+)(h|m)$`)

// clockPattern matches a time of day in H:MM or HH:MM format
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// MaxDurationMinutes is the maximum allowed duration per entry (24 hours)
const MaxDurationMinutes = 24 * 60

// ParseDuration parses a duration string in Yh, Ym, or XhYm format
// and returns the duration in minutes.
// Valid inputs: "8h" (480), "30m" (30), "7h30m" (450)
// Invalid inputs: "invalid", "0h", "0m", "0h0m", values exceeding 24h
func ParseDuration(input string) (minutes int, err error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if m := combinedTimePattern.FindStringSubmatch(input); m != nil {
		hours, ok := boundedAtoi(m[1], MaxDurationMinutes/60)
		if !ok {
			return 0, errTooLong()
		}
		mins, ok := boundedAtoi(m[2], 59)
		if !ok {
			return 0, fmt.Errorf("invalid duration: minutes must be below 60 in %s", input)
		}
		return checkDuration(hours*60 + mins)
	}

	m := timePattern.FindStringSubmatch(input)
	if m == nil {
		return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %q", input)
	}

	limit := MaxDurationMinutes
	if m[2] == "h" {
		limit = MaxDurationMinutes / 60
	}
	value, ok := boundedAtoi(m[1], limit)
	if !ok {
		return 0, errTooLong()
	}
	if m[2] == "h" {
		value *= 60
	}
	return checkDuration(value)
}

// boundedAtoi parses a run of digits and reports false when it exceeds limit.
// Overflowing inputs are reported the same way.
func boundedAtoi(digits string, limit int) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}

func errTooLong() error {
	return fmt.Errorf("invalid duration: exceeds maximum of 24 hours (%d minutes)", MaxDurationMinutes)
}

func checkDuration(minutes int) (int, error) {
	if minutes == 0 {
		return 0, fmt.Errorf("invalid duration: duration cannot be zero")
	}
	if minutes > MaxDurationMinutes {
		return 0, errTooLong()
	}
	return minutes, nil
}

// ParseClock parses a time of day in H:MM or HH:MM format.
// An empty input yields NoClock.
func ParseClock(input string) (Clock, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return NoClock, nil
	}

	m := clockPattern.FindStringSubmatch(input)
	if m == nil {
		return NoClock, fmt.Errorf("invalid time %q: expected HH:MM", input)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return NoClock, fmt.Errorf("invalid time %q: hour must be 0-23 and minute 0-59", input)
	}
	return NewClock(hour, minute), nil
}
