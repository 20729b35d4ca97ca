package timeutil

import (
	"fmt"
	"time"
)

// Range is an inclusive time span. A zero Start means unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range (inclusive).
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Days returns the number of calendar days the range spans, or 0 when unbounded.
func (r Range) Days() int {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	days := 0
	for d := StartOfDay(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// String formats the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r Range) String() string {
	if r.Start.IsZero() {
		return "up to " + r.End.Format("2006-01-02")
	}
	if StartOfDay(r.Start).Equal(StartOfDay(r.End)) {
		return r.Start.Format("2006-01-02")
	}
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// Week returns the week containing t.
func Week(t time.Time, weekStart string) Range {
	return Range{Start: StartOfWeek(t, weekStart), End: EndOfWeek(t, weekStart)}
}

// Month returns the calendar month containing t.
func Month(t time.Time) Range {
	return Range{Start: StartOfMonth(t), End: EndOfMonth(t)}
}

// LastDays returns n complete days ending on the day of now (inclusive).
func LastDays(now time.Time, n int) Range {
	return Range{Start: StartOfDay(now.AddDate(0, 0, -(n - 1))), End: EndOfDay(now)}
}

// ParseRangeFlags turns --from, --to and --last flag values into a Range.
// With no flags the range is unbounded at the start and ends today.
// Returns an error if --last is combined with --from or --to.
func ParseRangeFlags(fromStr, toStr string, lastDays int) (Range, error) {
	if lastDays < 0 {
		return Range{}, fmt.Errorf("--last must be positive, got %d", lastDays)
	}
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return Range{}, fmt.Errorf("cannot use --last with --from or --to")
	}
	if lastDays > 0 {
		return LastDays(time.Now(), lastDays), nil
	}

	var r Range
	if fromStr != "" {
		start, err := ParseDate(fromStr)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = start
	}

	if toStr != "" {
		toDate, err := ParseDate(toStr)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(toDate)
	} else {
		r.End = EndOfDay(time.Now())
		if r.Start.After(r.End) {
			r.End = EndOfDay(r.Start)
		}
	}

	if !r.Start.IsZero() && r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return r, nil
}
