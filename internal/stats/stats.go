// Package stats aggregates worked hours over a set of entries.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// Statistics contains aggregated statistics for a set of entries
type Statistics struct {
	TotalMinutes int
	EntryCount   int
	DaysWorked   int
	// AverageMinutesPerDay is averaged over days with at least one entry.
	AverageMinutesPerDay float64
	Longest              *entry.Entry
}

// TotalHours returns the total in hours rounded to two decimals.
func (s Statistics) TotalHours() float64 {
	return roundHours(s.TotalMinutes)
}

// AverageHoursPerDay returns the per-day average in hours rounded to two decimals.
func (s Statistics) AverageHoursPerDay() float64 {
	return math.Round(s.AverageMinutesPerDay/60*100) / 100
}

// WeekBreakdown contains totals for one week of a range
type WeekBreakdown struct {
	Start        time.Time
	TotalMinutes int
	EntryCount   int
}

// TotalHours returns the week total in hours rounded to two decimals.
func (w WeekBreakdown) TotalHours() float64 {
	return roundHours(w.TotalMinutes)
}

// Calculate computes statistics for the entries whose date falls in r.
func Calculate(entries []entry.Entry, r timeutil.Range) Statistics {
	stats := Statistics{}
	days := make(map[string]bool)

	for i, e := range entries {
		if !r.Contains(e.Date) {
			continue
		}
		stats.TotalMinutes += e.DurationMinutes
		stats.EntryCount++
		days[e.DateString()] = true

		if stats.Longest == nil || e.DurationMinutes > stats.Longest.DurationMinutes {
			stats.Longest = &entries[i]
		}
	}

	stats.DaysWorked = len(days)
	if stats.DaysWorked > 0 {
		stats.AverageMinutesPerDay = float64(stats.TotalMinutes) / float64(stats.DaysWorked)
	}
	return stats
}

// CalculateWeeks groups the entries in r by week, oldest first.
// Weeks without entries are omitted.
func CalculateWeeks(entries []entry.Entry, r timeutil.Range, weekStart string) []WeekBreakdown {
	weeks := make(map[time.Time]*WeekBreakdown)

	for _, e := range entries {
		if !r.Contains(e.Date) {
			continue
		}
		start := timeutil.StartOfWeek(e.Date, weekStart)
		w, ok := weeks[start]
		if !ok {
			w = &WeekBreakdown{Start: start}
			weeks[start] = w
		}
		w.TotalMinutes += e.DurationMinutes
		w.EntryCount++
	}

	breakdowns := make([]WeekBreakdown, 0, len(weeks))
	for _, w := range weeks {
		breakdowns = append(breakdowns, *w)
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Start.Before(breakdowns[j].Start)
	})
	return breakdowns
}

func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
