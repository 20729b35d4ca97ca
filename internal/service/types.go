// Package service provides the business logic layer for shifttrack.
// It wraps the store, timer, config and stats packages, providing a
// single API for both the CLI and the TUI.
package service

import (
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/stats"
	"github.com/xolan/shifttrack/internal/timer"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// AddRequest carries the raw values of a new shift as typed by the user.
// Exactly one of To or Duration may accompany From; Duration may also be
// given alone.
type AddRequest struct {
	ProfileID string
	Date      string // YYYY-MM-DD, DD/MM/YYYY, "today" or "yesterday"
	From      string // HH:MM
	To        string // HH:MM
	Duration  string // e.g. 7h30m
	Note      string
}

// ListResult contains the results of listing entries
type ListResult struct {
	Entries []entry.Entry
	Period  string         // Human-readable period description
	Range   timeutil.Range // Range the entries were filtered by
	Total   int            // Total duration in minutes
}

// TotalHours returns the listed total in hours rounded to two decimals.
func (r ListResult) TotalHours() float64 {
	return entry.Entry{DurationMinutes: r.Total}.Hours()
}

// ClockStatus represents the clock-in state of a profile
type ClockStatus struct {
	Running bool
	State   *timer.State
	Elapsed time.Duration
}

// StatsResult contains statistics for a time period
type StatsResult struct {
	Statistics stats.Statistics
	Weeks      []stats.WeekBreakdown
	Period     string // Human-readable period description
	Range      timeutil.Range
}
