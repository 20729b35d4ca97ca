package service

import (
	"time"

	"github.com/xolan/shifttrack/internal/stats"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// StatsService provides statistics over a profile's entries
type StatsService struct {
	store  store.Store
	config *ConfigService
}

// NewStatsService creates a new StatsService
func NewStatsService(st store.Store, cfg *ConfigService) *StatsService {
	return &StatsService{store: st, config: cfg}
}

// Summary returns statistics and a weekly breakdown for r.
func (s *StatsService) Summary(profileID string, r timeutil.Range, period string) (*StatsResult, error) {
	entries, err := s.store.ListEntries(profileID)
	if err != nil {
		return nil, err
	}

	weekStart := s.config.Get().WeekStartDay
	if period == "" {
		period = describePeriod(r)
	}
	return &StatsResult{
		Statistics: stats.Calculate(entries, r),
		Weeks:      stats.CalculateWeeks(entries, r, weekStart),
		Period:     period,
		Range:      r,
	}, nil
}

// Week returns statistics for the week containing now.
func (s *StatsService) Week(profileID string, now time.Time) (*StatsResult, error) {
	r := timeutil.Week(now, s.config.Get().WeekStartDay)
	return s.Summary(profileID, r, "this week")
}

// Month returns statistics for the month containing now.
func (s *StatsService) Month(profileID string, now time.Time) (*StatsResult, error) {
	return s.Summary(profileID, timeutil.Month(now), "this month")
}
