package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// ShowWeeklyStats shows statistics for the current week
func ShowWeeklyStats(deps *cli.Deps) {
	showStats(deps, func(profileID string) (*service.StatsResult, error) {
		return deps.Services.Stats.Week(profileID, time.Now())
	})
}

// ShowMonthlyStats shows statistics for the current month
func ShowMonthlyStats(deps *cli.Deps) {
	showStats(deps, func(profileID string) (*service.StatsResult, error) {
		return deps.Services.Stats.Month(profileID, time.Now())
	})
}

// ShowRangeStats shows statistics for a custom range
func ShowRangeStats(deps *cli.Deps, r timeutil.Range) {
	showStats(deps, func(profileID string) (*service.StatsResult, error) {
		return deps.Services.Stats.Summary(profileID, r, "")
	})
}

func showStats(deps *cli.Deps, compute func(profileID string) (*service.StatsResult, error)) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	result, err := compute(p.ID)
	if err != nil {
		fail(deps, err)
		return
	}

	s := result.Statistics
	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s (%s):\n", result.Period, p.DisplayName())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total time:      %s (%sh)\n", cli.FormatDuration(s.TotalMinutes), cli.FormatHours(s.TotalHours()))
	_, _ = fmt.Fprintf(deps.Stdout, "Total entries:   %d %s\n", s.EntryCount, cli.Pluralize("entry", s.EntryCount))
	_, _ = fmt.Fprintf(deps.Stdout, "Days worked:     %d %s\n", s.DaysWorked, cli.Pluralize("day", s.DaysWorked))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day: %sh\n", cli.FormatHours(s.AverageHoursPerDay()))
	if s.Longest != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Longest shift:   %s on %s\n", cli.FormatDuration(s.Longest.DurationMinutes), s.Longest.DateString())
	}

	if len(result.Weeks) > 1 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "By week:")
		for _, w := range result.Weeks {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s  %6sh  (%d %s)\n",
				w.Start.Format("2006-01-02"), cli.FormatHours(w.TotalHours()),
				w.EntryCount, cli.Pluralize("entry", w.EntryCount))
		}
	}
}
