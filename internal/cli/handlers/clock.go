package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/timer"
)

// ClockIn starts the clock for the current profile
func ClockIn(deps *cli.Deps, note string) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	state, err := deps.Services.Clock.In(p.ID, note)
	if err != nil {
		if errors.Is(err, timer.ErrRunning) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Already clocked in %s\n", cli.FormatClockStartTime(state.StartedAt, time.Now()))
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'shifttrack clock out' to record the running shift first")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked in at %s\n", state.StartedAt.Format("15:04"))
}

// ClockOut stops the clock and records the shift
func ClockOut(deps *cli.Deps) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	e, err := deps.Services.Clock.Out(p.ID)
	if err != nil {
		if errors.Is(err, timer.ErrNotRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Not clocked in")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start a shift with 'shifttrack clock in'")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked out: %s %s (%s)\n", e.DateString(), cli.FormatTimeRange(e), cli.FormatDuration(e.DurationMinutes))
}

// ClockStatus reports whether the current profile is clocked in
func ClockStatus(deps *cli.Deps) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	status, err := deps.Services.Clock.Status(p.ID)
	if err != nil {
		fail(deps, err)
		return
	}
	if !status.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "Not clocked in")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clocked in %s (%s elapsed)\n",
		cli.FormatClockStartTime(status.State.StartedAt, time.Now()), cli.FormatElapsedTime(status.Elapsed))
	if status.State.Note != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Note: %s\n", status.State.Note)
	}
}

// ClockCancel discards the running clock without recording anything
func ClockCancel(deps *cli.Deps) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	state, err := deps.Services.Clock.Cancel(p.ID)
	if err != nil {
		if errors.Is(err, timer.ErrNotRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Not clocked in")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Discarded clock started at %s\n", state.StartedAt.Format("15:04"))
}
