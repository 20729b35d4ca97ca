package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/timer"
	"github.com/xolan/shifttrack/internal/timeutil"
	"github.com/xolan/shifttrack/internal/validation"
)

// ClockService turns clock-in/clock-out pairs into entries
type ClockService struct {
	tracker *timer.Tracker
	entries *EntryService
	log     *slog.Logger
	now     func() time.Time
}

// NewClockService creates a new ClockService
func NewClockService(tracker *timer.Tracker, entries *EntryService, logger *slog.Logger) *ClockService {
	return &ClockService{tracker: tracker, entries: entries, log: logger, now: time.Now}
}

// In starts the clock for a profile.
// Returns timer.ErrRunning together with the running state if the
// profile is already clocked in.
func (s *ClockService) In(profileID, note string) (timer.State, error) {
	if _, err := s.entries.store.GetProfile(profileID); err != nil {
		return timer.State{}, err
	}

	state, err := s.tracker.Start(profileID, entry.NormalizeNote(note), s.now())
	if err != nil {
		if errors.Is(err, timer.ErrRunning) {
			return state, err
		}
		return timer.State{}, fmt.Errorf("failed to save clock state: %w", err)
	}
	s.log.Debug("clocked in", "profile", profileID, "at", state.StartedAt)
	return state, nil
}

// Out stops the clock and records the elapsed shift as an entry.
// A shift that crosses midnight or lasts less than a minute is rejected
// with a validation error and the clock keeps running.
func (s *ClockService) Out(profileID string) (entry.Entry, error) {
	state, err := s.tracker.Get(profileID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to load clock state: %w", err)
	}
	if state == nil {
		return entry.Entry{}, timer.ErrNotRunning
	}

	now := s.now()
	startedAt := state.StartedAt.In(now.Location())
	if !timeutil.StartOfDay(startedAt).Equal(timeutil.StartOfDay(now)) {
		return entry.Entry{}, validation.New("end",
			"clocked in on %s; shifts cannot cross midnight, add it with explicit times instead",
			startedAt.Format(entry.DateLayout))
	}

	start := entry.NewClock(startedAt.Hour(), startedAt.Minute())
	end := entry.NewClock(now.Hour(), now.Minute())
	if end <= start {
		return entry.Entry{}, validation.New("duration", "shift is shorter than a minute")
	}

	e, err := s.entries.AddSpec(entry.Spec{
		ProfileID: profileID,
		Date:      timeutil.StartOfDay(startedAt),
		Start:     start,
		End:       end,
		Note:      state.Note,
	})
	if err != nil {
		return entry.Entry{}, err
	}

	if _, err := s.tracker.Clear(profileID); err != nil {
		return e, fmt.Errorf("entry saved but failed to clear clock state: %w", err)
	}
	s.log.Debug("clocked out", "profile", profileID, "entry", e.ID)
	return e, nil
}

// Status reports whether the profile is clocked in and for how long.
func (s *ClockService) Status(profileID string) (*ClockStatus, error) {
	state, err := s.tracker.Get(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clock state: %w", err)
	}
	if state == nil {
		return &ClockStatus{Running: false}, nil
	}
	return &ClockStatus{
		Running: true,
		State:   state,
		Elapsed: state.Elapsed(s.now()),
	}, nil
}

// Cancel discards the running clock without recording an entry.
func (s *ClockService) Cancel(profileID string) (timer.State, error) {
	state, err := s.tracker.Clear(profileID)
	if err != nil {
		return timer.State{}, err
	}
	s.log.Debug("clock cancelled", "profile", profileID)
	return state, nil
}
