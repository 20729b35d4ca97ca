package entry

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xolan/shifttrack/internal/validation"
)

// MaxNoteLength is the maximum number of characters in an entry note
const MaxNoteLength = 500

// DateLayout is the layout used to store and display entry dates
const DateLayout = "2006-01-02"

// Clock is a wall-clock time of day, in minutes since midnight
type Clock int

// NoClock marks a duration-only entry that has no start or end time
const NoClock Clock = -1

// NewClock returns the Clock for hour:minute
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// IsSet reports whether c holds a time of day
func (c Clock) IsSet() bool {
	return c != NoClock
}

// Valid reports whether c is between 00:00 and 23:59
func (c Clock) Valid() bool {
	return c >= 0 && c < 24*60
}

// String formats c as HH:MM, or "" for NoClock
func (c Clock) String() string {
	if !c.IsSet() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Entry is one recorded shift belonging to a single profile
type Entry struct {
	ID              string
	ProfileID       string
	Date            time.Time // midnight of the worked day
	Start           Clock
	End             Clock
	DurationMinutes int
	Note            string
	CreatedAt       time.Time
}

// HasRange reports whether the entry was recorded with start and end times
func (e Entry) HasRange() bool {
	return e.Start.IsSet() && e.End.IsSet()
}

// Hours returns the duration in hours rounded to two decimals
func (e Entry) Hours() float64 {
	return math.Round(float64(e.DurationMinutes)/60*100) / 100
}

// DateString returns the entry date as YYYY-MM-DD
func (e Entry) DateString() string {
	return e.Date.Format(DateLayout)
}

// Validate checks the invariants every stored entry must satisfy
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ProfileID) == "" {
		return validation.New("profile", "an entry must belong to a profile")
	}
	if e.Date.IsZero() {
		return validation.New("date", "date is required")
	}
	if e.DurationMinutes <= 0 || e.DurationMinutes > MaxDurationMinutes {
		return validation.New("duration", "must be between 1 minute and 24 hours")
	}
	if len([]rune(e.Note)) > MaxNoteLength {
		return validation.New("note", "must be at most %d characters", MaxNoteLength)
	}
	if strings.ContainsAny(e.Note, "\r\n") {
		return validation.New("note", "must be a single line")
	}

	if e.Start.IsSet() != e.End.IsSet() {
		return validation.New("time", "start and end times must be given together")
	}
	if !e.HasRange() {
		return nil
	}
	if !e.Start.Valid() {
		return validation.New("start", "time of day out of range")
	}
	if !e.End.Valid() {
		return validation.New("end", "time of day out of range")
	}
	if e.End <= e.Start {
		return validation.New("end", "end time %s must be after start time %s", e.End, e.Start)
	}
	if int(e.End-e.Start) != e.DurationMinutes {
		return validation.New("duration", "does not match the time range %s-%s", e.Start, e.End)
	}
	return nil
}

// Spec describes a shift to record. Either Start and End, Start and
// Duration, or Duration alone must be given.
type Spec struct {
	ProfileID string
	Date      time.Time
	Start     Clock
	End       Clock
	Duration  int // minutes
	Note      string
}

// New builds and validates a new entry from s, assigning a fresh ID.
func New(s Spec) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		ProfileID: strings.TrimSpace(s.ProfileID),
		Date:      startOfDay(s.Date),
		Start:     s.Start,
		End:       s.End,
		Note:      NormalizeNote(s.Note),
		CreatedAt: time.Now().Round(0),
	}
	if s.Date.IsZero() {
		e.Date = time.Time{}
	}

	switch {
	case s.Start.IsSet() && s.End.IsSet():
		if s.End <= s.Start {
			return Entry{}, validation.New("end", "end time %s must be after start time %s", s.End, s.Start)
		}
		if s.Duration != 0 && s.Duration != int(s.End-s.Start) {
			return Entry{}, validation.New("duration", "conflicts with the time range %s-%s", s.Start, s.End)
		}
		e.DurationMinutes = int(s.End - s.Start)

	case s.Start.IsSet():
		if s.Duration <= 0 {
			return Entry{}, validation.New("time", "an end time or a duration is required")
		}
		end := s.Start + Clock(s.Duration)
		if !end.Valid() {
			return Entry{}, validation.New("duration", "a shift starting at %s cannot last past midnight", s.Start)
		}
		e.End = end
		e.DurationMinutes = s.Duration

	case s.End.IsSet():
		return Entry{}, validation.New("start", "a start time is required when an end time is given")

	default:
		if s.Duration <= 0 {
			return Entry{}, validation.New("time", "either a time range or a duration is required")
		}
		e.Start, e.End = NoClock, NoClock
		e.DurationMinutes = s.Duration
	}

	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// NormalizeNote trims a note and folds line breaks into spaces.
func NormalizeNote(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
