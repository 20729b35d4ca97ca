package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/timeutil"
	"github.com/xolan/shifttrack/internal/validation"
)

// MinIDPrefix is the shortest entry id prefix accepted by Resolve.
const MinIDPrefix = 4

// Entry-specific errors
var (
	ErrIDTooShort  = errors.New("entry id prefix is too short")
	ErrAmbiguousID = errors.New("entry id prefix matches more than one entry")
)

// EntryService provides operations for managing shift entries
type EntryService struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewEntryService creates a new EntryService
func NewEntryService(st store.Store, logger *slog.Logger) *EntryService {
	return &EntryService{store: st, log: logger, now: time.Now}
}

// Add parses the raw request, validates it and stores the new entry.
// Parse failures are reported as validation errors for the offending field.
func (s *EntryService) Add(req AddRequest) (entry.Entry, error) {
	spec, err := s.parseRequest(req)
	if err != nil {
		return entry.Entry{}, err
	}
	return s.AddSpec(spec)
}

// AddSpec validates and stores an entry built from already parsed values.
func (s *EntryService) AddSpec(spec entry.Spec) (entry.Entry, error) {
	e, err := entry.New(spec)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.store.AddEntry(e); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return entry.Entry{}, err
		}
		return entry.Entry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	s.log.Info("entry added", "profile", e.ProfileID, "entry", e.ID, "date", e.DateString(), "minutes", e.DurationMinutes)
	return e, nil
}

func (s *EntryService) parseRequest(req AddRequest) (entry.Spec, error) {
	spec := entry.Spec{
		ProfileID: req.ProfileID,
		Note:      req.Note,
		Start:     entry.NoClock,
		End:       entry.NoClock,
	}

	if strings.TrimSpace(req.Date) == "" {
		spec.Date = timeutil.StartOfDay(s.now())
	} else {
		d, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return entry.Spec{}, validation.New("date", "%v", err)
		}
		spec.Date = d
	}

	var err error
	if spec.Start, err = entry.ParseClock(req.From); err != nil {
		return entry.Spec{}, validation.New("start", "%v", err)
	}
	if spec.End, err = entry.ParseClock(req.To); err != nil {
		return entry.Spec{}, validation.New("end", "%v", err)
	}
	if strings.TrimSpace(req.Duration) != "" {
		if spec.Duration, err = entry.ParseDuration(req.Duration); err != nil {
			return entry.Spec{}, validation.New("duration", "%v", err)
		}
	}
	return spec, nil
}

// List returns the entries of a profile matching f, in display order.
func (s *EntryService) List(profileID string, f filter.Filter) (*ListResult, error) {
	entries, err := s.store.ListEntries(profileID)
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(entries, f)
	total := 0
	for _, e := range filtered {
		total += e.DurationMinutes
	}

	return &ListResult{
		Entries: filtered,
		Period:  describePeriod(f.Range),
		Range:   f.Range,
		Total:   total,
	}, nil
}

// Resolve finds an entry of the profile by full id or by a unique id prefix
// of at least MinIDPrefix characters. A shorter ref that is not a full id
// fails with an error matching both store.ErrEntryNotFound and ErrIDTooShort.
func (s *EntryService) Resolve(profileID, ref string) (entry.Entry, error) {
	ref = strings.TrimSpace(ref)

	if e, err := s.store.GetEntry(ref); err == nil {
		if e.ProfileID != profileID {
			return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, ref)
		}
		return e, nil
	} else if !errors.Is(err, store.ErrEntryNotFound) {
		return entry.Entry{}, err
	}

	if len(ref) < MinIDPrefix {
		return entry.Entry{}, fmt.Errorf("%w: %s (%w: use at least %d characters)",
			store.ErrEntryNotFound, ref, ErrIDTooShort, MinIDPrefix)
	}

	entries, err := s.store.ListEntries(profileID)
	if err != nil {
		return entry.Entry{}, err
	}

	var matches []entry.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return entry.Entry{}, fmt.Errorf("%w: %s (%d matches)", ErrAmbiguousID, ref, len(matches))
	}
}

// Delete removes the entry of the profile identified by ref and returns it.
func (s *EntryService) Delete(profileID, ref string) (entry.Entry, error) {
	e, err := s.Resolve(profileID, ref)
	if err != nil {
		return entry.Entry{}, err
	}

	deleted, err := s.store.DeleteEntry(e.ID)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return entry.Entry{}, err
		}
		return entry.Entry{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	s.log.Info("entry deleted", "profile", profileID, "entry", deleted.ID)
	return deleted, nil
}

// describePeriod returns a human-readable description of r.
func describePeriod(r timeutil.Range) string {
	if r.Start.IsZero() && r.End.IsZero() {
		return "all time"
	}
	return r.String()
}
