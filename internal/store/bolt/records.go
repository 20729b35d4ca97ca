package bolt

import (
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
)

type profileRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	CreatedAt string `json:"created_at"`
}

func toProfileRecord(p profile.Profile) profileRecord {
	return profileRecord{ID: p.ID, Name: p.Name, Surname: p.Surname, CreatedAt: store.FormatTime(p.CreatedAt)}
}

func (r profileRecord) toProfile() profile.Profile {
	// A bad timestamp only loses CreatedAt; the profile stays usable.
	createdAt, _ := store.ParseTime(r.CreatedAt)
	return profile.Profile{ID: r.ID, Name: r.Name, Surname: r.Surname, CreatedAt: createdAt}
}

type entryRecord struct {
	ID              string `json:"id"`
	ProfileID       string `json:"profile_id"`
	Date            string `json:"date"`
	Start           string `json:"start,omitempty"`
	End             string `json:"end,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Note            string `json:"note,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func toEntryRecord(e entry.Entry) entryRecord {
	return entryRecord{
		ID:              e.ID,
		ProfileID:       e.ProfileID,
		Date:            e.DateString(),
		Start:           e.Start.String(),
		End:             e.End.String(),
		DurationMinutes: e.DurationMinutes,
		Note:            e.Note,
		CreatedAt:       store.FormatTime(e.CreatedAt),
	}
}

func (r entryRecord) toEntry() (entry.Entry, error) {
	date, err := store.ParseDate(r.Date)
	if err != nil {
		return entry.Entry{}, err
	}
	start, err := entry.ParseClock(r.Start)
	if err != nil {
		return entry.Entry{}, err
	}
	end, err := entry.ParseClock(r.End)
	if err != nil {
		return entry.Entry{}, err
	}
	createdAt, err := store.ParseTime(r.CreatedAt)
	if err != nil {
		return entry.Entry{}, err
	}
	return entry.Entry{
		ID:              r.ID,
		ProfileID:       r.ProfileID,
		Date:            date,
		Start:           start,
		End:             end,
		DurationMinutes: r.DurationMinutes,
		Note:            r.Note,
		CreatedAt:       createdAt,
	}, nil
}
