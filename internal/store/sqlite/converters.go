package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
)

type scanner interface {
	Scan(dest ...any) error
}

func nullClock(c entry.Clock) sql.NullInt64 {
	if !c.IsSet() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c), Valid: true}
}

func clockFromNull(n sql.NullInt64) entry.Clock {
	if !n.Valid {
		return entry.NoClock
	}
	return entry.Clock(n.Int64)
}

func scanProfile(row scanner) (profile.Profile, error) {
	var (
		p         profile.Profile
		createdAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Surname, &createdAt); err != nil {
		return profile.Profile{}, err
	}
	p.CreatedAt = time.Unix(0, createdAt)
	return p, nil
}

func scanEntry(row scanner) (entry.Entry, error) {
	var (
		e          entry.Entry
		date       string
		start, end sql.NullInt64
		createdAt  int64
	)
	if err := row.Scan(&e.ID, &e.ProfileID, &date, &start, &end, &e.DurationMinutes, &e.Note, &createdAt); err != nil {
		return entry.Entry{}, err
	}

	d, err := store.ParseDate(date)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.Date = d
	e.Start = clockFromNull(start)
	e.End = clockFromNull(end)
	e.CreatedAt = time.Unix(0, createdAt)
	return e, nil
}
