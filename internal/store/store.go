// Package store defines the persistence contract for profiles and their
// shift entries.
//
// Three backends implement [Store]:
//   - csvstore: two CSV tables in the data directory (default)
//   - sqlite: a single SQLite database with cascading foreign keys
//   - bolt: a bbolt key/value file
//
// Every backend enforces the same rules: an entry always belongs to an
// existing profile, deleting a profile removes its entries, and
// ListEntries returns entries ordered by date, start time and creation
// time. The shared behaviour is checked by the storetest package.
package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/profile"
)

var (
	// ErrProfileNotFound is returned when a profile id does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when creating a profile whose id is taken.
	ErrProfileExists = errors.New("profile already exists")
	// ErrEntryNotFound is returned when an entry id does not exist.
	ErrEntryNotFound = errors.New("entry not found")
)

// Store holds profiles and their entries.
type Store interface {
	CreateProfile(p profile.Profile) error
	GetProfile(id string) (profile.Profile, error)
	ListProfiles() ([]profile.Profile, error)
	UpdateProfile(p profile.Profile) error
	// DeleteProfile removes the profile and all of its entries, returning
	// the number of entries removed.
	DeleteProfile(id string) (int, error)

	AddEntry(e entry.Entry) error
	GetEntry(id string) (entry.Entry, error)
	ListEntries(profileID string) ([]entry.Entry, error)
	// DeleteEntry removes the entry and returns it.
	DeleteEntry(id string) (entry.Entry, error)

	Close() error
}

// ParseWarning represents a warning about a corrupted or malformed record
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed), or 0 for keyed stores
	Content    string // Raw content of the corrupted record
	Error      string // Description of the parsing error
}

// Health summarises the state of a backend's files.
type Health struct {
	Backend  string
	Path     string
	Profiles int
	Entries  int
	// Orphans counts entries whose profile no longer exists.
	Orphans  int
	Warnings []ParseWarning
}

// OK reports whether no problems were found.
func (h Health) OK() bool {
	return h.Orphans == 0 && len(h.Warnings) == 0
}

// Checker is implemented by backends that can inspect their own files.
type Checker interface {
	Check() (Health, error)
}

// BackupInfo contains information about a backup snapshot
type BackupInfo struct {
	Number  int       // The backup number, 1 is the most recent
	Path    string    // Path of the backed up entries table
	ModTime time.Time // When the backup was taken
}

// Restorer is implemented by backends that keep rotating backups.
type Restorer interface {
	ListBackups() ([]BackupInfo, error)
	RestoreBackup(n int) error
}

// SortEntries orders entries by date, then start time (duration-only
// entries first), then creation time.
func SortEntries(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// SortProfiles orders profiles by id.
func SortProfiles(profiles []profile.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
}

// FormatTime encodes a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTime decodes a timestamp written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseDate decodes a YYYY-MM-DD date as local midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(entry.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
