// Package sqlite stores profiles and entries in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/logging"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DBFile is the database file name inside the data directory.
const DBFile = "shifttrack.db"

// Store implements store.Store using SQLite.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
	mu   sync.RWMutex
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Checker = (*Store)(nil)
)

// Open opens or creates the database at path and applies migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := NewMigrator(db).MigrateUp(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger = logger.With("backend", "sqlite")
	logger.Debug("database opened", "path", path)
	return &Store{db: db, path: path, log: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProfile inserts p.
func (s *Store) CreateProfile(p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.profileExists(s.db, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", store.ErrProfileExists, p.ID)
	}

	_, err = s.db.Exec(
		`INSERT INTO profiles (id, name, surname, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Surname, p.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile with the given id.
func (s *Store) GetProfile(id string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, name, surname, created_at FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
	}
	return p, err
}

// ListProfiles returns all profiles ordered by id.
func (s *Store) ListProfiles() ([]profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, surname, created_at FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	profiles := []profile.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdateProfile replaces the name fields of an existing profile.
func (s *Store) UpdateProfile(p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE profiles SET name = ?, surname = ? WHERE id = ?`, p.Name, p.Surname, p.ID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", store.ErrProfileNotFound, p.ID)
	}
	return nil
}

// DeleteProfile removes the profile and its entries in one transaction.
func (s *Store) DeleteProfile(id string) (removed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exists, err := s.profileExists(tx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
	}

	// The foreign key cascades as well; deleting explicitly gives the count.
	res, err := tx.Exec(`DELETE FROM entries WHERE profile_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting entries: %w", err)
	}
	n, _ := res.RowsAffected()

	if _, err = tx.Exec(`DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("deleting profile: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Debug("profile deleted", "profile", id, "entries", n)
	return int(n), nil
}

// AddEntry inserts e. The owning profile must exist.
func (s *Store) AddEntry(e entry.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.profileExists(s.db, e.ProfileID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", store.ErrProfileNotFound, e.ProfileID)
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (id, profile_id, date, start_min, end_min, duration_minutes, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProfileID, e.DateString(), nullClock(e.Start), nullClock(e.End),
		e.DurationMinutes, e.Note, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

const entryColumns = `id, profile_id, date, start_min, end_min, duration_minutes, note, created_at`

// GetEntry returns the entry with the given id.
func (s *Store) GetEntry(id string) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}
	return e, err
}

// ListEntries returns the entries of one profile in display order.
func (s *Store) ListEntries(profileID string) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.profileExists(s.db, profileID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", store.ErrProfileNotFound, profileID)
	}

	rows, err := s.db.Query(`
		SELECT `+entryColumns+` FROM entries
		WHERE profile_id = ?
		ORDER BY date, COALESCE(start_min, -1), created_at`, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes the entry with the given id and returns it.
func (s *Store) DeleteEntry(id string) (e entry.Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	e, err = scanEntry(tx.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}
	if err != nil {
		return entry.Entry{}, err
	}

	if _, err = tx.Exec(`DELETE FROM entries WHERE id = ?`, id); err != nil {
		return entry.Entry{}, fmt.Errorf("deleting entry: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("committing transaction: %w", err)
	}
	return e, nil
}

// Check runs SQLite's integrity check and counts rows.
func (s *Store) Check() (store.Health, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	health := store.Health{Backend: "sqlite", Path: s.path}

	rows, err := s.db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return health, fmt.Errorf("integrity check: %w", err)
	}
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			_ = rows.Close()
			return health, err
		}
		if msg != "ok" {
			health.Warnings = append(health.Warnings, store.ParseWarning{Error: msg})
		}
	}
	_ = rows.Close()

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&health.Profiles); err != nil {
		return health, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&health.Entries); err != nil {
		return health, err
	}
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM entries e
		LEFT JOIN profiles p ON p.id = e.profile_id
		WHERE p.id IS NULL`).Scan(&health.Orphans)
	return health, err
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) profileExists(q queryer, id string) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM profiles WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up profile: %w", err)
	}
	return true, nil
}
