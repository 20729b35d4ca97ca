// Package csvstore keeps profiles and entries in two CSV tables.
package csvstore

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/logging"
	"github.com/xolan/shifttrack/internal/osutil"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
)

const (
	// ProfilesFile is the name of the profiles table
	ProfilesFile = "profiles.csv"
	// EntriesFile is the name of the entries table
	EntriesFile = "entries.csv"
)

var (
	profileHeader = []string{"id", "name", "surname", "created_at"}
	entryHeader   = []string{"id", "profile_id", "date", "start", "end", "duration_minutes", "note", "created_at"}
)

// Store implements store.Store on top of CSV files.
type Store struct {
	dir string
	log *slog.Logger
}

var (
	_ store.Store    = (*Store)(nil)
	_ store.Checker  = (*Store)(nil)
	_ store.Restorer = (*Store)(nil)
)

// Open returns a Store rooted at dir, creating the directory if needed.
// The table files are created on first write.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if _, err := osutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{dir: dir, log: logger.With("backend", "csv")}, nil
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error { return nil }

func (s *Store) profilesPath() string { return filepath.Join(s.dir, ProfilesFile) }
func (s *Store) entriesPath() string  { return filepath.Join(s.dir, EntriesFile) }

// CreateProfile appends p to the profiles table.
func (s *Store) CreateProfile(p profile.Profile) error {
	profiles, err := s.readProfiles()
	if err != nil {
		return err
	}
	for _, existing := range profiles {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: %s", store.ErrProfileExists, p.ID)
		}
	}
	return appendRow(s.profilesPath(), profileHeader, encodeProfile(p))
}

// GetProfile returns the profile with the given id.
func (s *Store) GetProfile(id string) (profile.Profile, error) {
	profiles, err := s.readProfiles()
	if err != nil {
		return profile.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return profile.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
}

// ListProfiles returns all profiles ordered by id.
func (s *Store) ListProfiles() ([]profile.Profile, error) {
	profiles, err := s.readProfiles()
	if err != nil {
		return nil, err
	}
	store.SortProfiles(profiles)
	return profiles, nil
}

// UpdateProfile replaces the stored profile with the same id.
func (s *Store) UpdateProfile(p profile.Profile) error {
	profiles, err := s.readProfiles()
	if err != nil {
		return err
	}

	found := false
	for i := range profiles {
		if profiles[i].ID == p.ID {
			profiles[i] = p
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", store.ErrProfileNotFound, p.ID)
	}

	if err := s.CreateBackup(); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return s.writeProfiles(profiles)
}

// DeleteProfile removes the profile and every entry that belongs to it.
func (s *Store) DeleteProfile(id string) (int, error) {
	profiles, err := s.readProfiles()
	if err != nil {
		return 0, err
	}
	kept := make([]profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(profiles) {
		return 0, fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
	}

	result, err := s.readEntries()
	if err != nil {
		return 0, err
	}
	remaining := make([]entry.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.ProfileID != id {
			remaining = append(remaining, e)
		}
	}
	removed := len(result.Entries) - len(remaining)

	if err := s.CreateBackup(); err != nil {
		return 0, fmt.Errorf("failed to create backup: %w", err)
	}
	// Entries first so a failure never leaves entries without a profile.
	if removed > 0 {
		if err := s.writeEntries(remaining); err != nil {
			return 0, err
		}
	}
	if err := s.writeProfiles(kept); err != nil {
		return 0, err
	}

	s.log.Debug("profile deleted", "profile", id, "entries", removed)
	return removed, nil
}

// AddEntry appends e to the entries table. The owning profile must exist.
func (s *Store) AddEntry(e entry.Entry) error {
	if _, err := s.GetProfile(e.ProfileID); err != nil {
		return err
	}
	return appendRow(s.entriesPath(), entryHeader, encodeEntry(e))
}

// GetEntry returns the entry with the given id.
func (s *Store) GetEntry(id string) (entry.Entry, error) {
	result, err := s.readEntries()
	if err != nil {
		return entry.Entry{}, err
	}
	for _, e := range result.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
}

// ListEntries returns the entries of one profile in display order.
func (s *Store) ListEntries(profileID string) ([]entry.Entry, error) {
	if _, err := s.GetProfile(profileID); err != nil {
		return nil, err
	}

	result, err := s.readEntries()
	if err != nil {
		return nil, err
	}
	entries := make([]entry.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.ProfileID == profileID {
			entries = append(entries, e)
		}
	}
	store.SortEntries(entries)
	return entries, nil
}

// DeleteEntry removes the entry with the given id and returns it.
// The table is backed up before it is rewritten.
func (s *Store) DeleteEntry(id string) (entry.Entry, error) {
	result, err := s.readEntries()
	if err != nil {
		return entry.Entry{}, err
	}

	index := -1
	for i, e := range result.Entries {
		if e.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}

	deleted := result.Entries[index]
	remaining := append(result.Entries[:index:index], result.Entries[index+1:]...)

	if err := s.CreateBackup(); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to create backup: %w", err)
	}
	if err := s.writeEntries(remaining); err != nil {
		return entry.Entry{}, err
	}
	return deleted, nil
}

// Check analyzes both tables and reports malformed rows and orphaned entries.
func (s *Store) Check() (store.Health, error) {
	health := store.Health{Backend: "csv", Path: s.dir}

	profiles, profileWarnings, err := readTable(s.profilesPath(), profileHeader, decodeProfile)
	if err != nil {
		return health, err
	}
	entries, entryWarnings, err := readTable(s.entriesPath(), entryHeader, decodeEntry)
	if err != nil {
		return health, err
	}

	known := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		known[p.ID] = true
	}
	for _, e := range entries {
		if !known[e.ProfileID] {
			health.Orphans++
		}
	}

	health.Profiles = len(profiles)
	health.Entries = len(entries)
	for _, w := range profileWarnings {
		w.Error = ProfilesFile + ": " + w.Error
		health.Warnings = append(health.Warnings, w)
	}
	for _, w := range entryWarnings {
		w.Error = EntriesFile + ": " + w.Error
		health.Warnings = append(health.Warnings, w)
	}
	return health, nil
}

// readResult contains the successfully parsed entries and any warnings
// about corrupted or malformed lines.
type readResult struct {
	Entries  []entry.Entry
	Warnings []store.ParseWarning
}

func (s *Store) readEntries() (readResult, error) {
	entries, warnings, err := readTable(s.entriesPath(), entryHeader, decodeEntry)
	for _, w := range warnings {
		s.log.Warn("skipping malformed entry row", "line", w.LineNumber, "error", w.Error)
	}
	return readResult{Entries: entries, Warnings: warnings}, err
}

func (s *Store) readProfiles() ([]profile.Profile, error) {
	profiles, warnings, err := readTable(s.profilesPath(), profileHeader, decodeProfile)
	for _, w := range warnings {
		s.log.Warn("skipping malformed profile row", "line", w.LineNumber, "error", w.Error)
	}
	return profiles, err
}

func (s *Store) writeEntries(entries []entry.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, encodeEntry(e))
	}
	return writeTable(s.entriesPath(), entryHeader, rows)
}

func (s *Store) writeProfiles(profiles []profile.Profile) error {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, encodeProfile(p))
	}
	return writeTable(s.profilesPath(), profileHeader, rows)
}

// readTable parses every line of a CSV table. A missing file is an empty
// table. The header line is skipped; lines that fail to decode are
// reported as warnings instead of failing the read.
func readTable[T any](path string, header []string, decode func([]string) (T, error)) ([]T, []store.ParseWarning, error) {
	items := []T{}
	warnings := []store.ParseWarning{}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return items, warnings, nil
		}
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	headerLine := strings.Join(header, ",")
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineNumber == 1 && line == headerLine {
			continue
		}

		item, err := parseLine(line, len(header), decode)
		if err != nil {
			warnings = append(warnings, store.ParseWarning{
				LineNumber: lineNumber,
				Content:    line,
				Error:      err.Error(),
			})
			continue
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return items, warnings, nil
}

func parseLine[T any](line string, fields int, decode func([]string) (T, error)) (T, error) {
	var zero T
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = fields
	record, err := r.Read()
	if err != nil {
		return zero, err
	}
	return decode(record)
}

// appendRow appends one record, writing the header first when the file is new.
// Uses O_APPEND so the existing rows are never rewritten.
func appendRow(path string, header, row []string) error {
	info, err := os.Stat(path)
	needsHeader := errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if needsHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// writeTable replaces the table with header and rows.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func writeTable(path string, header []string, rows [][]string) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, path)
}

func encodeProfile(p profile.Profile) []string {
	return []string{p.ID, p.Name, p.Surname, store.FormatTime(p.CreatedAt)}
}

func decodeProfile(rec []string) (profile.Profile, error) {
	createdAt, err := store.ParseTime(rec[3])
	if err != nil {
		return profile.Profile{}, err
	}
	p := profile.Profile{ID: rec[0], Name: rec[1], Surname: rec[2], CreatedAt: createdAt}
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func encodeEntry(e entry.Entry) []string {
	return []string{
		e.ID,
		e.ProfileID,
		e.DateString(),
		e.Start.String(),
		e.End.String(),
		strconv.Itoa(e.DurationMinutes),
		e.Note,
		store.FormatTime(e.CreatedAt),
	}
}

func decodeEntry(rec []string) (entry.Entry, error) {
	date, err := store.ParseDate(rec[2])
	if err != nil {
		return entry.Entry{}, err
	}
	start, err := entry.ParseClock(rec[3])
	if err != nil {
		return entry.Entry{}, err
	}
	end, err := entry.ParseClock(rec[4])
	if err != nil {
		return entry.Entry{}, err
	}
	minutes, err := strconv.Atoi(rec[5])
	if err != nil {
		return entry.Entry{}, fmt.Errorf("invalid duration_minutes %q", rec[5])
	}
	createdAt, err := store.ParseTime(rec[7])
	if err != nil {
		return entry.Entry{}, err
	}

	e := entry.Entry{
		ID:              rec[0],
		ProfileID:       rec[1],
		Date:            date,
		Start:           start,
		End:             end,
		DurationMinutes: minutes,
		Note:            rec[6],
		CreatedAt:       createdAt,
	}
	if e.ID == "" {
		return entry.Entry{}, errors.New("missing id")
	}
	if err := e.Validate(); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}
