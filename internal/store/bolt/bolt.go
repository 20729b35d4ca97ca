// Package bolt stores profiles and entries in a bbolt key/value file.
package bolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/logging"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
	"go.etcd.io/bbolt"
)

// DBFile is the database file name inside the data directory.
const DBFile = "shifttrack.bolt"

const (
	bucketProfiles       = "profiles"        // key: profile id -> profileRecord JSON
	bucketEntries        = "entries"         // key: entry id -> entryRecord JSON
	bucketProfileEntries = "profile_entries" // key: profile id + 0x00 + entry id -> empty
)

// Store implements store.Store on a bbolt database.
type Store struct {
	db  *bbolt.DB
	log *slog.Logger
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Checker = (*Store)(nil)
)

// Open opens the database at path. bbolt holds an exclusive lock on the
// file, so a second process fails after a one second timeout.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketProfiles, bucketEntries, bucketProfileEntries} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger = logger.With("backend", "bolt")
	logger.Debug("database opened", "path", path)
	return &Store{db: db, log: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProfile stores p under its id.
func (s *Store) CreateProfile(p profile.Profile) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketProfiles))
		if b.Get([]byte(p.ID)) != nil {
			return fmt.Errorf("%w: %s", store.ErrProfileExists, p.ID)
		}
		return putJSON(b, p.ID, toProfileRecord(p))
	})
}

// GetProfile returns the profile with the given id.
func (s *Store) GetProfile(id string) (profile.Profile, error) {
	var p profile.Profile
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		p, err = getProfile(tx, id)
		return err
	})
	return p, err
}

// ListProfiles returns all profiles ordered by id.
func (s *Store) ListProfiles() ([]profile.Profile, error) {
	profiles := []profile.Profile{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketProfiles)).ForEach(func(k, v []byte) error {
			var rec profileRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding profile %s: %w", k, err)
			}
			profiles = append(profiles, rec.toProfile())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	// Keys are already sorted bytewise; keep the shared ordering explicit.
	store.SortProfiles(profiles)
	return profiles, nil
}

// UpdateProfile replaces an existing profile.
func (s *Store) UpdateProfile(p profile.Profile) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		existing, err := getProfile(tx, p.ID)
		if err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		return putJSON(tx.Bucket([]byte(bucketProfiles)), p.ID, toProfileRecord(p))
	})
}

// DeleteProfile removes the profile, its entries and their index keys.
func (s *Store) DeleteProfile(id string) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		profiles := tx.Bucket([]byte(bucketProfiles))
		if profiles.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
		}

		entryIDs := profileEntryIDs(tx, id)
		entries := tx.Bucket([]byte(bucketEntries))
		index := tx.Bucket([]byte(bucketProfileEntries))
		for _, entryID := range entryIDs {
			if err := entries.Delete([]byte(entryID)); err != nil {
				return err
			}
			if err := index.Delete(indexKey(id, entryID)); err != nil {
				return err
			}
		}
		removed = len(entryIDs)
		return profiles.Delete([]byte(id))
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug("profile deleted", "profile", id, "entries", removed)
	return removed, nil
}

// AddEntry stores e and indexes it under its profile.
func (s *Store) AddEntry(e entry.Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(bucketProfiles)).Get([]byte(e.ProfileID)) == nil {
			return fmt.Errorf("%w: %s", store.ErrProfileNotFound, e.ProfileID)
		}
		if err := putJSON(tx.Bucket([]byte(bucketEntries)), e.ID, toEntryRecord(e)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketProfileEntries)).Put(indexKey(e.ProfileID, e.ID), []byte{})
	})
}

// GetEntry returns the entry with the given id.
func (s *Store) GetEntry(id string) (entry.Entry, error) {
	var e entry.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		e, err = getEntry(tx, id)
		return err
	})
	return e, err
}

// ListEntries returns the entries of one profile in display order.
func (s *Store) ListEntries(profileID string) ([]entry.Entry, error) {
	entries := []entry.Entry{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		if _, err := getProfile(tx, profileID); err != nil {
			return err
		}
		for _, id := range profileEntryIDs(tx, profileID) {
			e, err := getEntry(tx, id)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	store.SortEntries(entries)
	return entries, nil
}

// DeleteEntry removes the entry with the given id and returns it.
func (s *Store) DeleteEntry(id string) (entry.Entry, error) {
	var e entry.Entry
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		e, err = getEntry(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketEntries)).Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketProfileEntries)).Delete(indexKey(e.ProfileID, id))
	})
	if err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// Check counts records and reports values that no longer decode.
func (s *Store) Check() (store.Health, error) {
	health := store.Health{Backend: "bolt", Path: s.db.Path()}

	err := s.db.View(func(tx *bbolt.Tx) error {
		profiles := tx.Bucket([]byte(bucketProfiles))
		health.Profiles = profiles.Stats().KeyN

		return tx.Bucket([]byte(bucketEntries)).ForEach(func(k, v []byte) error {
			var rec entryRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				health.Warnings = append(health.Warnings, store.ParseWarning{
					Content: string(k),
					Error:   err.Error(),
				})
				return nil
			}
			health.Entries++
			if profiles.Get([]byte(rec.ProfileID)) == nil {
				health.Orphans++
			}
			return nil
		})
	})
	return health, err
}

func getProfile(tx *bbolt.Tx, id string) (profile.Profile, error) {
	v := tx.Bucket([]byte(bucketProfiles)).Get([]byte(id))
	if v == nil {
		return profile.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileNotFound, id)
	}
	var rec profileRecord
	if err := json.Unmarshal(v, &rec); err != nil {
		return profile.Profile{}, fmt.Errorf("decoding profile %s: %w", id, err)
	}
	return rec.toProfile(), nil
}

func getEntry(tx *bbolt.Tx, id string) (entry.Entry, error) {
	v := tx.Bucket([]byte(bucketEntries)).Get([]byte(id))
	if v == nil {
		return entry.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}
	var rec entryRecord
	if err := json.Unmarshal(v, &rec); err != nil {
		return entry.Entry{}, fmt.Errorf("decoding entry %s: %w", id, err)
	}
	return rec.toEntry()
}

// profileEntryIDs scans the index for keys prefixed with the profile id.
func profileEntryIDs(tx *bbolt.Tx, profileID string) []string {
	prefix := indexKey(profileID, "")
	var ids []string
	c := tx.Bucket([]byte(bucketProfileEntries)).Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		ids = append(ids, string(k[len(prefix):]))
	}
	return ids
}

func indexKey(profileID, entryID string) []byte {
	return []byte(profileID + "\x00" + entryID)
}

func putJSON(b *bbolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}
