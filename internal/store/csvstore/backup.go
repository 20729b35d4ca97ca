package csvstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xolan/shifttrack/internal/store"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n for a table file.
// Backup files are named <table>.bak.N; lower numbers are more recent.
func BackupPath(tablePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", tablePath, BackupSuffix, n)
}

// CreateBackup snapshots both tables before a destructive rewrite.
// Both tables rotate together so backup N of each belongs to the same state.
// Tables that don't exist yet are skipped.
func (s *Store) CreateBackup() error {
	for _, path := range []string{s.profilesPath(), s.entriesPath()} {
		if err := createBackup(path); err != nil {
			return err
		}
	}
	s.log.Debug("backup created", "dir", s.dir)
	return nil
}

// ListBackups returns available backups sorted by recency.
func (s *Store) ListBackups() ([]store.BackupInfo, error) {
	var backups []store.BackupInfo

	for i := 1; i <= MaxBackupCount; i++ {
		for _, table := range []string{s.entriesPath(), s.profilesPath()} {
			path := BackupPath(table, i)
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			backups = append(backups, store.BackupInfo{
				Number:  i,
				Path:    path,
				ModTime: info.ModTime(),
			})
			break
		}
	}

	return backups, nil
}

// RestoreBackup restores backup n of both tables.
// The current state is backed up first, so the previous backup n becomes n+1.
func (s *Store) RestoreBackup(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	tables := []string{s.profilesPath(), s.entriesPath()}
	found := false
	for _, table := range tables {
		if _, err := os.Stat(BackupPath(table, n)); err == nil {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("backup %d does not exist", n)
	}

	// Read the backups before rotation moves them.
	contents := make(map[string][]byte, len(tables))
	for _, table := range tables {
		data, err := os.ReadFile(BackupPath(table, n))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		contents[table] = data
	}

	if err := s.CreateBackup(); err != nil {
		return err
	}

	for _, table := range tables {
		data, ok := contents[table]
		if !ok {
			if err := os.Remove(table); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			continue
		}
		if err := writeFileAtomic(table, data); err != nil {
			return err
		}
	}

	s.log.Info("backup restored", "number", n)
	return nil
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It renames .bak.1 -> .bak.2, .bak.2 -> .bak.3, and deletes the oldest .bak.3
// if it exists.
func rotateBackups(tablePath string) error {
	if err := os.Remove(BackupPath(tablePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(tablePath, i), BackupPath(tablePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// createBackup rotates existing backups and copies the table to .bak.1.
// A missing table gets no backup and no error, but older backups still
// rotate so numbering stays aligned with the other table.
func createBackup(tablePath string) error {
	if err := rotateBackups(tablePath); err != nil {
		return err
	}

	source, err := os.Open(tablePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(BackupPath(tablePath, 1))
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	_, err = io.Copy(dest, source)
	return err
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, path)
}
