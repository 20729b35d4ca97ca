package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xolan/shifttrack/internal/store"
)

// ErrUnsupported is returned when the configured backend lacks a maintenance feature.
var ErrUnsupported = errors.New("not supported by this storage backend")

// StorageService exposes health checks and backups of the store
type StorageService struct {
	store   store.Store
	backend string
	dir     string
	log     *slog.Logger
}

// NewStorageService creates a new StorageService
func NewStorageService(st store.Store, backend, dir string, logger *slog.Logger) *StorageService {
	return &StorageService{store: st, backend: backend, dir: dir, log: logger}
}

// Backend returns the configured backend name.
func (s *StorageService) Backend() string {
	return s.backend
}

// Dir returns the data directory.
func (s *StorageService) Dir() string {
	return s.dir
}

// Check inspects the store files.
func (s *StorageService) Check() (store.Health, error) {
	c, ok := s.store.(store.Checker)
	if !ok {
		return store.Health{}, fmt.Errorf("health check %w (%s)", ErrUnsupported, s.backend)
	}
	return c.Check()
}

// ListBackups returns the available backups, most recent first.
func (s *StorageService) ListBackups() ([]store.BackupInfo, error) {
	r, ok := s.store.(store.Restorer)
	if !ok {
		return nil, fmt.Errorf("backups are %w (%s)", ErrUnsupported, s.backend)
	}
	return r.ListBackups()
}

// Restore replaces the current data with backup n (1 is the most recent).
func (s *StorageService) Restore(n int) error {
	r, ok := s.store.(store.Restorer)
	if !ok {
		return fmt.Errorf("backups are %w (%s)", ErrUnsupported, s.backend)
	}
	if err := r.RestoreBackup(n); err != nil {
		return err
	}
	s.log.Info("backup restored", "backup", n)
	return nil
}
