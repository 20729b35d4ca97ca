package service

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/logging"
	"github.com/xolan/shifttrack/internal/osutil"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/store/bolt"
	"github.com/xolan/shifttrack/internal/store/csvstore"
	"github.com/xolan/shifttrack/internal/store/sqlite"
	"github.com/xolan/shifttrack/internal/timer"
)

// Services holds all service instances used by the application
type Services struct {
	Profile *ProfileService
	Entry   *EntryService
	Stats   *StatsService
	Clock   *ClockService
	Export  *ExportService
	Storage *StorageService
	Config  *ConfigService

	store store.Store
}

// OpenStore opens the backend selected by cfg.Storage.Backend, creating
// the data directory if needed. It returns the store and its directory.
func OpenStore(cfg config.Config, logger *slog.Logger) (store.Store, string, error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to determine data directory: %w", err)
	}
	dir, err = osutil.EnsureDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create data directory: %w", err)
	}

	var st store.Store
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		st, err = sqlite.Open(filepath.Join(dir, sqlite.DBFile), logger)
	case config.BackendBolt:
		st, err = bolt.Open(filepath.Join(dir, bolt.DBFile), logger)
	case config.BackendCSV, "":
		st, err = csvstore.Open(dir, logger)
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	return st, dir, nil
}

// Open opens the configured store and builds the services on top of it.
// The caller must Close the returned Services.
func Open(configPath string, cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st, dir, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Storage.Backend, "dir", dir)
	return NewServicesWithStore(st, dir, configPath, cfg, logger), nil
}

// NewServicesWithStore creates a new Services instance over an already
// opened store (useful for testing)
func NewServicesWithStore(st store.Store, dataDir, configPath string, cfg config.Config, logger *slog.Logger) *Services {
	if logger == nil {
		logger = logging.Discard()
	}

	configService := NewConfigService(configPath, cfg)
	entryService := NewEntryService(st, logger)
	tracker := timer.New(dataDir)

	return &Services{
		Profile: NewProfileService(st, configService, tracker, logger),
		Entry:   entryService,
		Stats:   NewStatsService(st, configService),
		Clock:   NewClockService(tracker, entryService, logger),
		Export:  NewExportService(st),
		Storage: NewStorageService(st, cfg.Storage.Backend, dataDir, logger),
		Config:  configService,
		store:   st,
	}
}

// Close releases the underlying store.
func (s *Services) Close() error {
	return s.store.Close()
}
