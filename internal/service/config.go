package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xolan/shifttrack/internal/config"
)

// ConfigService holds the effective configuration and the file it came from.
// The active profile is part of it, so login and logout go through here.
type ConfigService struct {
	path string
	cfg  config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.cfg
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file is on disk.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update normalises and validates cfg, saves it and makes it current.
// On error the current configuration is left untouched.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Save(s.path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	s.cfg = cfg
	return nil
}

// SetActiveProfile persists id as the default profile. An empty id clears it.
func (s *ConfigService) SetActiveProfile(id string) error {
	cfg := s.cfg
	cfg.DefaultProfile = id
	return s.Update(cfg)
}

// Init writes the commented sample config and loads it. It refuses to
// overwrite an existing file.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return s.Reload()
}

// Reload replaces the current configuration with the file's contents.
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg
	return nil
}
