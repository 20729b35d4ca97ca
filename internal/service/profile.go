package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/timer"
)

// Profile-specific errors
var (
	ErrNoActiveProfile = errors.New("no active profile")
	ErrNoChanges       = errors.New("no changes specified")
)

// ProfileService provides operations on profiles and the active profile
type ProfileService struct {
	store   store.Store
	config  *ConfigService
	tracker *timer.Tracker
	log     *slog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(st store.Store, cfg *ConfigService, tracker *timer.Tracker, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: st, config: cfg, tracker: tracker, log: logger}
}

// Create validates and stores a new profile.
func (s *ProfileService) Create(id, name, surname string) (profile.Profile, error) {
	p, err := profile.New(id, name, surname)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := s.store.CreateProfile(p); err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			return profile.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileExists, p.ID)
		}
		return profile.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	s.log.Info("profile created", "profile", p.ID)
	return p, nil
}

// Get returns the profile with the given id.
func (s *ProfileService) Get(id string) (profile.Profile, error) {
	return s.store.GetProfile(id)
}

// List returns every profile ordered by id.
func (s *ProfileService) List() ([]profile.Profile, error) {
	return s.store.ListProfiles()
}

// Rename changes the name and/or surname of a profile. Empty values are
// left unchanged.
func (s *ProfileService) Rename(id, name, surname string) (profile.Profile, error) {
	if name == "" && surname == "" {
		return profile.Profile{}, ErrNoChanges
	}

	p, err := s.store.GetProfile(id)
	if err != nil {
		return profile.Profile{}, err
	}
	if name != "" {
		p.Name = profile.NormalizeName(name)
	}
	if surname != "" {
		p.Surname = profile.NormalizeName(surname)
	}
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}

	if err := s.store.UpdateProfile(p); err != nil {
		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	s.log.Info("profile renamed", "profile", p.ID)
	return p, nil
}

// Delete removes a profile and every entry it owns, returning the number
// of entries removed. A running clock is discarded and deleting the active
// profile also logs out.
func (s *ProfileService) Delete(id string) (int, error) {
	removed, err := s.store.DeleteProfile(id)
	if err != nil {
		return 0, err
	}
	s.log.Info("profile deleted", "profile", id, "entries", removed)

	if _, err := s.tracker.Clear(id); err != nil && !errors.Is(err, timer.ErrNotRunning) {
		return removed, fmt.Errorf("profile deleted but failed to discard its clock: %w", err)
	}

	if s.config.Get().DefaultProfile == id {
		if err := s.config.SetActiveProfile(""); err != nil {
			return removed, fmt.Errorf("profile deleted but failed to clear active profile: %w", err)
		}
	}
	return removed, nil
}

// Login makes id the active profile. The profile must exist.
func (s *ProfileService) Login(id string) (profile.Profile, error) {
	p, err := s.store.GetProfile(id)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := s.config.SetActiveProfile(p.ID); err != nil {
		return profile.Profile{}, fmt.Errorf("failed to save active profile: %w", err)
	}
	s.log.Debug("logged in", "profile", p.ID)
	return p, nil
}

// Logout clears the active profile.
func (s *ProfileService) Logout() error {
	if s.config.Get().DefaultProfile == "" {
		return ErrNoActiveProfile
	}
	return s.config.SetActiveProfile("")
}

// Active returns the active profile.
// Returns ErrNoActiveProfile when nobody is logged in.
func (s *ProfileService) Active() (profile.Profile, error) {
	id := s.config.Get().DefaultProfile
	if id == "" {
		return profile.Profile{}, ErrNoActiveProfile
	}
	return s.store.GetProfile(id)
}

// Resolve returns the profile named by override, falling back to the
// active profile when override is empty.
func (s *ProfileService) Resolve(override string) (profile.Profile, error) {
	if override != "" {
		return s.store.GetProfile(override)
	}
	return s.Active()
}
