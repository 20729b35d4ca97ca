// Package timer persists running clock-in state, one timer per profile.
package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateFile is the name of the JSON clock state file
const StateFile = "clock.json"

var (
	// ErrRunning is returned when clocking in while already clocked in.
	ErrRunning = errors.New("already clocked in")
	// ErrNotRunning is returned when no clock is running for the profile.
	ErrNotRunning = errors.New("not clocked in")
)

// State represents a running clock for one profile
type State struct {
	ProfileID string    `json:"profile_id"`
	StartedAt time.Time `json:"started_at"`
	Note      string    `json:"note,omitempty"`
}

// Elapsed returns how long the clock has been running at now.
func (s State) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// Tracker reads and writes the clock state file.
type Tracker struct {
	path string
}

// New returns a Tracker storing state in dir/clock.json.
func New(dir string) *Tracker {
	return &Tracker{path: filepath.Join(dir, StateFile)}
}

// Path returns the state file location.
func (t *Tracker) Path() string {
	return t.path
}

// Get returns the running clock for profileID, or nil if none is running.
func (t *Tracker) Get(profileID string) (*State, error) {
	states, err := t.load()
	if err != nil {
		return nil, err
	}
	s, ok := states[profileID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Start records a clock-in for profileID at the given time.
func (t *Tracker) Start(profileID, note string, at time.Time) (State, error) {
	states, err := t.load()
	if err != nil {
		return State{}, err
	}
	if existing, ok := states[profileID]; ok {
		return existing, fmt.Errorf("%w since %s", ErrRunning, existing.StartedAt.Format("15:04"))
	}

	s := State{ProfileID: profileID, StartedAt: at.Round(0), Note: note}
	states[profileID] = s
	if err := t.save(states); err != nil {
		return State{}, err
	}
	return s, nil
}

// Clear removes the running clock for profileID.
// Returns ErrNotRunning if there is none.
func (t *Tracker) Clear(profileID string) (State, error) {
	states, err := t.load()
	if err != nil {
		return State{}, err
	}
	s, ok := states[profileID]
	if !ok {
		return State{}, ErrNotRunning
	}
	delete(states, profileID)
	if err := t.save(states); err != nil {
		return State{}, err
	}
	return s, nil
}

// load reads every running clock keyed by profile id.
// A missing file means no clocks are running.
func (t *Tracker) load() (map[string]State, error) {
	states := map[string]State{}
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return states, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return states, nil
	}
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", t.path, err)
	}
	return states, nil
}

// save writes the states, removing the file once no clock is running.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func (t *Tracker) save(states map[string]State) error {
	if len(states) == 0 {
		if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	// State contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(states, "", "  ")

	tmpFile := t.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, t.path)
}
