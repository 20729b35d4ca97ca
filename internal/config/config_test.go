package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/shifttrack/internal/app"
	"github.com/xolan/shifttrack/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WeekStartDay != "monday" {
		t.Errorf("WeekStartDay = %q, expected monday", cfg.WeekStartDay)
	}
	if cfg.Timezone != "Local" {
		t.Errorf("Timezone = %q, expected Local", cfg.Timezone)
	}
	if cfg.Storage.Backend != BackendCSV {
		t.Errorf("Storage.Backend = %q, expected csv", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, expected warn/text", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "all fields set",
			content: `week_start_day = "sunday"
timezone = "America/New_York"
theme = "nord"
default_profile = "u1"

[storage]
backend = "sqlite"
dir = "/var/lib/shifts"

[log]
level = "debug"
format = "json"
`,
			check: func(t *testing.T, cfg Config) {
				if cfg.WeekStartDay != "sunday" || cfg.Timezone != "America/New_York" {
					t.Errorf("unexpected week/timezone: %+v", cfg)
				}
				if cfg.DefaultProfile != "u1" || cfg.Theme != "nord" {
					t.Errorf("unexpected profile/theme: %+v", cfg)
				}
				if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Dir != "/var/lib/shifts" {
					t.Errorf("unexpected storage: %+v", cfg.Storage)
				}
				if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
					t.Errorf("unexpected log: %+v", cfg.Log)
				}
			},
		},
		{
			name:    "partial config keeps defaults",
			content: `week_start_day = "sunday"`,
			check: func(t *testing.T, cfg Config) {
				if cfg.WeekStartDay != "sunday" {
					t.Errorf("WeekStartDay = %q", cfg.WeekStartDay)
				}
				if cfg.Storage.Backend != BackendCSV {
					t.Errorf("Storage.Backend = %q, expected default csv", cfg.Storage.Backend)
				}
			},
		},
		{
			name:    "values are normalised",
			content: "week_start_day = \"  MONDAY \"\n[storage]\nbackend = \"BOLT\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.WeekStartDay != "monday" || cfg.Storage.Backend != BackendBolt {
					t.Errorf("values not normalised: %+v", cfg)
				}
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, cfg Config) {
				if cfg != DefaultConfig() {
					t.Errorf("empty file should give defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"invalid toml", `week_start_day = `, "failed to parse"},
		{"bad week start", `week_start_day = "friday"`, "week_start_day"},
		{"bad timezone", `timezone = "Mars/Olympus"`, "invalid timezone"},
		{"bad backend", "[storage]\nbackend = \"mongo\"", "storage.backend"},
		{"bad log level", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad log format", "[log]\nformat = \"xml\"", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should return an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q should mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	path := createTempConfigFile(t, `week_start_day = "someday"`)
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("LoadOrDefault() should return the validation error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)

	cfg := DefaultConfig()
	cfg.DefaultProfile = "u1"
	cfg.Storage.Backend = BackendBolt
	cfg.Log.Level = "debug"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	for _, key := range []string{"# week_start_day", "# timezone", "# backend", "# level", "[storage]", "[log]"} {
		if !strings.Contains(content, key) {
			t.Errorf("sample config should contain %q", key)
		}
	}

	// The sample must itself be a loadable config.
	path := createTempConfigFile(t, content)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("sample config should load as defaults, got %+v", cfg)
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Location() = %v, %v", loc, err)
	}

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestDataDir_Override(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Dir = "/srv/shifts"
	dir, err := cfg.DataDir()
	if err != nil || dir != "/srv/shifts" {
		t.Errorf("DataDir() = %q, %v", dir, err)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()
	base := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return base, nil },
		mkdirAllFn:      os.MkdirAll,
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
	}
	if path != filepath.Join(base, app.Name, ConfigFile) {
		t.Errorf("GetConfigPath() = %q", path)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}
