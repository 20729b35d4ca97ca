package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/store/csvstore"
)

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()

	st, err := csvstore.Open(tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	services := service.NewServicesWithStore(st, tmpDir, filepath.Join(tmpDir, config.ConfigFile), cfg, nil)
	t.Cleanup(func() { _ = services.Close() })

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}

	return deps, stdout, stderr, &exitCode
}

// setupLoggedIn creates profile u1 and makes it active.
func setupLoggedIn(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	if _, err := deps.Services.Profile.Create("u1", "Ada", "Lovelace"); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if _, err := deps.Services.Profile.Login("u1"); err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	return deps, stdout, stderr, exitCode
}

func assertExit(t *testing.T, exitCode *int, want int) {
	t.Helper()
	if *exitCode != want {
		t.Errorf("expected exit code %d, got %d", want, *exitCode)
	}
}

func assertContains(t *testing.T, buf *bytes.Buffer, want string) {
	t.Helper()
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in output, got %q", want, buf.String())
	}
}
