package handlers

import "testing"

func TestShowConfig(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowConfig(deps)

	assertExit(t, exitCode, 0)
	assertContains(t, stdout, "Status: Using defaults (no config file)")
	assertContains(t, stdout, "week_start_day:  monday")
	assertContains(t, stdout, "storage.backend: csv")
	assertContains(t, stdout, "default_profile: (none)")
}

func TestInitConfig(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	InitConfig(deps)
	assertExit(t, exitCode, 0)
	assertContains(t, stdout, "Created config file:")

	InitConfig(deps)
	assertExit(t, exitCode, 1)
	assertContains(t, stderr, "already exists")
}

func TestShowConfigPath(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	ShowConfigPath(deps)

	assertContains(t, stdout, "config.toml")
}
