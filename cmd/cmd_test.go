package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xolan/shifttrack/internal/config"
)

// testDeps creates test dependencies with captured output and a config
// file whose data directory lives in a temp dir.
func testDeps(t *testing.T, backend string) (*Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, config.ConfigFile)

	content := fmt.Sprintf("[storage]\nbackend = %q\ndir = %q\n", backend, tmpDir)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0
	d := DefaultDeps()
	d.Stdout = stdout
	d.Stderr = stderr
	d.Stdin = strings.NewReader("")
	d.Exit = func(code int) { exitCode = code }
	d.ConfigPath = func() (string, error) { return configPath, nil }
	return d, stdout, stderr, &exitCode
}

// resetFlags restores every flag of c and its subcommands to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args, capturing output.
func executeCommand(t *testing.T, args ...string) {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	_ = rootCmd.Execute()
}

func setup(t *testing.T) (*bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	d, stdout, stderr, exitCode := testDeps(t, config.BackendCSV)
	SetDeps(d)
	t.Cleanup(ResetDeps)
	return stdout, stderr, exitCode
}

// setupLoggedIn signs up u1, logs it in and clears the captured output.
func setupLoggedIn(t *testing.T) (*bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	stdout, stderr, exitCode := setup(t)
	executeCommand(t, "profile", "create", "u1", "--name", "Ada", "--surname", "Lovelace")
	executeCommand(t, "login", "u1")
	if *exitCode != 0 {
		t.Fatalf("setup failed: %s", stderr.String())
	}
	stdout.Reset()
	stderr.Reset()
	return stdout, stderr, exitCode
}

func TestRootCommand_NoProfile(t *testing.T) {
	_, stderr, exitCode := setup(t)

	executeCommand(t)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "No active profile") {
		t.Errorf("expected 'No active profile', got: %s", stderr.String())
	}
}

func TestRootCommand_NoEntries(t *testing.T) {
	stdout, _, _ := setupLoggedIn(t)

	executeCommand(t)

	if !strings.Contains(stdout.String(), "No entries found") {
		t.Errorf("expected 'No entries found', got: %s", stdout.String())
	}
}

func TestAddListDelete_RoundTrip(t *testing.T) {
	stdout, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "add", "--date", "2024-01-01", "--from", "09:00", "--to", "17:00", "--note", "stocktaking")
	if *exitCode != 0 {
		t.Fatalf("add failed: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Logged: 2024-01-01 09:00-17:00") {
		t.Errorf("expected logged line, got: %s", stdout.String())
	}

	stdout.Reset()
	executeCommand(t, "list")
	out := stdout.String()
	if !strings.Contains(out, "stocktaking") || !strings.Contains(out, "8.00h") {
		t.Errorf("expected entry in listing, got: %s", out)
	}

	id := firstEntryID(t, out)
	stdout.Reset()
	executeCommand(t, "delete", id, "--yes")
	if !strings.Contains(stdout.String(), "Deleted: 2024-01-01") {
		t.Errorf("expected deletion, got: %s", stdout.String())
	}

	stdout.Reset()
	executeCommand(t, "list")
	if !strings.Contains(stdout.String(), "No entries found") {
		t.Errorf("expected empty listing, got: %s", stdout.String())
	}
}

// firstEntryID extracts the short id from the first "[id] ..." line.
func firstEntryID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "[") {
			if end := strings.Index(line, "]"); end > 0 {
				return line[1:end]
			}
		}
	}
	t.Fatalf("no entry id in output: %s", out)
	return ""
}

func TestAdd_EndBeforeStart(t *testing.T) {
	stdout, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "add", "--date", "2024-01-01", "--from", "17:00", "--to", "09:00")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Invalid") {
		t.Errorf("expected validation error, got: %s", stderr.String())
	}

	stdout.Reset()
	*exitCode = 0
	executeCommand(t, "list")
	if !strings.Contains(stdout.String(), "No entries found") {
		t.Errorf("rejected entry must not be stored, got: %s", stdout.String())
	}
}

func TestDelete_NotFound(t *testing.T) {
	_, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "delete", "deadbeef", "--yes")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "not found") {
		t.Errorf("expected not found error, got: %s", stderr.String())
	}
}

func TestProfileFlag_IsolatesEntries(t *testing.T) {
	stdout, stderr, exitCode := setupLoggedIn(t)
	executeCommand(t, "profile", "create", "u2", "--name", "Alan", "--surname", "Turing")
	executeCommand(t, "add", "--date", "2024-01-01", "--duration", "2h", "--note", "mine")
	if *exitCode != 0 {
		t.Fatalf("setup failed: %s", stderr.String())
	}

	stdout.Reset()
	executeCommand(t, "list", "--profile", "u2")
	if strings.Contains(stdout.String(), "mine") {
		t.Errorf("u1's entry leaked into u2's listing: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "No entries found") {
		t.Errorf("expected empty listing for u2, got: %s", stdout.String())
	}
}

func TestLogin_InvalidUserID(t *testing.T) {
	_, stderr, exitCode := setup(t)

	executeCommand(t, "login", "ghost")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Invalid User ID") {
		t.Errorf("expected 'Invalid User ID', got: %s", stderr.String())
	}
}

func TestWhoAmI_AfterLogout(t *testing.T) {
	stdout, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "whoami")
	if !strings.Contains(stdout.String(), "u1 (Ada Lovelace)") {
		t.Errorf("expected active profile, got: %s", stdout.String())
	}

	executeCommand(t, "logout")
	executeCommand(t, "whoami")
	if *exitCode != 1 {
		t.Errorf("expected exit code 1 after logout, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "No active profile") {
		t.Errorf("expected 'No active profile', got: %s", stderr.String())
	}
}

func TestProfileCreate_Duplicate(t *testing.T) {
	_, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "profile", "create", "u1", "--name", "Grace", "--surname", "Hopper")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Errorf("expected 'already exists', got: %s", stderr.String())
	}
}

func TestStats_Range(t *testing.T) {
	stdout, _, _ := setupLoggedIn(t)
	executeCommand(t, "add", "--date", "2024-01-01", "--from", "09:00", "--to", "12:30")

	stdout.Reset()
	executeCommand(t, "stats", "--from", "2024-01-01", "--to", "2024-01-07")

	if !strings.Contains(stdout.String(), "3.50h") {
		t.Errorf("expected 3.50h total, got: %s", stdout.String())
	}
}

func TestStats_InvalidRange(t *testing.T) {
	_, stderr, exitCode := setupLoggedIn(t)

	executeCommand(t, "stats", "--from", "not-a-date")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("expected error, got: %s", stderr.String())
	}
}

func TestExport_CSV(t *testing.T) {
	stdout, _, _ := setupLoggedIn(t)
	executeCommand(t, "add", "--date", "2024-01-01", "--from", "09:00", "--to", "17:00")

	stdout.Reset()
	executeCommand(t, "export", "csv")

	if !strings.HasPrefix(stdout.String(), "id,date,start,end,duration_minutes,hours,note\n") {
		t.Errorf("expected csv header, got: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "2024-01-01,09:00,17:00,480,8.00") {
		t.Errorf("expected csv row, got: %s", stdout.String())
	}
}

func TestClock_StatusNotRunning(t *testing.T) {
	stdout, _, _ := setupLoggedIn(t)

	executeCommand(t, "clock", "status")

	if !strings.Contains(stdout.String(), "Not clocked in") {
		t.Errorf("expected 'Not clocked in', got: %s", stdout.String())
	}
}

func TestValidate_Command(t *testing.T) {
	stdout, _, _ := setupLoggedIn(t)

	executeCommand(t, "validate")

	if !strings.Contains(stdout.String(), "Profiles:          1") {
		t.Errorf("expected health report, got: %s", stdout.String())
	}
}

func TestRestore_InvalidNumber(t *testing.T) {
	_, stderr, exitCode := setup(t)

	executeCommand(t, "restore", "zero")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Invalid backup number 'zero'") {
		t.Errorf("expected invalid backup number, got: %s", stderr.String())
	}
}

func TestConfig_Path(t *testing.T) {
	stdout, _, _ := setup(t)

	executeCommand(t, "config", "--path")

	if !strings.Contains(stdout.String(), config.ConfigFile) {
		t.Errorf("expected config path, got: %s", stdout.String())
	}
}

func TestTimezone_AppliedToToday(t *testing.T) {
	local := time.Local
	t.Cleanup(func() { time.Local = local })

	d, stdout, stderr, exitCode := testDeps(t, config.BackendCSV)
	configPath, _ := d.ConfigPath()
	content := fmt.Sprintf("timezone = %q\n\n[storage]\nbackend = %q\ndir = %q\n",
		"Pacific/Kiritimati", config.BackendCSV, filepath.Dir(configPath))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	SetDeps(d)
	t.Cleanup(ResetDeps)

	executeCommand(t, "profile", "create", "u1", "--name", "Ada", "--surname", "Lovelace")
	executeCommand(t, "add", "--profile", "u1", "--duration", "1h")
	if *exitCode != 0 {
		t.Fatalf("add failed: %s", stderr.String())
	}

	if time.Local.String() != "Pacific/Kiritimati" {
		t.Fatalf("expected configured timezone to be applied, got %s", time.Local)
	}
	loc, err := time.LoadLocation("Pacific/Kiritimati")
	if err != nil {
		t.Fatal(err)
	}
	today := time.Now().In(loc).Format("2006-01-02")
	if !strings.Contains(stdout.String(), "Logged: "+today) {
		t.Errorf("expected entry dated %s, got: %s", today, stdout.String())
	}
}

func TestOpenStorage_Failure(t *testing.T) {
	d, _, stderr, exitCode := testDeps(t, "paper")
	SetDeps(d)
	t.Cleanup(ResetDeps)

	executeCommand(t, "list")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("expected error, got: %s", stderr.String())
	}
}

func TestBackends_RoundTrip(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			d, stdout, stderr, exitCode := testDeps(t, backend)
			SetDeps(d)
			t.Cleanup(ResetDeps)

			executeCommand(t, "profile", "create", "u1", "--name", "Ada", "--surname", "Lovelace")
			executeCommand(t, "add", "-p", "u1", "--date", "2024-01-01", "--from", "09:00", "--to", "17:00")
			if *exitCode != 0 {
				t.Fatalf("add failed: %s", stderr.String())
			}

			stdout.Reset()
			executeCommand(t, "list", "-p", "u1")
			if !strings.Contains(stdout.String(), "09:00-17:00") {
				t.Errorf("expected entry on %s backend, got: %s", backend, stdout.String())
			}
		})
	}
}
