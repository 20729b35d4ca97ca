package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xolan/shifttrack/internal/config"
)

func TestNewDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultProfile = "u1"

	deps := NewDeps(nil, cfg)
	if deps == nil {
		t.Fatal("expected non-nil deps")
	}
	if deps.Stdout == nil || deps.Stderr == nil || deps.Stdin == nil {
		t.Error("expected process streams to be set")
	}
	if deps.Exit == nil {
		t.Error("expected non-nil Exit")
	}
	if deps.Config.DefaultProfile != "u1" {
		t.Errorf("Config not carried over: %+v", deps.Config)
	}
	if deps.Profile != "" {
		t.Errorf("Profile override should start empty, got %q", deps.Profile)
	}
}

func TestDeps_WithIO(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := -1

	deps := NewDeps(nil, config.DefaultConfig()).WithIO(&stdout, &stderr, strings.NewReader("y\n"), func(c int) { code = c })

	_, _ = deps.Stdout.Write([]byte("out"))
	_, _ = deps.Stderr.Write([]byte("err"))
	deps.Exit(3)

	if stdout.String() != "out" || stderr.String() != "err" {
		t.Errorf("streams not replaced: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if deps.Stdin == nil {
		t.Error("expected stdin to be set")
	}
}
