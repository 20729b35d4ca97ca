package main

import (
	"os"
	"testing"
)

func TestRun_Version(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"shifttrack", "--version"}
	if code := run(); code != 0 {
		t.Errorf("run() = %d, want 0", code)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"shifttrack", "--unknownflag"}
	if code := run(); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}

func TestMain_UsesExitFunc(t *testing.T) {
	oldArgs := os.Args
	oldExit := exitFunc
	defer func() {
		os.Args = oldArgs
		exitFunc = oldExit
	}()

	os.Args = []string{"shifttrack", "--version"}
	got := -1
	exitFunc = func(code int) { got = code }
	main()
	if got != 0 {
		t.Errorf("exit code = %d, want 0", got)
	}
}
