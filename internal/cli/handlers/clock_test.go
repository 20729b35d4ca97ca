package handlers

import "testing"

func TestClockInStatusCancel(t *testing.T) {
	deps, stdout, stderr, exitCode := setupLoggedIn(t)

	ClockIn(deps, "opening")
	assertExit(t, exitCode, 0)
	assertContains(t, stdout, "Clocked in at")

	ClockIn(deps, "again")
	assertExit(t, exitCode, 1)
	assertContains(t, stderr, "Already clocked in")

	*exitCode = 0
	stdout.Reset()
	ClockStatus(deps)
	assertContains(t, stdout, "Clocked in today at")
	assertContains(t, stdout, "Note: opening")

	ClockCancel(deps)
	assertExit(t, exitCode, 0)
	assertContains(t, stdout, "Discarded clock")

	stdout.Reset()
	ClockStatus(deps)
	assertContains(t, stdout, "Not clocked in")
}

func TestClockOut_NotRunning(t *testing.T) {
	deps, _, stderr, exitCode := setupLoggedIn(t)

	ClockOut(deps)

	assertExit(t, exitCode, 1)
	assertContains(t, stderr, "Error: Not clocked in")
}
