// Package storetest is a conformance suite run against every store backend.
package storetest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/store"
)

// Factory opens an empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

// Run executes the full suite against stores produced by open.
func Run(t *testing.T, open Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"CreateAndGetProfile", testCreateAndGetProfile},
		{"DuplicateProfile", testDuplicateProfile},
		{"ListProfilesSorted", testListProfilesSorted},
		{"UpdateProfile", testUpdateProfile},
		{"AddListRoundTrip", testAddListRoundTrip},
		{"DurationOnlyEntry", testDurationOnlyEntry},
		{"ListOrder", testListOrder},
		{"ProfileIsolation", testProfileIsolation},
		{"AddToUnknownProfile", testAddToUnknownProfile},
		{"ListUnknownProfile", testListUnknownProfile},
		{"DeleteEntry", testDeleteEntry},
		{"GetEntry", testGetEntry},
		{"DeleteProfileCascades", testDeleteProfileCascades},
		{"NoteWithSeparators", testNoteWithSeparators},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

// Day returns local midnight of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// MustProfile creates and stores a profile.
func MustProfile(t *testing.T, s store.Store, id string) profile.Profile {
	t.Helper()
	p, err := profile.New(id, "Test", "User")
	require.NoError(t, err)
	require.NoError(t, s.CreateProfile(p))
	return p
}

// MustEntry builds and stores an entry with a HH:MM range.
func MustEntry(t *testing.T, s store.Store, profileID string, date time.Time, from, to, note string) entry.Entry {
	t.Helper()
	start, err := entry.ParseClock(from)
	require.NoError(t, err)
	end, err := entry.ParseClock(to)
	require.NoError(t, err)

	e, err := entry.New(entry.Spec{ProfileID: profileID, Date: date, Start: start, End: end, Note: note})
	require.NoError(t, err)
	require.NoError(t, s.AddEntry(e))
	return e
}

// AssertEntryEqual compares entries field by field, using time.Equal for times.
func AssertEntryEqual(t *testing.T, want, got entry.Entry) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ProfileID, got.ProfileID)
	assert.True(t, want.Date.Equal(got.Date), "date: want %v, got %v", want.Date, got.Date)
	assert.Equal(t, want.Start, got.Start)
	assert.Equal(t, want.End, got.End)
	assert.Equal(t, want.DurationMinutes, got.DurationMinutes)
	assert.Equal(t, want.Note, got.Note)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", want.CreatedAt, got.CreatedAt)
}

func testCreateAndGetProfile(t *testing.T, s store.Store) {
	p := MustProfile(t, s, "u1")

	got, err := s.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Test", got.Name)
	assert.Equal(t, "User", got.Surname)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	_, err = s.GetProfile("missing")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func testDuplicateProfile(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")

	p, err := profile.New("u1", "Other", "Person")
	require.NoError(t, err)
	assert.ErrorIs(t, s.CreateProfile(p), store.ErrProfileExists)
}

func testListProfilesSorted(t *testing.T, s store.Store) {
	profiles, err := s.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	MustProfile(t, s, "zed")
	MustProfile(t, s, "amy")
	MustProfile(t, s, "mo")

	profiles, err = s.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, []string{"amy", "mo", "zed"}, []string{profiles[0].ID, profiles[1].ID, profiles[2].ID})
}

func testUpdateProfile(t *testing.T, s store.Store) {
	p := MustProfile(t, s, "u1")
	p.Name = "Renamed"
	require.NoError(t, s.UpdateProfile(p))

	got, err := s.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	ghost, err := profile.New("ghost", "No", "One")
	require.NoError(t, err)
	assert.ErrorIs(t, s.UpdateProfile(ghost), store.ErrProfileNotFound)
}

func testAddListRoundTrip(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	e := MustEntry(t, s, "u1", Day(2024, time.January, 1), "09:00", "17:00", "opening shift")

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	AssertEntryEqual(t, e, entries[0])
	assert.Equal(t, 8.0, entries[0].Hours())
}

func testDurationOnlyEntry(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	e, err := entry.New(entry.Spec{
		ProfileID: "u1",
		Date:      Day(2024, time.February, 29),
		Start:     entry.NoClock,
		End:       entry.NoClock,
		Duration:  95,
	})
	require.NoError(t, err)
	require.NoError(t, s.AddEntry(e))

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	AssertEntryEqual(t, e, entries[0])
	assert.False(t, entries[0].HasRange())
}

func testListOrder(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	late := MustEntry(t, s, "u1", Day(2024, time.March, 2), "13:00", "14:00", "")
	early := MustEntry(t, s, "u1", Day(2024, time.March, 1), "15:00", "16:00", "")
	morning := MustEntry(t, s, "u1", Day(2024, time.March, 2), "08:00", "09:00", "")

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, early.ID, entries[0].ID)
	assert.Equal(t, morning.ID, entries[1].ID)
	assert.Equal(t, late.ID, entries[2].ID)
}

func testProfileIsolation(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	MustProfile(t, s, "u2")
	mine := MustEntry(t, s, "u1", Day(2024, time.April, 1), "09:00", "10:00", "")
	theirs := MustEntry(t, s, "u2", Day(2024, time.April, 1), "09:00", "10:00", "")

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)

	entries, err = s.ListEntries("u2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, theirs.ID, entries[0].ID)
}

func testAddToUnknownProfile(t *testing.T, s store.Store) {
	e, err := entry.New(entry.Spec{
		ProfileID: "ghost",
		Date:      Day(2024, time.May, 1),
		Start:     entry.NewClock(9, 0),
		End:       entry.NewClock(10, 0),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, s.AddEntry(e), store.ErrProfileNotFound)
}

func testListUnknownProfile(t *testing.T, s store.Store) {
	_, err := s.ListEntries("ghost")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func testDeleteEntry(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	e := MustEntry(t, s, "u1", Day(2024, time.January, 1), "09:00", "17:00", "")
	keep := MustEntry(t, s, "u1", Day(2024, time.January, 2), "09:00", "17:00", "")

	deleted, err := s.DeleteEntry(e.ID)
	require.NoError(t, err)
	AssertEntryEqual(t, e, deleted)

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)

	_, err = s.DeleteEntry(e.ID)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func testGetEntry(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	e := MustEntry(t, s, "u1", Day(2024, time.June, 3), "07:15", "11:45", "early")

	got, err := s.GetEntry(e.ID)
	require.NoError(t, err)
	AssertEntryEqual(t, e, got)

	_, err = s.GetEntry("nope")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func testDeleteProfileCascades(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	MustProfile(t, s, "u2")
	var ids []string
	for i := 1; i <= 3; i++ {
		e := MustEntry(t, s, "u1", Day(2024, time.July, i), "09:00", "10:00", fmt.Sprintf("day %d", i))
		ids = append(ids, e.ID)
	}
	other := MustEntry(t, s, "u2", Day(2024, time.July, 1), "09:00", "10:00", "")

	removed, err := s.DeleteProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	_, err = s.GetProfile("u1")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	for _, id := range ids {
		_, err := s.GetEntry(id)
		assert.ErrorIs(t, err, store.ErrEntryNotFound)
	}

	got, err := s.GetEntry(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ProfileID)

	_, err = s.DeleteProfile("u1")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func testNoteWithSeparators(t *testing.T, s store.Store) {
	MustProfile(t, s, "u1")
	e := MustEntry(t, s, "u1", Day(2024, time.August, 8), "10:00", "12:30", `stock, "deep" clean; café`)

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.Note, entries[0].Note)
}
