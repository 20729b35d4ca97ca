package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/timeutil"
	"github.com/xolan/shifttrack/internal/validation"
)

func filterAll() filter.Filter {
	return filter.Filter{}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func withProfile(t *testing.T, ids ...string) *Services {
	t.Helper()
	svc := newTestServices(t)
	for _, id := range ids {
		_, err := svc.Profile.Create(id, "Test", "User")
		require.NoError(t, err)
	}
	return svc
}

func TestEntryService_AddListDelete(t *testing.T) {
	svc := withProfile(t, "u1")

	e, err := svc.Entry.Add(AddRequest{ProfileID: "u1", Date: "2024-01-01", From: "09:00", To: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, 480, e.DurationMinutes)

	result, err := svc.Entry.List("u1", filterAll())
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, e.ID, result.Entries[0].ID)
	assert.Equal(t, 480, result.Total)
	assert.Equal(t, 8.0, result.TotalHours())
	assert.Equal(t, "all time", result.Period)

	deleted, err := svc.Entry.Delete("u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, deleted.ID)

	result, err = svc.Entry.List("u1", filterAll())
	require.NoError(t, err)
	assert.Empty(t, result.Entries)

	_, err = svc.Entry.Delete("u1", e.ID)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestEntryService_Add_Variants(t *testing.T) {
	svc := withProfile(t, "u1")
	fixedNow(svc, time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))

	tests := []struct {
		name    string
		req     AddRequest
		start   string
		end     string
		minutes int
		date    string
	}{
		{"range", AddRequest{Date: "2024-03-01", From: "08:30", To: "12:00"}, "08:30", "12:00", 210, "2024-03-01"},
		{"start and duration", AddRequest{Date: "01/03/2024", From: "13:00", Duration: "4h"}, "13:00", "17:00", 240, "2024-03-01"},
		{"duration only", AddRequest{Date: "2024-03-02", Duration: "7h30m"}, "", "", 450, "2024-03-02"},
		{"defaults to today", AddRequest{Duration: "1h"}, "", "", 60, "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.ProfileID = "u1"
			e, err := svc.Entry.Add(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.start, e.Start.String())
			assert.Equal(t, tt.end, e.End.String())
			assert.Equal(t, tt.minutes, e.DurationMinutes)
			assert.Equal(t, tt.date, e.DateString())
		})
	}
}

func TestEntryService_Add_Errors(t *testing.T) {
	svc := withProfile(t, "u1")

	tests := []struct {
		name  string
		req   AddRequest
		field string
	}{
		{"end before start", AddRequest{Date: "2024-01-01", From: "17:00", To: "09:00"}, "end"},
		{"end equals start", AddRequest{Date: "2024-01-01", From: "09:00", To: "09:00"}, "end"},
		{"bad date", AddRequest{Date: "2024-13-01", Duration: "1h"}, "date"},
		{"bad start", AddRequest{Date: "2024-01-01", From: "9am", To: "17:00"}, "start"},
		{"bad end", AddRequest{Date: "2024-01-01", From: "09:00", To: "25:00"}, "end"},
		{"bad duration", AddRequest{Date: "2024-01-01", Duration: "forever"}, "duration"},
		{"no time at all", AddRequest{Date: "2024-01-01"}, "time"},
		{"past midnight", AddRequest{Date: "2024-01-01", From: "22:00", Duration: "3h"}, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.ProfileID = "u1"
			_, err := svc.Entry.Add(tt.req)
			require.Error(t, err)
			assert.True(t, validation.Is(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), "invalid "+tt.field)
		})
	}

	result, err := svc.Entry.List("u1", filterAll())
	require.NoError(t, err)
	assert.Empty(t, result.Entries, "rejected entries must not be stored")
}

func TestEntryService_Add_UnknownProfile(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Entry.Add(AddRequest{ProfileID: "ghost", Date: "2024-01-01", Duration: "1h"})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	_, err = svc.Entry.List("ghost", filterAll())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestEntryService_List_FilterAndIsolation(t *testing.T) {
	svc := withProfile(t, "u1", "u2")

	adds := []AddRequest{
		{ProfileID: "u1", Date: "2024-01-03", Duration: "2h", Note: "stocktake"},
		{ProfileID: "u1", Date: "2024-01-01", From: "09:00", To: "12:00", Note: "Morning till"},
		{ProfileID: "u1", Date: "2024-01-10", Duration: "1h"},
		{ProfileID: "u2", Date: "2024-01-02", Duration: "5h"},
	}
	for _, req := range adds {
		_, err := svc.Entry.Add(req)
		require.NoError(t, err)
	}

	result, err := svc.Entry.List("u1", filterAll())
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "2024-01-01", result.Entries[0].DateString())
	assert.Equal(t, "2024-01-03", result.Entries[1].DateString())
	assert.Equal(t, "2024-01-10", result.Entries[2].DateString())
	for _, e := range result.Entries {
		assert.Equal(t, "u1", e.ProfileID)
	}

	r := timeutil.Range{Start: day(2024, 1, 1), End: timeutil.EndOfDay(day(2024, 1, 5))}
	result, err = svc.Entry.List("u1", filter.Filter{Range: r})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, 300, result.Total)
	assert.Equal(t, "2024-01-01 to 2024-01-05", result.Period)

	result, err = svc.Entry.List("u1", filter.Filter{Keyword: "TILL"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Morning till", result.Entries[0].Note)
}

func TestEntryService_Resolve(t *testing.T) {
	svc := withProfile(t, "u1", "u2")

	add := func(id, profileID string) {
		e, err := entry.New(entry.Spec{ProfileID: profileID, Date: day(2024, 1, 1), Start: entry.NoClock, End: entry.NoClock, Duration: 60})
		require.NoError(t, err)
		e.ID = id
		require.NoError(t, svc.Entry.store.AddEntry(e))
	}
	add("abcd1111-0000", "u1")
	add("abcd2222-0000", "u1")
	add("ffff0000-0000", "u2")

	e, err := svc.Entry.Resolve("u1", "abcd1")
	require.NoError(t, err)
	assert.Equal(t, "abcd1111-0000", e.ID)

	e, err = svc.Entry.Resolve("u1", "abcd2222-0000")
	require.NoError(t, err)
	assert.Equal(t, "abcd2222-0000", e.ID)

	_, err = svc.Entry.Resolve("u1", "abcd")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = svc.Entry.Resolve("u1", "abc")
	assert.ErrorIs(t, err, ErrIDTooShort)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	_, err = svc.Entry.Resolve("u1", "9999")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	// Another profile's entry is invisible, by prefix or by full id.
	_, err = svc.Entry.Resolve("u1", "ffff")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
	_, err = svc.Entry.Resolve("u1", "ffff0000-0000")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	_, err = svc.Entry.Delete("u1", "ffff0000-0000")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
	_, err = svc.Entry.Resolve("u2", "ffff0000-0000")
	assert.NoError(t, err)
}

func TestEntryService_DeleteShortAbsentIDIsNotFound(t *testing.T) {
	svc := withProfile(t, "u1")

	for _, ref := range []string{"abc", "a", ""} {
		_, err := svc.Entry.Delete("u1", ref)
		require.Error(t, err, "ref %q", ref)
		assert.ErrorIs(t, err, store.ErrEntryNotFound, "ref %q", ref)
	}
}

func TestEntryService_Add_NoteIsSingleLine(t *testing.T) {
	svc := withProfile(t, "u1")

	e, err := svc.Entry.Add(AddRequest{ProfileID: "u1", Date: "2024-01-01", Duration: "1h", Note: "line one\nline two"})
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(e.Note, "\r\n"))
	assert.Equal(t, "line one line two", e.Note)
}
