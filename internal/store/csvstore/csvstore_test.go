package csvstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/store/storetest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTemp(t)
	})
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := Open(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilesHaveHeaders(t *testing.T) {
	s := openTemp(t)
	storetest.MustProfile(t, s, "u1")
	storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "17:00", "")

	profiles, err := os.ReadFile(filepath.Join(s.dir, ProfilesFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(profiles), "id,name,surname,created_at\n"))

	entries, err := os.ReadFile(filepath.Join(s.dir, EntriesFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(entries)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,profile_id,date,start,end,duration_minutes,note,created_at", lines[0])
	assert.Contains(t, lines[1], ",u1,2024-01-01,09:00,17:00,480,,")
}

func TestMalformedRowsBecomeWarnings(t *testing.T) {
	s := openTemp(t)
	storetest.MustProfile(t, s, "u1")
	good := storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "17:00", "")

	f, err := os.OpenFile(filepath.Join(s.dir, EntriesFile), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n" +
		"x1,u1,2024-13-01,09:00,10:00,60,,2024-01-01T00:00:00Z\n" +
		"x2,u1,2024-01-02,10:00,09:00,60,,2024-01-01T00:00:00Z\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, good.ID, entries[0].ID)

	health, err := s.Check()
	require.NoError(t, err)
	assert.Equal(t, 1, health.Entries)
	require.Len(t, health.Warnings, 3)
	assert.Equal(t, 3, health.Warnings[0].LineNumber)
	assert.Equal(t, "garbage", health.Warnings[0].Content)
	assert.Contains(t, health.Warnings[0].Error, EntriesFile)
	assert.False(t, health.OK())
}

func TestCheck_Orphans(t *testing.T) {
	s := openTemp(t)
	storetest.MustProfile(t, s, "u1")
	storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "17:00", "")

	require.NoError(t, os.Remove(filepath.Join(s.dir, ProfilesFile)))

	health, err := s.Check()
	require.NoError(t, err)
	assert.Equal(t, 1, health.Orphans)
}

func TestCheck_Empty(t *testing.T) {
	s := openTemp(t)
	health, err := s.Check()
	require.NoError(t, err)
	assert.True(t, health.OK())
	assert.Equal(t, 0, health.Entries)
}

func TestWriteTable_NoTempFileLeft(t *testing.T) {
	s := openTemp(t)
	storetest.MustProfile(t, s, "u1")
	e := storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "17:00", "")
	_, err := s.DeleteEntry(e.ID)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(s.dir, EntriesFile+".tmp"))
	assert.True(t, os.IsNotExist(err))
}
