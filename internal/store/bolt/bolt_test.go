package bolt

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/store/storetest"
	"go.etcd.io/bbolt"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := Open(filepath.Join(t.TempDir(), DBFile), nil)
		require.NoError(t, err)
		return s
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	s, err := Open(path, nil)
	require.NoError(t, err)
	storetest.MustProfile(t, s, "u1")
	e := storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "17:00", "x")
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	storetest.AssertEntryEqual(t, e, entries[0])
}

func TestOpenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	s, err := Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = Open(path, nil)
	assert.Error(t, err, "second open should time out on the file lock")
}

func TestCheck_Orphans(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), DBFile), nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	storetest.MustProfile(t, s, "u1")
	storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "10:00", "")

	// Remove the profile key directly, leaving its entry behind.
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketProfiles)).Delete([]byte("u1"))
	}))

	health, err := s.Check()
	require.NoError(t, err)
	assert.Equal(t, 0, health.Profiles)
	assert.Equal(t, 1, health.Entries)
	assert.Equal(t, 1, health.Orphans)
	assert.False(t, health.OK())
}
