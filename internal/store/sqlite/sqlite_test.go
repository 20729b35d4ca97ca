package sqlite

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/store/storetest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DBFile), nil)
	require.NoError(t, err)
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTemp(t)
	})
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	s, err := Open(path, nil)
	require.NoError(t, err)
	storetest.MustProfile(t, s, "u1")
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	version, err := NewMigrator(s.db).CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	_, err = s.GetProfile("u1")
	assert.NoError(t, err)
}

func TestLoadMigrations_EveryEmbeddedFileIsApplied(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*")
	require.NoError(t, err)

	migrations, err := NewMigrator(nil).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, len(files))

	for i, mig := range migrations {
		assert.Equal(t, i+1, mig.Version)
		assert.NotEmpty(t, mig.UpSQL)
	}
}

func TestForeignKeyCascade(t *testing.T) {
	s := openTemp(t)
	defer func() { _ = s.Close() }()

	storetest.MustProfile(t, s, "u1")
	storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "10:00", "")

	// Bypass DeleteProfile to check the schema-level cascade.
	_, err := s.db.Exec(`DELETE FROM profiles WHERE id = ?`, "u1")
	require.NoError(t, err)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestCheck(t *testing.T) {
	s := openTemp(t)
	defer func() { _ = s.Close() }()

	storetest.MustProfile(t, s, "u1")
	storetest.MustEntry(t, s, "u1", storetest.Day(2024, time.January, 1), "09:00", "10:00", "")

	health, err := s.Check()
	require.NoError(t, err)
	assert.True(t, health.OK())
	assert.Equal(t, "sqlite", health.Backend)
	assert.Equal(t, 1, health.Profiles)
	assert.Equal(t, 1, health.Entries)
}
