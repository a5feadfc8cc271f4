package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateMemory(t *testing.T) {
	ctx := context.Background()
	db, err := OpenAndMigrate(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deck_events`).Scan(&n))
	assert.Equal(t, 0, n)

	// Running migrations twice is a no-op.
	require.NoError(t, migrate(ctx, db))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenAndMigrateCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cardgame.db")
	db, err := OpenAndMigrate(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopen: already-applied migrations are skipped.
	db, err = OpenAndMigrate(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestOpenAndMigrateRequiresPath(t *testing.T) {
	_, err := OpenAndMigrate(context.Background(), "")
	assert.Error(t, err)
}

func TestMigrationNamesSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql":   {Data: []byte("SELECT 1;")},
		"m/0001_a.sql":   {Data: []byte("SELECT 1;")},
		"m/README.md":    {Data: []byte("x")},
		"m/sub/0003.sql": {Data: []byte("SELECT 1;")},
	}
	names, err := migrationNames(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, names)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x.db?mode=ro", sqliteDSN("file:x.db?mode=ro"))
	assert.Equal(t, "file:data/c.db?_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("data/c.db"))
	assert.False(t, looksLikeFilePath(":memory:"))
	assert.True(t, looksLikeFilePath("data/c.db"))
}
