package migrations

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestUpIsIdempotent(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Up(db))
	require.NoError(t, Up(db))

	for _, table := range []string{"wallets", "transactions", "round_records", "hand_records"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	applied, err := NewMigrator(db, fstest.MapFS{}).GetAppliedMigrations()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"001": true, "002": true}, applied)
}

func TestLoadMigrationsOrdersByVersion(t *testing.T) {
	source := fstest.MapFS{
		"002_second_step.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"001_first.sql":       {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"README.md":           {Data: []byte("not a migration")},
	}

	migrations, err := NewMigrator(nil, source).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "second step", migrations[1].Description)
}

func TestLoadMigrationsRejectsBadNames(t *testing.T) {
	source := fstest.MapFS{"schema.sql": {Data: []byte("SELECT 1;")}}

	_, err := NewMigrator(nil, source).LoadMigrations()
	assert.ErrorContains(t, err, "invalid migration filename")
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := openDB(t)
	source := fstest.MapFS{"001_broken.sql": {Data: []byte("CREATE TABLE (;")}}

	err := NewMigrator(db, source).MigrateUp()
	assert.Error(t, err)

	applied, err := NewMigrator(db, source).GetAppliedMigrations()
	require.NoError(t, err)
	assert.Empty(t, applied)
}
