package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "journal.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}
	require.Equal(t, dbPath, db.Path())
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='journal_entries'",
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "journal_entries", name)

	var version int
	var dirty bool
	require.NoError(t, db.conn.QueryRow("SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty))
	require.Equal(t, 1, version)
	require.False(t, dirty)
}

func TestNewDB_ReopenIsIdempotentAndBacksUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db1.conn.Exec(
		"INSERT INTO journal_entries (command_id, command_type, caller_id, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		"c1", "register_artist", "alice", `{"caller":"alice","name":"A"}`, 1000,
	)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	var n int
	require.NoError(t, db2.conn.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&n))
	require.Equal(t, 1, n, "reopening must not lose entries")
}

func TestNewDB_Pragmas(t *testing.T) {
	db := openTestDB(t)

	var journalMode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, busyTimeoutMs, busyTimeout)
}

func TestDB_Close(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.Error(t, db.conn.Ping(), "Ping should fail after Close")
}

func TestDB_Connection(t *testing.T) {
	db := openTestDB(t)
	require.Same(t, db.conn, db.Connection())
	require.NoError(t, db.Connection().Ping())
}

func TestNewDB_InvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewDB(filepath.Join(blocker, "journal.db"))
	require.Error(t, err)
}

func TestMigrateDriver_LockAndVersion(t *testing.T) {
	db := openTestDB(t)
	d := newMigrateDriver(db.conn)

	require.NoError(t, d.Lock())
	require.Error(t, d.Lock(), "second lock must fail")
	require.NoError(t, d.Unlock())
	require.Error(t, d.Unlock())

	require.NoError(t, d.SetVersion(7, true))
	v, dirty, err := d.Version()
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.True(t, dirty)

	require.NoError(t, d.SetVersion(-1, false))
	v, _, err = d.Version()
	require.NoError(t, err)
	require.Equal(t, -1, v)
}
