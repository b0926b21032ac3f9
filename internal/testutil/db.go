// Package testutil provides test utilities for journal setup.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/artcollab/internal/infrastructure/sqlite"
)

// NewTestDB opens a migrated journal database in a temp directory.
// The database is closed when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestJournal is NewTestDB(t).Journal().
func NewTestJournal(t *testing.T) *sqlite.Journal {
	t.Helper()
	return NewTestDB(t).Journal()
}
