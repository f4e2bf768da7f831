package sqldb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory SQLite database with all migrations applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := Open(ctx, "sqlite://")
	require.NoError(t, err)
	require.Equal(t, DialectSQLite, dialect)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, dialect))
	return db
}
