package water

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE water_log (
  entry_date TEXT PRIMARY KEY,
  glasses INTEGER NOT NULL CHECK (glasses BETWEEN 0 AND 8)
);`)
	require.NoError(t, err)
	return db
}

func TestGetSet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	n, err := r.Get(ctx, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, r.Set(ctx, "2026-02-10", 3))
	require.NoError(t, r.Set(ctx, "2026-02-10", 4))
	require.NoError(t, r.Set(ctx, "2026-02-11", 1))

	n, err = r.Get(ctx, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSet_RejectsOutOfRange(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	err := r.Set(context.Background(), "2026-02-10", 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set water[2026-02-10]")
}
