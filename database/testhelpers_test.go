package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const schemaPath = "../foodapp.sql"

// newTestDB opens a fresh store file under t.TempDir. The schema is applied
// only when withSchema is set.
func newTestDB(t *testing.T, withSchema bool) *sql.DB {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "foods.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if withSchema {
		require.NoError(t, InitSchema(context.Background(), db, schemaPath))
	}
	return db
}

func foodNames(t *testing.T, db *sql.DB) []string {
	t.Helper()

	foods, err := ListFoods(context.Background(), db)
	require.NoError(t, err)

	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, f.Name)
	}
	return names
}
