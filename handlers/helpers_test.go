package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/camden-git/whattoeat/database"
)

func newTestDB(t *testing.T, withSchema bool) *sql.DB {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "foods.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if withSchema {
		require.NoError(t, database.InitSchema(context.Background(), db, "../foodapp.sql"))
	}
	return db
}

func newTestServer(t *testing.T, db *sql.DB) (*FoodHandler, http.Handler) {
	t.Helper()

	log := zaptest.NewLogger(t)
	fh := NewFoodHandler(db, log)
	return fh, Router(fh, log, nil)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()

	for _, name := range names {
		_, err := database.InsertFoodIfAbsent(context.Background(), db, name)
		require.NoError(t, err)
	}
}
