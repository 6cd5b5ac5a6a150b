package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/camden-git/whattoeat/config"
	"github.com/camden-git/whattoeat/database"
	"github.com/camden-git/whattoeat/models"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	return &app{
		cfg: &config.Config{
			DatabasePath:    filepath.Join(t.TempDir(), "foods.db"),
			SchemaPath:      "../foodapp.sql",
			Port:            "0",
			ShutdownTimeout: time.Second,
		},
		log: zaptest.NewLogger(t),
	}
}

func countFoods(t *testing.T, path string) (int, error) {
	t.Helper()

	db, err := database.InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	foods, err := database.ListFoods(context.Background(), db)
	return len(foods), err
}

func TestInitDBCommand(t *testing.T) {
	a := newTestApp(t)

	var out bytes.Buffer
	rootCmd := RootCommand(a)
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"initdb"})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Initialized the database.")

	n, err := countFoods(t, a.cfg.DatabasePath)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInitDBCommand_FlagsOverrideConfig(t *testing.T) {
	a := newTestApp(t)
	other := filepath.Join(t.TempDir(), "other.db")

	rootCmd := RootCommand(a)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"initdb", "--database", other})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.True(t, database.StoreExists(other))
}

func TestInitDBCommand_MissingSchema(t *testing.T) {
	a := newTestApp(t)
	a.cfg.SchemaPath = filepath.Join(t.TempDir(), "missing.sql")

	rootCmd := RootCommand(a)
	rootCmd.SetArgs([]string{"initdb"})

	err := rootCmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, database.ErrSchemaNotFound)
}

func TestPrepareStore_FreshStoreIsSeeded(t *testing.T) {
	a := newTestApp(t)

	db, err := prepareStore(context.Background(), a)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	n, err := countFoods(t, a.cfg.DatabasePath)
	require.NoError(t, err)
	assert.Equal(t, len(models.DefaultSeedFoods), n)
}

func TestPrepareStore_ExistingStoreIsLeftAlone(t *testing.T) {
	a := newTestApp(t)

	db, err := database.InitDB(a.cfg.DatabasePath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = prepareStore(context.Background(), a)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = countFoods(t, a.cfg.DatabasePath)
	assert.ErrorIs(t, err, database.ErrFoodsTableMissing)
}

func TestPrepareStore_MissingSchemaLeavesStoreUninitialized(t *testing.T) {
	a := newTestApp(t)
	a.cfg.SchemaPath = filepath.Join(t.TempDir(), "missing.sql")

	db, err := prepareStore(context.Background(), a)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = countFoods(t, a.cfg.DatabasePath)
	assert.ErrorIs(t, err, database.ErrFoodsTableMissing)
}

func TestServe_StopsWhenContextIsCanceled(t *testing.T) {
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, a) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
