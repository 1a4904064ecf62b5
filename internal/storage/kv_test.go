package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ottfinder.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("Error closing store: %v", err)
		}
	})
	return store
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "ottfinder.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer func() {
		if err := store.Close(); err != nil {
			t.Logf("Error closing store: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("DB file was not created: %v", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("k", `["a","b"]`))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a","b"]`, value)
}

func TestSQLiteStoreMissingKey(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Delete("k"))

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ottfinder.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer func() {
		if err := reopened.Close(); err != nil {
			t.Logf("Error closing store: %v", err)
		}
	}()

	value, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *SQLiteStore
	_, _, err := store.Get("k")
	assert.ErrorIs(t, err, ErrStoreNotInited)
	assert.ErrorIs(t, store.Set("k", "v"), ErrStoreNotInited)
	assert.ErrorIs(t, store.Delete("k"), ErrStoreNotInited)
}
