package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Get("bookfind-favorites")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set("bookfind-favorites", `[{"key":"/works/OL1W"}]`))

	value, found, err := store.Get("bookfind-favorites")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[{"key":"/works/OL1W"}]`, value)
}

func TestSQLiteStoreReplace(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("bookfind-theme", "light"))
	require.NoError(t, store.Set("bookfind-theme", "dark"))

	value, found, err := store.Get("bookfind-theme")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "dark", value)
}

func TestSQLiteStoreRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("bookfind-recent-searches", `["golang"]`))
	require.NoError(t, store.Remove("bookfind-recent-searches"))

	_, found, err := store.Get("bookfind-recent-searches")
	require.NoError(t, err)
	require.False(t, found)

	// Removing an absent key is fine.
	require.NoError(t, store.Remove("bookfind-recent-searches"))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("bookfind-theme", "light"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, found, err := reopened.Get("bookfind-theme")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "light", value)
}

func TestMemStoreFailWrites(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set("k", "v"))

	store.FailWrites = true
	require.Error(t, store.Set("k", "v2"))
	require.Error(t, store.Remove("k"))

	// The previous value is untouched.
	value, found, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", value)
}
