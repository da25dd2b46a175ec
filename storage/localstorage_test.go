package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closableStore interface {
	KeyValueStore
	Keys() ([]string, error)
	Close() error
}

func openStores(t *testing.T) map[string]closableStore {
	t.Helper()
	ls, err := NewLocalStorage(filepath.Join(t.TempDir(), "localstorage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ls.Close() })

	return map[string]closableStore{
		"sqlite": ls,
		"memory": NewMemoryStorage(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.GetItem("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SetItem("a", "1"))
			require.NoError(t, store.SetItem("b", "2"))
			require.NoError(t, store.SetItem("a", "3"))

			v, ok, err := store.GetItem("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "3", v)

			keys, err := store.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, store.RemoveItem("a"))
			_, ok, err = store.GetItem("a")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Clear())
			keys, err = store.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStoreEmptyValueIsPresent(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetItem("k", ""))
			v, ok, err := store.GetItem("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "", v)
		})
	}
}

func TestLocalStorageSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "localstorage.db")

	ls, err := NewLocalStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, ls.SetItem("lawchat_session_id", "session_abc"))
	require.NoError(t, ls.Close())

	ls, err = NewLocalStorage(dbPath)
	require.NoError(t, err)
	defer ls.Close()

	v, ok, err := ls.GetItem("lawchat_session_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session_abc", v)
}

func TestNewLocalStorageBadPath(t *testing.T) {
	_, err := NewLocalStorage(filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	assert.Error(t, err)
}
