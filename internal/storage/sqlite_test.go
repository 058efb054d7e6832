package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Credential()
	require.NoError(t, err)
	assert.False(t, ok, "fresh store holds no credential")

	require.NoError(t, store.SetCredential("tok-1"))
	value, ok, err := store.Credential()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", value)

	require.NoError(t, store.SetCredential("tok-2"))
	value, _, err = store.Credential()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", value, "set replaces the previous value")

	require.NoError(t, store.ClearCredential())
	_, ok, err = store.Credential()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an empty store is fine.
	require.NoError(t, store.ClearCredential())
}

func TestStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetCredential("tok-1"))
	require.NoError(t, store.Close())

	// The credential survives reopening.
	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Credential()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", value)
}
