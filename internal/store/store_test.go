package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		store.Close()
	})
	return store
}
