package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastRefreshedAt_NeverRefreshed(t *testing.T) {
	store := setupTestStore(t)

	last, err := store.LastRefreshedAt(context.Background())
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestSetLastRefreshedAt_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Millisecond)
	require.NoError(t, store.SetLastRefreshedAt(ctx, now))

	last, err := store.LastRefreshedAt(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(last), "expected %v, got %v", now, last)
}

func TestSetLastRefreshedAt_Overwrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SetLastRefreshedAt(ctx, first))
	require.NoError(t, store.SetLastRefreshedAt(ctx, second))

	last, err := store.LastRefreshedAt(ctx)
	require.NoError(t, err)
	assert.True(t, second.Equal(last))
}
