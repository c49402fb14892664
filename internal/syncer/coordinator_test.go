package syncer

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
	"github.com/shelfsyncapp/shelfsync-server/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRefresh keeps the last-refresh timestamp in memory.
type memRefresh struct {
	last    time.Time
	readErr error
	sets    int
}

func (m *memRefresh) LastRefreshedAt(context.Context) (time.Time, error) {
	return m.last, m.readErr
}

func (m *memRefresh) SetLastRefreshedAt(_ context.Context, t time.Time) error {
	m.last = t
	m.sets++
	return nil
}

// failingProvider simulates a broken source enumeration.
type failingProvider struct{}

func (failingProvider) Sources(context.Context) ([]source.Source, error) {
	return nil, assert.AnError
}

func newTestCoordinator(t *testing.T, sources []source.Source, refresh *memRefresh, minInterval time.Duration) *Coordinator {
	t.Helper()
	registry := source.NewRegistry()
	for _, src := range sources {
		require.NoError(t, registry.Register(src))
	}
	store := newMemStore()
	runner := NewRunner(store, store, slog.New(slog.DiscardHandler))
	return NewCoordinator(registry, runner, refresh, minInterval, slog.New(slog.DiscardHandler))
}

func TestCoordinator_SkipsWhenNotDue(t *testing.T) {
	refresh := &memRefresh{last: time.Now()}
	src := &fakeSource{id: "library"}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, time.Hour)

	summary, err := coord.Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Empty(t, summary.Sources)
	assert.Zero(t, refresh.sets, "skipped pass should not touch the refresh timestamp")
}

func TestCoordinator_ForceBypassesGate(t *testing.T) {
	refresh := &memRefresh{last: time.Now()}
	src := &fakeSource{
		id:     "library",
		tracks: []domain.Track{{SourceTrackID: "t1", ParentKey: "g", Album: "B"}},
	}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, time.Hour)

	summary, err := coord.Run(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, summary.Skipped)
	require.Len(t, summary.Sources, 1)
	assert.False(t, summary.Sources[0].Failed())
	assert.Equal(t, 1, refresh.sets)
}

func TestCoordinator_NeverRefreshedIsDue(t *testing.T) {
	refresh := &memRefresh{}
	src := &fakeSource{id: "library"}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, time.Hour)

	summary, err := coord.Run(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, summary.Skipped)
}

func TestCoordinator_PerSourceFailureIsolation(t *testing.T) {
	refresh := &memRefresh{}
	broken := &fakeSource{id: "broken", tracksErr: assert.AnError}
	healthy := &fakeSource{
		id:     "healthy",
		tracks: []domain.Track{{SourceTrackID: "t1", ParentKey: "g", Album: "B"}},
	}
	coord := newTestCoordinator(t, []source.Source{broken, healthy}, refresh, 0)

	summary, err := coord.Run(context.Background(), false)
	require.NoError(t, err, "per-source failures must not surface as overall failure")

	require.Len(t, summary.Sources, 2)
	assert.True(t, summary.Sources[0].Failed())
	assert.False(t, summary.Sources[1].Failed())
	assert.Equal(t, 1, summary.FailedSources())
	assert.Equal(t, 1, refresh.sets, "pass still records its refresh time")
}

func TestCoordinator_EnumerationFailureSurfaces(t *testing.T) {
	refresh := &memRefresh{}
	store := newMemStore()
	runner := NewRunner(store, store, slog.New(slog.DiscardHandler))
	coord := NewCoordinator(failingProvider{}, runner, refresh, 0, slog.New(slog.DiscardHandler))

	_, err := coord.Run(context.Background(), false)
	assert.Error(t, err)
	assert.Zero(t, refresh.sets)
}

func TestCoordinator_UnreadableRefreshStateStillRuns(t *testing.T) {
	refresh := &memRefresh{last: time.Now(), readErr: assert.AnError}
	src := &fakeSource{id: "library"}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, time.Hour)

	summary, err := coord.Run(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, summary.Skipped, "unreadable refresh state is treated as never refreshed")
}

func TestCoordinator_LastSummary(t *testing.T) {
	refresh := &memRefresh{}
	src := &fakeSource{id: "library"}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, 0)

	assert.Nil(t, coord.LastSummary())

	summary, err := coord.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, summary, coord.LastSummary())
}

func TestCoordinator_CancellationMidPass(t *testing.T) {
	refresh := &memRefresh{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{id: "library"}
	coord := newTestCoordinator(t, []source.Source{src}, refresh, 0)

	_, err := coord.Run(ctx, false)
	assert.ErrorIs(t, err, context.Canceled)
}
