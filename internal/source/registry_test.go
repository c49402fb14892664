package source

import (
	"context"
	"testing"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	id    string
	local bool
}

func (s *stubSource) ID() string     { return s.id }
func (s *stubSource) IsLocal() bool  { return s.local }
func (s *stubSource) FetchBooks(context.Context) ([]domain.Book, error)   { return nil, nil }
func (s *stubSource) FetchTracks(context.Context) ([]domain.Track, error) { return nil, nil }

func TestRegistry_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSource{id: "library"}))
	require.NoError(t, r.Register(&stubSource{id: "catalog"}))

	sources, err := r.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "library", sources[0].ID())
	assert.Equal(t, "catalog", sources[1].ID())
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSource{id: "library"}))
	assert.Error(t, r.Register(&stubSource{id: "library"}))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	src := &stubSource{id: "catalog"}
	require.NoError(t, r.Register(src))

	assert.Equal(t, src, r.Get("catalog"))
	assert.Nil(t, r.Get("missing"))
}

func TestRegistry_SourcesReturnsSnapshot(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSource{id: "a"}))

	sources, err := r.Sources(context.Background())
	require.NoError(t, err)

	require.NoError(t, r.Register(&stubSource{id: "b"}))
	assert.Len(t, sources, 1, "snapshot should not grow after later registration")
}
