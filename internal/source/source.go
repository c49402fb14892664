// Package source defines the catalog source abstraction and the registry of
// configured sources. A source is an external provider of book and track
// records: a filesystem scan, a remote catalog server, anything that can
// report a media catalog.
package source

import (
	"context"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
)

// Source is an external provider of catalog data.
//
// FetchBooks may return an empty slice: filesystem sources typically report
// tracks only, and books are synthesized from track groupings downstream.
// Both fetches return fresh projections on every call; nothing is cached
// between sync passes.
type Source interface {
	// ID returns the stable source identifier. All store writes for this
	// source are scoped by it.
	ID() string

	// IsLocal reports whether this source serves local/offline media.
	// It feeds the store-side caching policy and is otherwise opaque.
	IsLocal() bool

	FetchBooks(ctx context.Context) ([]domain.Book, error)
	FetchTracks(ctx context.Context) ([]domain.Track, error)
}

// Provider enumerates the sources a sync pass should cover.
// Enumeration failure is the only condition a sync pass reports as an
// overall error.
type Provider interface {
	Sources(ctx context.Context) ([]Source, error)
}
