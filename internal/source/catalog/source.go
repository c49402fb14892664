// Package catalog implements a sync source backed by a remote catalog server.
// The server exposes book and track records over a JSON API; the source maps
// them onto domain types for the sync pipeline.
package catalog

import (
	"context"
	"log/slog"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
)

// Source adapts a catalog server into a sync source.
type Source struct {
	id     string
	client *Client
	logger *slog.Logger
}

// New creates a catalog source identified by id, talking to the server at
// baseURL.
func New(id, baseURL string, logger *slog.Logger) *Source {
	return &Source{
		id:     id,
		client: NewClient(baseURL, logger),
		logger: logger,
	}
}

// ID implements source.Source.
func (s *Source) ID() string { return s.id }

// IsLocal implements source.Source. Catalog media lives on the server.
func (s *Source) IsLocal() bool { return false }

// FetchBooks returns the server's book records mapped to domain books.
func (s *Source) FetchBooks(ctx context.Context) ([]domain.Book, error) {
	wire, err := s.client.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(wire))
	for _, wb := range wire {
		progress := wb.Progress
		if progress == 0 && wb.ProgressMs > 0 && wb.DurationMs > 0 {
			progress = float64(wb.ProgressMs) / float64(wb.DurationMs)
		}
		if progress > 1 {
			progress = 1
		}

		book := domain.Book{
			SourceID:      s.id,
			Title:         wb.Title,
			Author:        wb.Author,
			CoverURL:      wb.CoverURL,
			Genre:         wb.Genre,
			TotalDuration: wb.DurationMs,
			Progress:      progress,
			TrackCount:    wb.TrackCount,
		}
		book.ID = wb.ID
		book.EnsureSortTitle()
		books = append(books, book)
	}

	s.logger.Debug("catalog books fetched", "source", s.id, "count", len(books))
	return books, nil
}

// FetchTracks returns the server's track records mapped to domain tracks.
// The server's book ID is kept as the parent key so tracks regroup under the
// same book, then get remapped to canonical IDs downstream.
func (s *Source) FetchTracks(ctx context.Context) ([]domain.Track, error) {
	wire, err := s.client.ListTracks(ctx)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(wire))
	for _, wt := range wire {
		tracks = append(tracks, domain.Track{
			SourceTrackID: wt.ID,
			ParentKey:     wt.BookID,
			Album:         wt.Album,
			Artist:        wt.Artist,
			CoverURL:      wt.CoverURL,
			Genre:         wt.Genre,
			Duration:      wt.DurationMs,
			Position:      wt.PositionMs,
			SourceID:      s.id,
		})
	}

	s.logger.Debug("catalog tracks fetched", "source", s.id, "count", len(tracks))
	return tracks, nil
}
