// Package filesystem implements a catalog source backed by a local audiobook
// library directory. It reports tracks only; books are synthesized from the
// directory structure downstream.
package filesystem

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
)

// SourceID identifies the local library source in the store.
const SourceID = "library"

// Source scans a library directory and reports each audio file as a track.
// The containing directory is the track's parent key, so all files in one
// directory group into one synthesized book.
type Source struct {
	root   string
	tags   tagReader
	walker *walker
	logger *slog.Logger
}

// New creates a filesystem source rooted at the given library path.
func New(root string, logger *slog.Logger) *Source {
	return &Source{
		root:   root,
		tags:   audiometaReader{},
		walker: &walker{logger: logger},
		logger: logger,
	}
}

// ID implements source.Source.
func (s *Source) ID() string { return SourceID }

// IsLocal implements source.Source. Filesystem media is always local.
func (s *Source) IsLocal() bool { return true }

// FetchBooks implements source.Source. The filesystem has no book-level
// records; callers synthesize books from the track set.
func (s *Source) FetchBooks(_ context.Context) ([]domain.Book, error) {
	return nil, nil
}

// FetchTracks walks the library and parses every audio file found.
// Files whose tags cannot be read are skipped with a warning rather than
// failing the whole scan.
func (s *Source) FetchTracks(ctx context.Context) ([]domain.Track, error) {
	if s.root == "" {
		return nil, nil
	}

	var tracks []domain.Track
	for result := range s.walker.walk(ctx, s.root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tags, err := s.tags.ReadTags(ctx, result.Path)
		if err != nil {
			s.logger.Warn("unreadable audio file skipped",
				"path", result.RelPath,
				"error", err,
			)
			continue
		}

		parent := filepath.Dir(result.RelPath)
		album := tags.Album
		if album == "" {
			// Untagged files fall back to the directory name, which is the
			// best grouping hint a bare filesystem gives us.
			album = filepath.Base(parent)
			if album == "." {
				album = filepath.Base(s.root)
			}
		}

		tracks = append(tracks, domain.Track{
			SourceTrackID: result.RelPath,
			ParentKey:     parent,
			Album:         album,
			Artist:        tags.Artist,
			Genre:         tags.Genre,
			Duration:      tags.Duration.Milliseconds(),
			SourceID:      SourceID,
		})
	}

	s.logger.Debug("library scan complete", "root", s.root, "tracks", len(tracks))
	return tracks, nil
}
