package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
	"github.com/shelfsyncapp/shelfsync-server/internal/source"
)

// BookStore is the book persistence surface the runner needs.
// Upserts are keyed by (source, title); the store owns canonical IDs.
type BookStore interface {
	UpsertBooks(ctx context.Context, sourceID string, books []domain.Book, isLocal bool) error
	GetBooksForSource(ctx context.Context, sourceID string, includeLocal bool) ([]domain.Book, error)
}

// TrackStore is the track persistence surface the runner needs.
type TrackStore interface {
	UpsertTracks(ctx context.Context, sourceID string, tracks []domain.Track) error
}

// Runner executes the per-source sync pipeline: fetch, synthesize books when
// the source reports none, recompute aggregates, upsert books, re-resolve
// canonical IDs, remap track parents, upsert tracks.
//
// Steps run sequentially with no in-pass retries. A fetch failure aborts the
// source before any write; the next scheduled pass retries naturally.
type Runner struct {
	books  BookStore
	tracks TrackStore
	logger *slog.Logger
}

// NewRunner creates a runner backed by the given stores.
func NewRunner(books BookStore, tracks TrackStore, logger *slog.Logger) *Runner {
	return &Runner{
		books:  books,
		tracks: tracks,
		logger: logger,
	}
}

// Sync runs the full pipeline for one source and reports its outcome.
// The returned outcome carries the failure, if any; Sync itself never
// escalates source-level errors.
func (r *Runner) Sync(ctx context.Context, src source.Source) SourceOutcome {
	outcome := SourceOutcome{SourceID: src.ID()}

	err := r.sync(ctx, src, &outcome)
	if err != nil {
		outcome.Error = err.Error()
		r.logger.Warn("source sync failed",
			"source", src.ID(),
			"error", err,
		)
	}
	return outcome
}

func (r *Runner) sync(ctx context.Context, src source.Source, outcome *SourceOutcome) error {
	// Step 1: fetch. Either failure aborts with no partial writes.
	books, err := src.FetchBooks(ctx)
	if err != nil {
		return fmt.Errorf("fetch books: %w", err)
	}
	tracks, err := src.FetchTracks(ctx)
	if err != nil {
		return fmt.Errorf("fetch tracks: %w", err)
	}

	// An empty track set is a no-op for this source, not an error.
	if len(tracks) == 0 {
		outcome.Skipped = true
		r.logger.Debug("source returned no tracks, skipping", "source", src.ID())
		return nil
	}

	// Step 2: synthesize books when the source reports none.
	if len(books) == 0 {
		books = Synthesize(src.ID(), tracks)
		outcome.Synthesized = true
	}

	// Step 3: aggregate fields are a pure function of the current track set.
	for i := range books {
		applyAggregates(&books[i], tracks)
		books[i].EnsureSortTitle()
	}

	// Step 4: first write.
	if err := r.books.UpsertBooks(ctx, src.ID(), books, src.IsLocal()); err != nil {
		return fmt.Errorf("upsert books: %w", err)
	}

	// Step 5: re-read canonical books and remap track parents by title,
	// since synthesized books carried only provisional IDs.
	canonical, err := r.books.GetBooksForSource(ctx, src.ID(), src.IsLocal())
	if err != nil {
		return fmt.Errorf("get canonical books: %w", err)
	}
	remapped := RemapTrackParents(tracks, canonical)

	// Step 6: second and final write.
	if err := r.tracks.UpsertTracks(ctx, src.ID(), remapped); err != nil {
		return fmt.Errorf("upsert tracks: %w", err)
	}

	outcome.Books = len(books)
	outcome.Tracks = len(remapped)

	r.logger.LogAttrs(ctx, slog.LevelInfo, "source synced",
		slog.String("source", src.ID()),
		slog.Int("books", len(books)),
		slog.Int("tracks", len(remapped)),
		slog.Bool("synthesized", outcome.Synthesized),
	)
	return nil
}
