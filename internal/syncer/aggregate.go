package syncer

import "github.com/shelfsyncapp/shelfsync-server/internal/domain"

// Aggregates are the per-book fields recomputed from a book's track set on
// every sync pass: a pure function of the tracks, never carried over from a
// previous pass.
type Aggregates struct {
	// Duration is the sum of track durations in milliseconds.
	Duration int64
	// Progress is position-weighted playback progress in [0, 1]:
	// sum of track positions over sum of track durations.
	Progress float64
	// TrackCount is the number of tracks.
	TrackCount int64
}

// Aggregate computes the aggregate fields for a track set.
// An empty set yields all zeroes.
func Aggregate(tracks []domain.Track) Aggregates {
	var agg Aggregates
	var position int64
	for _, t := range tracks {
		agg.Duration += t.Duration
		position += t.Position
	}
	agg.TrackCount = int64(len(tracks))

	if agg.Duration > 0 {
		agg.Progress = float64(position) / float64(agg.Duration)
		if agg.Progress < 0 {
			agg.Progress = 0
		}
		if agg.Progress > 1 {
			agg.Progress = 1
		}
	}
	return agg
}

// applyAggregates recomputes a book's aggregate fields from the subset of
// tracks whose parent key matches the book's ID.
func applyAggregates(book *domain.Book, tracks []domain.Track) {
	agg := Aggregate(book.TracksFor(tracks))
	book.TotalDuration = agg.Duration
	book.Progress = agg.Progress
	book.TrackCount = agg.TrackCount
}
