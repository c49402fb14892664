package syncer

import "github.com/shelfsyncapp/shelfsync-server/internal/domain"

// Synthesize derives book records from a track set for sources that report no
// book-level data (filesystem scans, typically).
//
// Tracks are partitioned by parent key, in first-encounter order. Each
// non-empty partition yields exactly one book whose provisional ID is the
// partition key; representative metadata is picked by majority vote across
// the partition and aggregate fields are computed from it. The provisional ID
// is superseded by the canonical ID once the store resolves the upsert.
func Synthesize(sourceID string, tracks []domain.Track) []domain.Book {
	if len(tracks) == 0 {
		return nil
	}

	groups := make(map[string][]domain.Track)
	var order []string
	for _, t := range tracks {
		if _, seen := groups[t.ParentKey]; !seen {
			order = append(order, t.ParentKey)
		}
		groups[t.ParentKey] = append(groups[t.ParentKey], t)
	}

	books := make([]domain.Book, 0, len(order))
	for _, key := range order {
		group := groups[key]

		book := domain.Book{
			SourceID: sourceID,
			Title:    MostCommon(group, func(t domain.Track) string { return t.Album }),
			Author:   MostCommon(group, func(t domain.Track) string { return t.Artist }),
			CoverURL: MostCommon(group, func(t domain.Track) string { return t.CoverURL }),
			Genre:    MostCommon(group, func(t domain.Track) string { return t.Genre }),
		}
		book.ID = key
		book.EnsureSortTitle()

		agg := Aggregate(group)
		book.TotalDuration = agg.Duration
		book.Progress = agg.Progress
		book.TrackCount = agg.TrackCount

		books = append(books, book)
	}
	return books
}
