package syncer

import "github.com/shelfsyncapp/shelfsync-server/internal/domain"

// RemapTrackParents rewrites each track's parent key to the canonical ID of
// the book whose title matches the track's album. Tracks with no matching
// title keep their original parent key; nothing is dropped.
//
// Titles are assumed unique within a source. When the store holds duplicate
// titles the first book in store iteration order wins, which keeps the remap
// deterministic across passes.
func RemapTrackParents(tracks []domain.Track, canonical []domain.Book) []domain.Track {
	byTitle := make(map[string]string, len(canonical))
	for _, b := range canonical {
		if _, exists := byTitle[b.Title]; !exists {
			byTitle[b.Title] = b.ID
		}
	}

	remapped := make([]domain.Track, len(tracks))
	for i, t := range tracks {
		if id, ok := byTitle[t.Album]; ok {
			t.ParentKey = id
		}
		remapped[i] = t
	}
	return remapped
}
