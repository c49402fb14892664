package domain

import "strings"

// Book represents one audiobook aggregated from a source's track set.
//
// The canonical ID is assigned and owned by the store and stays stable across
// sync passes for a given (source, title). Books synthesized from tracks carry
// a provisional ID (the grouping key) until the store resolves them.
type Book struct {
	Syncable
	SourceID      string  `json:"source_id"`
	Title         string  `json:"title"`
	SortTitle     string  `json:"sort_title,omitempty"`
	Author        string  `json:"author,omitempty"`
	CoverURL      string  `json:"cover_url,omitempty"`
	Genre         string  `json:"genre,omitempty"`
	TotalDuration int64   `json:"total_duration"`
	Progress      float64 `json:"progress"`
	TrackCount    int64   `json:"track_count"`
	IsLocal       bool    `json:"is_local"`
	ParentID      string  `json:"parent_id,omitempty"`
}

// TracksFor returns the subset of tracks whose parent key matches this book's ID.
func (b *Book) TracksFor(tracks []Track) []Track {
	var matched []Track
	for _, t := range tracks {
		if t.ParentKey == b.ID {
			matched = append(matched, t)
		}
	}
	return matched
}

// leading articles stripped when deriving sort titles.
var sortArticles = []string{"the ", "a ", "an "}

// SortTitleFor derives a sort key from a display title.
// Strips a leading English article and lowercases the remainder.
func SortTitleFor(title string) string {
	sorted := strings.ToLower(strings.TrimSpace(title))
	for _, article := range sortArticles {
		if strings.HasPrefix(sorted, article) {
			sorted = strings.TrimSpace(strings.TrimPrefix(sorted, article))
			break
		}
	}
	return sorted
}

// EnsureSortTitle fills SortTitle from Title when it is unset.
func (b *Book) EnsureSortTitle() {
	if b.SortTitle == "" {
		b.SortTitle = SortTitleFor(b.Title)
	}
}
