// Package domain contains the core business entities for the ShelfSync catalog.
package domain

// Track represents a single playable media unit reported by a source.
//
// Tracks are transient projections: every sync pass fetches a fresh set and
// reconciles it against the store. ParentKey is a source-local book identifier
// that must be re-resolved against the canonical book ID assigned by the store.
type Track struct {
	Syncable
	SourceTrackID string `json:"source_track_id"`
	ParentKey     string `json:"parent_key,omitempty"`
	Album         string `json:"album,omitempty"`
	Artist        string `json:"artist,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Duration      int64  `json:"duration"`
	Position      int64  `json:"position"`
	SourceID      string `json:"source_id"`
}
