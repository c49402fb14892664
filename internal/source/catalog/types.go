package catalog

// Wire types for the catalog server's JSON API.

type wireBook struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverURL   string  `json:"cover_url"`
	Genre      string  `json:"genre"`
	DurationMs int64   `json:"duration_ms"`
	ProgressMs int64   `json:"progress_ms"`
	Progress   float64 `json:"progress"`
	TrackCount int64   `json:"track_count"`
}

type wireTrack struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	Album      string `json:"album"`
	Artist     string `json:"artist"`
	CoverURL   string `json:"cover_url"`
	Genre      string `json:"genre"`
	DurationMs int64  `json:"duration_ms"`
	PositionMs int64  `json:"position_ms"`
}

type booksResponse struct {
	Books []wireBook `json:"books"`
}

type tracksResponse struct {
	Tracks []wireTrack `json:"tracks"`
}
