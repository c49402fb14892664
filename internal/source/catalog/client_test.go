package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksFixture = `{
  "books": [
    {"id": "srv-1", "title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi",
     "cover_url": "https://covers.example/dune.jpg", "duration_ms": 3600000,
     "progress_ms": 1800000, "track_count": 12},
    {"id": "srv-2", "title": "Hyperion", "author": "Dan Simmons",
     "duration_ms": 7200000, "progress": 0.25, "track_count": 20}
  ]
}`

const tracksFixture = `{
  "tracks": [
    {"id": "t-1", "book_id": "srv-1", "album": "Dune", "artist": "Frank Herbert",
     "duration_ms": 300000, "position_ms": 150000},
    {"id": "t-2", "book_id": "srv-1", "album": "Dune", "artist": "Frank Herbert",
     "duration_ms": 300000}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, slog.New(slog.DiscardHandler))
}

func TestClient_ListBooks(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantCount  int
		wantErr    error
	}{
		{
			name:       "successful fetch",
			response:   booksFixture,
			statusCode: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty catalog",
			response:   `{"books": []}`,
			statusCode: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrServer,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantErr:    ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/books", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			})

			books, err := client.ListBooks(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, books, tt.wantCount)
		})
	}
}

func TestClient_ListBooksParsesFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(booksFixture))
	})

	books, err := client.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "srv-1", books[0].ID)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, int64(3600000), books[0].DurationMs)
	assert.Equal(t, int64(1800000), books[0].ProgressMs)
	assert.Equal(t, 0.25, books[1].Progress)
}

func TestClient_ListTracks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tracks", r.URL.Path)
		w.Write([]byte(tracksFixture))
	})

	tracks, err := client.ListTracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "t-1", tracks[0].ID)
	assert.Equal(t, "srv-1", tracks[0].BookID)
	assert.Equal(t, int64(150000), tracks[0].PositionMs)
}

func TestClient_ListBooksInvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.ListBooks(context.Background())
	require.Error(t, err)

	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "listBooks", catErr.Op)
}
