package filesystem

import (
	"context"
	"time"

	"github.com/simonhull/audiometa"
)

// trackTags is the subset of audio metadata the source needs per file.
type trackTags struct {
	Album    string
	Artist   string
	Genre    string
	Duration time.Duration
}

// tagReader extracts tags from an audio file. Split out so tests can run
// without real audio fixtures.
type tagReader interface {
	ReadTags(ctx context.Context, path string) (trackTags, error)
}

// audiometaReader reads tags with the audiometa parser.
type audiometaReader struct{}

func (audiometaReader) ReadTags(ctx context.Context, path string) (trackTags, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return trackTags{}, err
	}
	defer file.Close()

	genre := ""
	if len(file.Tags.Genres) > 0 {
		genre = file.Tags.Genres[0]
	}

	return trackTags{
		Album:    file.Tags.Album,
		Artist:   file.Tags.Artist,
		Genre:    genre,
		Duration: file.Audio.Duration,
	}, nil
}
