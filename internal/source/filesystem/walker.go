package filesystem

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// audio file extensions the library scan picks up.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// walkResult represents an audio file discovered during walking.
type walkResult struct {
	Path    string
	RelPath string
	Size    int64
}

// walker traverses the library directory and discovers audio files.
type walker struct {
	logger *slog.Logger
}

// walk traverses a directory and streams discovered audio files.
// The channel closes when the walk is complete or the context is canceled.
func (w *walker) walk(ctx context.Context, rootPath string) <-chan walkResult {
	results := make(chan walkResult, 100)

	go func() {
		defer close(results)

		err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				w.logger.Error("walk error", "path", path, "error", err)
				// Continue walking despite errors.
				return nil
			}

			// Skip hidden files/directories.
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				w.logger.Error("failed to get file info", "path", path, "error", err)
				return nil
			}

			relPath, err := filepath.Rel(rootPath, path)
			if err != nil {
				relPath = path
			}

			select {
			case results <- walkResult{Path: path, RelPath: relPath, Size: info.Size()}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil && !isContextErr(err) {
			w.logger.Error("walk failed", "root", rootPath, "error", err)
		}
	}()

	return results
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
