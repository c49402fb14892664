package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
	"github.com/shelfsyncapp/shelfsync-server/internal/id"
)

const (
	trackPrefix         = "track:"
	trackBySourcePrefix = "idx:tracks:source:"
)

func trackIndexKey(sourceID, sourceTrackID string) []byte {
	return []byte(trackBySourcePrefix + sourceID + ":" + sourceTrackID)
}

// UpsertTracks writes a batch of tracks for one source in a single
// transaction. Canonical track identity resolves through the
// (source, sourceTrackID) index, mirroring how books are keyed by title.
func (s *Store) UpsertTracks(ctx context.Context, sourceID string, tracks []domain.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	created := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		for i := range tracks {
			track := tracks[i]
			track.SourceID = sourceID

			indexKey := trackIndexKey(sourceID, track.SourceTrackID)

			item, err := txn.Get(indexKey)
			switch {
			case err == nil:
				var existingID string
				if err := item.Value(func(val []byte) error {
					existingID = string(val)
					return nil
				}); err != nil {
					return err
				}

				existing, err := getTrackTxn(txn, existingID)
				if err != nil {
					return err
				}
				track.ID = existing.ID
				track.CreatedAt = existing.CreatedAt
				track.Touch()

			case errors.Is(err, badger.ErrKeyNotFound):
				newID, err := id.Generate(id.PrefixTrack)
				if err != nil {
					return err
				}
				track.ID = newID
				track.InitTimestamps()
				created++

				if err := txn.Set(indexKey, []byte(track.ID)); err != nil {
					return err
				}

			default:
				return err
			}

			data, err := json.Marshal(track)
			if err != nil {
				return fmt.Errorf("marshal track: %w", err)
			}
			if err := txn.Set([]byte(trackPrefix+track.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert tracks: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "tracks upserted",
			slog.String("source", sourceID),
			slog.Int("total", len(tracks)),
			slog.Int("created", created),
		)
	}
	return nil
}

// GetTracksForSource returns all persisted tracks for a source, ordered by
// the source-track index.
func (s *Store) GetTracksForSource(ctx context.Context, sourceID string) ([]domain.Track, error) {
	prefix := []byte(trackBySourcePrefix + sourceID + ":")

	var tracks []domain.Track
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var trackID string
			if err := it.Item().Value(func(val []byte) error {
				trackID = string(val)
				return nil
			}); err != nil {
				return err
			}

			track, err := getTrackTxn(txn, trackID)
			if err != nil {
				return err
			}
			tracks = append(tracks, *track)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get tracks for source: %w", err)
	}
	return tracks, nil
}

func getTrackTxn(txn *badger.Txn, trackID string) (*domain.Track, error) {
	item, err := txn.Get([]byte(trackPrefix + trackID))
	if err != nil {
		return nil, err
	}

	var track domain.Track
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &track)
	}); err != nil {
		return nil, err
	}
	return &track, nil
}
