package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const lastRefreshKey = "sync:refresh:last"

// LastRefreshedAt returns when the last sync pass ran. A zero time means
// no pass has ever completed.
func (s *Store) LastRefreshedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(lastRefreshKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("get last refresh: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last refresh %q: %w", raw, err)
	}
	return t, nil
}

// SetLastRefreshedAt records when a sync pass ran.
func (s *Store) SetLastRefreshedAt(ctx context.Context, t time.Time) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(lastRefreshKey), []byte(t.Format(time.RFC3339Nano)))
	})
	if err != nil {
		return fmt.Errorf("set last refresh: %w", err)
	}
	return nil
}
