// Package store persists books and tracks in a Badger database with
// upsert-by-key semantics. Canonical identifiers are assigned here and stay
// stable across sync passes: an upsert keyed by (source, natural key) reuses
// the existing ID when one is present.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance at the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
