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
	bookPrefix        = "book:"
	bookByTitlePrefix = "idx:books:source:"
)

// ErrBookNotFound is returned when a book lookup misses.
var ErrBookNotFound = errors.New("book not found")

// bookTitleIndexKey builds the (source, title) index key that anchors
// canonical book identity.
func bookTitleIndexKey(sourceID, title string) []byte {
	return []byte(bookByTitlePrefix + sourceID + ":" + title)
}

// UpsertBooks writes a batch of books for one source in a single transaction.
//
// Canonical IDs resolve through the (source, title) index: a book whose title
// is already indexed reuses the stored ID and keeps its original CreatedAt;
// anything else gets a fresh ID. The provisional IDs carried by synthesized
// books are discarded here. isLocal marks the records for the store-side
// caching policy.
func (s *Store) UpsertBooks(ctx context.Context, sourceID string, books []domain.Book, isLocal bool) error {
	if len(books) == 0 {
		return nil
	}

	created := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		for i := range books {
			book := books[i]
			book.SourceID = sourceID
			book.IsLocal = isLocal

			indexKey := bookTitleIndexKey(sourceID, book.Title)

			item, err := txn.Get(indexKey)
			switch {
			case err == nil:
				// Known title: adopt the canonical ID and preserve creation time.
				var existingID string
				if err := item.Value(func(val []byte) error {
					existingID = string(val)
					return nil
				}); err != nil {
					return err
				}

				existing, err := getBookTxn(txn, existingID)
				if err != nil {
					return err
				}
				book.ID = existing.ID
				book.CreatedAt = existing.CreatedAt
				book.Touch()

			case errors.Is(err, badger.ErrKeyNotFound):
				newID, err := id.Generate(id.PrefixBook)
				if err != nil {
					return err
				}
				book.ID = newID
				book.InitTimestamps()
				created++

				if err := txn.Set(indexKey, []byte(book.ID)); err != nil {
					return err
				}

			default:
				return err
			}

			data, err := json.Marshal(book)
			if err != nil {
				return fmt.Errorf("marshal book: %w", err)
			}
			if err := txn.Set([]byte(bookPrefix+book.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert books: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "books upserted",
			slog.String("source", sourceID),
			slog.Int("total", len(books)),
			slog.Int("created", created),
			slog.Bool("local", isLocal),
		)
	}
	return nil
}

// GetBooksForSource returns the canonical books for a source, ordered by the
// title index (lexically, so the order is stable across calls). Local books
// are filtered out unless includeLocal is set.
func (s *Store) GetBooksForSource(ctx context.Context, sourceID string, includeLocal bool) ([]domain.Book, error) {
	prefix := []byte(bookByTitlePrefix + sourceID + ":")

	var books []domain.Book
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var bookID string
			if err := it.Item().Value(func(val []byte) error {
				bookID = string(val)
				return nil
			}); err != nil {
				return err
			}

			book, err := getBookTxn(txn, bookID)
			if err != nil {
				return err
			}
			if book.IsLocal && !includeLocal {
				continue
			}
			books = append(books, *book)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get books for source: %w", err)
	}
	return books, nil
}

// GetBook retrieves a book by its canonical ID.
func (s *Store) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var book *domain.Book
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		book, err = getBookTxn(txn, bookID)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

func getBookTxn(txn *badger.Txn, bookID string) (*domain.Book, error) {
	item, err := txn.Get([]byte(bookPrefix + bookID))
	if err != nil {
		return nil, err
	}

	var book domain.Book
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &book)
	}); err != nil {
		return nil, err
	}
	return &book, nil
}
