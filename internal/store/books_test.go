package store

import (
	"context"
	"strings"
	"testing"

	"github.com/shelfsyncapp/shelfsync-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook(title string) domain.Book {
	return domain.Book{
		Title:         title,
		Author:        "Test Author",
		Genre:         "Fantasy",
		TotalDuration: 900000,
		TrackCount:    3,
	}
}

func TestUpsertBooks_AssignsCanonicalIDs(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Synthesized books arrive with provisional IDs.
	a := testBook("Book A")
	a.ID = "dir-a"
	b := testBook("Book B")
	b.ID = "dir-b"

	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{a, b}, true))

	books, err := store.GetBooksForSource(ctx, "library", true)
	require.NoError(t, err)
	require.Len(t, books, 2)

	for _, book := range books {
		assert.True(t, strings.HasPrefix(book.ID, "bk-"), "provisional ID should be replaced, got %s", book.ID)
		assert.Equal(t, "library", book.SourceID)
		assert.True(t, book.IsLocal)
		assert.False(t, book.CreatedAt.IsZero())
	}
}

func TestUpsertBooks_IdentityStableAcrossPasses(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{testBook("Book A")}, false))
	first, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Same title on a later pass keeps the same canonical ID and CreatedAt.
	updated := testBook("Book A")
	updated.TotalDuration = 1000
	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{updated}, false))

	second, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	require.Len(t, second, 1, "re-upsert must not duplicate")
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
	assert.Equal(t, int64(1000), second[0].TotalDuration)
}

func TestUpsertBooks_ScopedBySource(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{testBook("Same Title")}, false))
	require.NoError(t, store.UpsertBooks(ctx, "catalog", []domain.Book{testBook("Same Title")}, false))

	libBooks, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	catBooks, err := store.GetBooksForSource(ctx, "catalog", false)
	require.NoError(t, err)

	require.Len(t, libBooks, 1)
	require.Len(t, catBooks, 1)
	assert.NotEqual(t, libBooks[0].ID, catBooks[0].ID, "same title in different sources is a different book")
}

func TestGetBooksForSource_LocalFilter(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{testBook("Local Book")}, true))

	withLocal, err := store.GetBooksForSource(ctx, "library", true)
	require.NoError(t, err)
	assert.Len(t, withLocal, 1)

	withoutLocal, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	assert.Empty(t, withoutLocal)
}

func TestGetBooksForSource_DeterministicOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	books := []domain.Book{testBook("Zebra"), testBook("Apple"), testBook("Mango")}
	require.NoError(t, store.UpsertBooks(ctx, "library", books, false))

	got, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by the title index.
	assert.Equal(t, "Apple", got[0].Title)
	assert.Equal(t, "Mango", got[1].Title)
	assert.Equal(t, "Zebra", got[2].Title)
}

func TestGetBook(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBooks(ctx, "library", []domain.Book{testBook("Book A")}, false))
	books, err := store.GetBooksForSource(ctx, "library", false)
	require.NoError(t, err)
	require.Len(t, books, 1)

	book, err := store.GetBook(ctx, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Book A", book.Title)
}

func TestGetBook_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetBook(context.Background(), "bk-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpsertBooks_EmptyBatch(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.UpsertBooks(context.Background(), "library", nil, false))
}
