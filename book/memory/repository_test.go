package memory

import (
	"context"
	"testing"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(book.Monotonic)
	b := book.Book{
		Title:  "Foundation",
		Author: "Isaac Asimov",
	}
	all, err := repo.SelectAll(ctx)
	assert.Nil(t, err)
	assert.Empty(t, all)
	id, err := repo.Insert(ctx, b)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)
	saved, err := repo.Select(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, b.Title, saved.Title)
	all, err = repo.SelectAll(ctx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(all))
	assert.Equal(t, b.Title, all[0].Title)
	b.ID = id
	b.Title = "The Foundation"
	assert.Nil(t, repo.Update(ctx, b))
	saved, err = repo.Select(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, "The Foundation", saved.Title)
	assert.Nil(t, repo.Delete(ctx, id))
	_, err = repo.Select(ctx, id)
	assert.Equal(t, book.ErrNotFound, err)
	assert.Nil(t, repo.Close(ctx))
}

func TestRepository_Order(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(book.Monotonic, book.DefaultSeeds()...)

	_, err := repo.Insert(ctx, book.Book{Title: "Book 3", Author: "Author 3"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 2))

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []book.Book{
		{ID: 1, Title: "Book 1", Author: "Author 1"},
		{ID: 3, Title: "Book 3", Author: "Author 3"},
	}, all)
}

func TestRepository_SelectAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(book.Monotonic, book.DefaultSeeds()...)

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	all[0].Title = "changed"

	saved, err := repo.Select(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Book 1", saved.Title)
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(book.Monotonic, book.DefaultSeeds()...)

	assert.Equal(t, book.ErrNotFound, repo.Update(ctx, book.Book{ID: 9999, Title: "x"}))
	assert.Equal(t, book.ErrNotFound, repo.Delete(ctx, 9999))
	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, book.DefaultSeeds(), all)
}

func TestRepository_IDStrategies(t *testing.T) {
	ctx := context.Background()

	t.Run("monotonic", func(t *testing.T) {
		repo := NewRepository(book.Monotonic, book.DefaultSeeds()...)
		require.NoError(t, repo.Delete(ctx, 2))
		require.NoError(t, repo.Delete(ctx, 1))
		id, err := repo.Insert(ctx, book.Book{Title: "T", Author: "A"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
	})

	t.Run("length", func(t *testing.T) {
		repo := NewRepository(book.Length, book.DefaultSeeds()...)
		require.NoError(t, repo.Delete(ctx, 1))
		id, err := repo.Insert(ctx, book.Book{Title: "T", Author: "A"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)

		// two books now share id 2
		saved, err := repo.Select(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Book 2", saved.Title)

		require.NoError(t, repo.Delete(ctx, 2))
		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		_, err = repo.Select(ctx, 2)
		assert.Equal(t, book.ErrNotFound, err)
	})
}

func TestRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(book.Monotonic)
	require.NoError(t, repo.Reset(ctx, []book.Book{{ID: 10, Title: "T", Author: "A"}}))

	id, err := repo.Insert(ctx, book.Book{Title: "T2", Author: "A2"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}
