package book_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/memory"
	"github.com/marcelsud/bookshelf-api/book/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newSeededService() *book.Service {
	return book.NewService(memory.NewRepository(book.Monotonic, book.DefaultSeeds()...))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		b := book.Book{
			Title:  "test title",
			Author: "test author",
		}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(int64(3), nil)
		s := book.NewService(repo)
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("test title"), Author: strPtr("test author")})
		assert.Nil(t, err)
		assert.Equal(t, int64(3), saved.ID)
		assert.Equal(t, "test title", saved.Title)
		assert.Equal(t, "test author", saved.Author)
	})
	t.Run("fail", func(t *testing.T) {
		b := book.Book{
			Title:  "test title",
			Author: "test author",
		}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(int64(0), fmt.Errorf("some error"))
		s := book.NewService(repo)
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("test title"), Author: strPtr("test author")})
		assert.NotNil(t, err)
		assert.Empty(t, saved)
	})
	t.Run("missing author never reaches the repository", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		_, err := s.Create(ctx, book.Draft{Title: strPtr("T")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, book.ErrMissingFields))
		assert.Contains(t, err.Error(), "author")
		repo.AssertNotCalled(t, "Insert")
	})
	t.Run("empty strings pass the presence check", func(t *testing.T) {
		s := newSeededService()
		saved, err := s.Create(ctx, book.Draft{Title: strPtr(""), Author: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, int64(3), saved.ID)
		assert.Equal(t, "", saved.Title)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	t.Run("merges only the fields that are set", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, int64(1)).Return(book.Book{ID: 1, Title: "Book 1", Author: "Author 1"}, nil)
		repo.On("Update", ctx, book.Book{ID: 1, Title: "New Title", Author: "Author 1"}).Return(nil)
		s := book.NewService(repo)
		updated, err := s.Update(ctx, 1, book.Patch{Title: strPtr("New Title")})
		require.NoError(t, err)
		assert.Equal(t, book.Book{ID: 1, Title: "New Title", Author: "Author 1"}, updated)
	})
	t.Run("not found does not write", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, int64(9999)).Return(book.Book{}, book.ErrNotFound)
		s := book.NewService(repo)
		_, err := s.Update(ctx, 9999, book.Patch{Title: strPtr("x")})
		assert.True(t, errors.Is(err, book.ErrNotFound))
		repo.AssertNotCalled(t, "Update")
	})
	t.Run("empty values are accepted", func(t *testing.T) {
		s := newSeededService()
		updated, err := s.Update(ctx, 2, book.Patch{Title: strPtr(""), Author: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, book.Book{ID: 2}, updated)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	t.Run("is not mutating", func(t *testing.T) {
		s := newSeededService()
		first, err := s.List(ctx)
		require.NoError(t, err)
		second, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, book.DefaultSeeds(), first)
	})
	t.Run("empty collection gives an empty slice", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(nil, nil)
		s := book.NewService(repo)
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Len(t, all, 0)
	})
	t.Run("repository error is wrapped", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(nil, fmt.Errorf("boom"))
		s := book.NewService(repo)
		_, err := s.List(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "selecting books")
	})
}

func TestBookStoreProperties(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns the next id and appends", func(t *testing.T) {
		s := newSeededService()
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("T"), Author: strPtr("A")})
		require.NoError(t, err)
		assert.Equal(t, int64(3), saved.ID)
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, saved, all[2])
	})

	t.Run("create rejects missing fields without mutating", func(t *testing.T) {
		s := newSeededService()
		_, err := s.Create(ctx, book.Draft{Title: strPtr("T")})
		assert.True(t, errors.Is(err, book.ErrMissingFields))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("get round-trips a created book", func(t *testing.T) {
		s := newSeededService()
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("Dune"), Author: strPtr("Herbert")})
		require.NoError(t, err)
		got, err := s.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Herbert", got.Author)
	})

	t.Run("delete removes exactly one book", func(t *testing.T) {
		s := newSeededService()
		require.NoError(t, s.Delete(ctx, 1))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []book.Book{{ID: 2, Title: "Book 2", Author: "Author 2"}}, all)
		_, err = s.Get(ctx, 1)
		assert.True(t, errors.Is(err, book.ErrNotFound))
	})

	t.Run("not found is symmetric and does not mutate", func(t *testing.T) {
		s := newSeededService()
		_, err := s.Get(ctx, 9999)
		assert.True(t, errors.Is(err, book.ErrNotFound))
		_, err = s.Update(ctx, 9999, book.Patch{Title: strPtr("x")})
		assert.True(t, errors.Is(err, book.ErrNotFound))
		err = s.Delete(ctx, 9999)
		assert.True(t, errors.Is(err, book.ErrNotFound))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, book.DefaultSeeds(), all)
	})

	t.Run("monotonic ids are not reused after a delete", func(t *testing.T) {
		s := newSeededService()
		require.NoError(t, s.Delete(ctx, 2))
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("T"), Author: strPtr("A")})
		require.NoError(t, err)
		assert.Equal(t, int64(3), saved.ID)
	})

	t.Run("length ids collide after a delete", func(t *testing.T) {
		s := book.NewService(memory.NewRepository(book.Length, book.DefaultSeeds()...))
		require.NoError(t, s.Delete(ctx, 1))
		saved, err := s.Create(ctx, book.Draft{Title: strPtr("T"), Author: strPtr("A")})
		require.NoError(t, err)
		assert.Equal(t, int64(2), saved.ID)
		got, err := s.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Book 2", got.Title, "lookup returns the first match in collection order")

		require.NoError(t, s.Delete(ctx, 2))
		_, err = s.Get(ctx, 2)
		assert.True(t, errors.Is(err, book.ErrNotFound))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := newSeededService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, book.Draft{Title: strPtr("T"), Author: strPtr("A")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 52)
	seen := make(map[int64]bool)
	for _, b := range all {
		assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
		seen[b.ID] = true
	}
}
