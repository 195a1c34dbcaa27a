package memory

import (
	"context"
	"slices"

	"github.com/marcelsud/bookshelf-api/book"
)

/*
In-memory Repository Implementation

Books live in a slice, so insertion order is the collection order.
It is not safe for concurrent use: book.Service serializes every call.
*/

type Repository struct {
	books    []book.Book
	strategy book.IDStrategy
	highest  int64
}

var (
	_ book.Repository = (*Repository)(nil)
	_ book.Seeder     = (*Repository)(nil)
)

// NewRepository creates a repository holding a copy of seeds
func NewRepository(strategy book.IDStrategy, seeds ...book.Book) *Repository {
	r := &Repository{strategy: strategy}
	r.reset(seeds)
	return r
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	i := r.index(id)
	if i < 0 {
		return book.Book{}, book.ErrNotFound
	}
	return r.books[i], nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	return slices.Clone(r.books), nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	b.ID = r.strategy.NextID(len(r.books), r.highest)
	r.books = append(r.books, b)
	if b.ID > r.highest {
		r.highest = b.ID
	}
	return b.ID, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	i := r.index(b.ID)
	if i < 0 {
		return book.ErrNotFound
	}
	r.books[i].Title = b.Title
	r.books[i].Author = b.Author
	return nil
}

// Delete removes every book with the given id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if r.index(id) < 0 {
		return book.ErrNotFound
	}
	r.books = slices.DeleteFunc(r.books, func(b book.Book) bool {
		return b.ID == id
	})
	return nil
}

// Reset implements book.Seeder
func (r *Repository) Reset(ctx context.Context, books []book.Book) error {
	r.reset(books)
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func (r *Repository) reset(books []book.Book) {
	r.books = append(make([]book.Book, 0, len(books)), books...)
	r.highest = book.HighestID(books)
}

// index returns the position of the first book with the given id, or -1
func (r *Repository) index(id int64) int {
	return slices.IndexFunc(r.books, func(b book.Book) bool {
		return b.ID == id
	})
}
