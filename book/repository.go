package book

import "context"

/* Small interfaces.
 * Interfaces abstract behaviour, not things, and are written for their users, not for tests.
 */

/* Select, Update and Delete act on the first book, in collection order, whose id matches,
 * and return ErrNotFound when there is none.
 */

type Reader interface {
	Select(ctx context.Context, id int64) (Book, error)
	SelectAll(ctx context.Context) ([]Book, error)
}

type Writer interface {
	// Insert appends the book, ignoring b.ID, and returns the id it was given
	Insert(ctx context.Context, b Book) (int64, error)
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id int64) error
}

/* Interface composition */

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

// Seeder replaces the whole collection with the given books, keeping their ids
type Seeder interface {
	Reset(ctx context.Context, books []Book) error
}
