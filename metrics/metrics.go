package metrics

import (
	"context"
	"errors"

	"github.com/marcelsud/bookshelf-api/book"
)

// Operation names recorded on the books.operations counter
const (
	OpList   = "list"
	OpCreate = "create"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Outcomes recorded on the books.operations counter
const (
	OutcomeOK            = "ok"
	OutcomeMissingFields = "missing_fields"
	OutcomeNotFound      = "not_found"
	OutcomeError         = "error"
)

// Collector defines the interface for collecting metrics from the book collection.
type Collector interface {
	// BookCount returns how many books the collection currently holds
	BookCount(ctx context.Context) (int64, error)
}

// Recorder records the outcome of a single book operation.
type Recorder interface {
	RecordOperation(ctx context.Context, operation, outcome string)
}

// UseCaseCollector implements Collector on top of a book.UseCase
type UseCaseCollector struct {
	books book.UseCase
}

// NewUseCaseCollector creates a collector reading through the service
func NewUseCaseCollector(books book.UseCase) *UseCaseCollector {
	return &UseCaseCollector{books: books}
}

func (c *UseCaseCollector) BookCount(ctx context.Context) (int64, error) {
	all, err := c.books.List(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// Outcome classifies an operation error
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, book.ErrMissingFields):
		return OutcomeMissingFields
	case errors.Is(err, book.ErrNotFound):
		return OutcomeNotFound
	}
	return OutcomeError
}
