package metrics

import (
	"context"

	"github.com/marcelsud/bookshelf-api/book"
)

// InstrumentedService decorates a book.UseCase, recording every call's outcome
type InstrumentedService struct {
	inner    book.UseCase
	recorder Recorder
}

// always ensure InstrumentedService implements book.UseCase
var _ book.UseCase = (*InstrumentedService)(nil)

func NewInstrumentedService(inner book.UseCase, recorder Recorder) *InstrumentedService {
	return &InstrumentedService{
		inner:    inner,
		recorder: recorder,
	}
}

func (s *InstrumentedService) List(ctx context.Context) ([]book.Book, error) {
	all, err := s.inner.List(ctx)
	s.recorder.RecordOperation(ctx, OpList, Outcome(err))
	return all, err
}

func (s *InstrumentedService) Create(ctx context.Context, d book.Draft) (book.Book, error) {
	b, err := s.inner.Create(ctx, d)
	s.recorder.RecordOperation(ctx, OpCreate, Outcome(err))
	return b, err
}

func (s *InstrumentedService) Get(ctx context.Context, id int64) (book.Book, error) {
	b, err := s.inner.Get(ctx, id)
	s.recorder.RecordOperation(ctx, OpGet, Outcome(err))
	return b, err
}

func (s *InstrumentedService) Update(ctx context.Context, id int64, p book.Patch) (book.Book, error) {
	b, err := s.inner.Update(ctx, id, p)
	s.recorder.RecordOperation(ctx, OpUpdate, Outcome(err))
	return b, err
}

func (s *InstrumentedService) Delete(ctx context.Context, id int64) error {
	err := s.inner.Delete(ctx, id)
	s.recorder.RecordOperation(ctx, OpDelete, Outcome(err))
	return err
}
