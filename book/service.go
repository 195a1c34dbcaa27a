package book

import (
	"context"
	"fmt"
	"sync"
)

/*
 * Data types (Book, Draft, Patch) use value semantics.
 * Service represents an API, so it uses pointer semantics.
 */

type UseCase interface {
	List(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, d Draft) (Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, p Patch) (Book, error)
	Delete(ctx context.Context, id int64) error
}

/* Service owns the book collection through its repository.
 * Every operation holds mu for its whole duration, so no two operations interleave.
 */
type Service struct {
	Repo Repository
	mu   sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	if all == nil {
		all = []Book{}
	}
	return all, nil
}

func (s *Service) Create(ctx context.Context, d Draft) (Book, error) {
	if err := d.Validate(); err != nil {
		return Book{}, err
	}
	b := Book{
		Title:  *d.Title,
		Author: *d.Author,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	b = p.Apply(b)
	err = s.Repo.Update(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
