package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

/*
 * Book is data, so it travels by value. Service is an API, so it travels by pointer.
 */

type UseCase interface {
	Create(ctx context.Context, title, author, category string) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, title, author, category string) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	Repo   Repository
	logger zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger failures are reported to
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		Repo:   repo,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, title, author, category string) (Book, error) {
	b := Book{
		Title:    title,
		Author:   author,
		Category: category,
	}
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		s.fail(err, "insert").Str("title", title).Msg("failed to add the book")
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		s.fail(err, "select_all").Msg("failed to load books")
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		s.fail(err, "select").Int64("id", id).Msg("failed to load the book")
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, title, author, category string) error {
	b := Book{
		ID:       id,
		Title:    title,
		Author:   author,
		Category: category,
	}
	err := s.Repo.Update(ctx, b)
	if err != nil {
		s.fail(err, "update").Int64("id", id).Msg("failed to update the book")
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		s.fail(err, "delete").Int64("id", id).Msg("failed to delete the book")
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

// fail starts a log event for a failed statement. A missing row is expected
// operator input and only logged at warn level.
func (s *Service) fail(err error, op string) *zerolog.Event {
	ev := s.logger.Error()
	if errors.Is(err, ErrNotFound) {
		ev = s.logger.Warn()
	}
	return ev.Err(err).Str("op", op)
}
