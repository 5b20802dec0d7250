package service

import (
	"context"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/model"
)

// IndexCounts are the totals shown on the dashboard
type IndexCounts struct {
	BookCount                  int
	BookInstanceCount          int
	BookInstanceAvailableCount int
	AuthorCount                int
	GenreCount                 int
}

// IndexService renders the catalog dashboard
type IndexService struct {
	authorRepo       AuthorRepository
	bookRepo         BookRepository
	genreRepo        GenreRepository
	bookInstanceRepo BookInstanceRepository
	runner           *aggregate.Runner
}

// IndexServiceConfig holds configuration for the index service
type IndexServiceConfig struct {
	AuthorRepo       AuthorRepository
	BookRepo         BookRepository
	GenreRepo        GenreRepository
	BookInstanceRepo BookInstanceRepository
	Runner           *aggregate.Runner
}

// NewIndexService creates a new index service
func NewIndexService(cfg IndexServiceConfig) *IndexService {
	return &IndexService{
		authorRepo:       cfg.AuthorRepo,
		bookRepo:         cfg.BookRepo,
		genreRepo:        cfg.GenreRepo,
		bookInstanceRepo: cfg.BookInstanceRepo,
		runner:           runnerOrDefault(cfg.Runner),
	}
}

// Index counts every entity in parallel. A failed count does not fail the
// request: the error is shown on the dashboard instead of the counts.
func (s *IndexService) Index(ctx context.Context) (*Outcome, error) {
	results, err := s.runner.Run(ctx, aggregate.Tasks{
		"book_count": func(ctx context.Context) (any, error) { return s.bookRepo.Count(ctx) },
		"book_instance_count": func(ctx context.Context) (any, error) {
			return s.bookInstanceRepo.Count(ctx)
		},
		"book_instance_available_count": func(ctx context.Context) (any, error) {
			return s.bookInstanceRepo.CountByStatus(ctx, model.StatusAvailable)
		},
		"author_count": func(ctx context.Context) (any, error) { return s.authorRepo.Count(ctx) },
		"genre_count":  func(ctx context.Context) (any, error) { return s.genreRepo.Count(ctx) },
	})

	m := map[string]any{"title": "Local Library Home"}
	if err != nil {
		m["error"] = err
		return Render(ViewIndex, m), nil
	}

	m["data"] = &IndexCounts{
		BookCount:                  aggregate.Get[int](results, "book_count"),
		BookInstanceCount:          aggregate.Get[int](results, "book_instance_count"),
		BookInstanceAvailableCount: aggregate.Get[int](results, "book_instance_available_count"),
		AuthorCount:                aggregate.Get[int](results, "author_count"),
		GenreCount:                 aggregate.Get[int](results, "genre_count"),
	}
	return Render(ViewIndex, m), nil
}
