package service

import (
	"context"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/validation"
)

// GenreService handles the genre flows
type GenreService struct {
	genreRepo GenreRepository
	bookRepo  BookRepository
	runner    *aggregate.Runner
}

// GenreServiceConfig holds configuration for the genre service
type GenreServiceConfig struct {
	GenreRepo GenreRepository
	BookRepo  BookRepository
	Runner    *aggregate.Runner
}

// NewGenreService creates a new genre service
func NewGenreService(cfg GenreServiceConfig) *GenreService {
	return &GenreService{
		genreRepo: cfg.GenreRepo,
		bookRepo:  cfg.BookRepo,
		runner:    runnerOrDefault(cfg.Runner),
	}
}

// List renders every genre sorted by name
func (s *GenreService) List(ctx context.Context) (*Outcome, error) {
	genres, err := s.genreRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Render(ViewGenreList, map[string]any{
		"title":      "Genre List",
		"genre_list": genres,
	}), nil
}

// Detail renders a genre with the books filed under it
func (s *GenreService) Detail(ctx context.Context, id string) (*Outcome, error) {
	genre, results, err := loadDetail[model.Genre](ctx, s.runner, "genre", s.load(id),
		aggregate.Tasks{"genre_books": s.books(id)}, ErrGenreNotFound)
	if err != nil {
		return nil, err
	}
	return Render(ViewGenreDetail, map[string]any{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": aggregate.Get[[]*model.Book](results, "genre_books"),
	}), nil
}

// CreateForm renders an empty genre form
func (s *GenreService) CreateForm(ctx context.Context) (*Outcome, error) {
	return blankForm(ctx, s.runner, s.form("Create Genre", ""))
}

// Create validates a new genre. A genre with the same name that already
// exists is reused instead of inserting a duplicate.
func (s *GenreService) Create(ctx context.Context, in validation.Input) (*Outcome, error) {
	f := s.form("Create Genre", "")
	f.persist = func(ctx context.Context, g *model.Genre) (string, error) {
		existing, err := s.genreRepo.FindByName(ctx, g.Name)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.URL(), nil
		}

		if err := s.genreRepo.Create(ctx, g); err != nil {
			return "", err
		}
		return g.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// UpdateForm renders the form pre-filled with a stored genre
func (s *GenreService) UpdateForm(ctx context.Context, id string) (*Outcome, error) {
	return editForm(ctx, s.runner, s.form("Update Genre", id), s.load(id), ErrGenreNotFound)
}

// Update validates and replaces a stored genre, keeping its ID
func (s *GenreService) Update(ctx context.Context, id string, in validation.Input) (*Outcome, error) {
	f := s.form("Update Genre", id)
	f.persist = func(ctx context.Context, g *model.Genre) (string, error) {
		if err := s.genreRepo.Replace(ctx, g); err != nil {
			return "", notFoundAs(err, ErrGenreNotFound)
		}
		return g.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// DeleteForm renders the delete confirmation with the books blocking it
func (s *GenreService) DeleteForm(ctx context.Context, id string) (*Outcome, error) {
	return confirmDelete(ctx, s.runner, s.deletion(id))
}

// Delete removes a genre unless books are still filed under it
func (s *GenreService) Delete(ctx context.Context, id string) (*Outcome, error) {
	return guardDelete(ctx, s.runner, s.deletion(id))
}

func (s *GenreService) load(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.genreRepo.GetByID(ctx, id)
	}
}

func (s *GenreService) books(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.bookRepo.ListByGenre(ctx, id)
	}
}

func (s *GenreService) form(title, id string) formFlow[model.Genre] {
	return formFlow[model.Genre]{
		view:  ViewGenreForm,
		title: title,
		key:   "genre",
		rules: genreRules,
		build: func(rec validation.Record) *model.Genre {
			return &model.Genre{ID: id, Name: rec.String("name")}
		},
	}
}

func (s *GenreService) deletion(id string) deleteFlow[model.Genre, *model.Book] {
	return deleteFlow[model.Genre, *model.Book]{
		view:          ViewGenreDelete,
		title:         "Delete Genre",
		key:           "genre",
		listURL:       GenreListURL,
		load:          s.load(id),
		dependentsKey: "genre_books",
		dependents:    s.books(id),
		remove: func(ctx context.Context) error {
			return s.genreRepo.Delete(ctx, id)
		},
	}
}
