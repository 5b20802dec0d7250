package service

import (
	"context"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/validation"
)

// AuthorService handles the author flows
type AuthorService struct {
	authorRepo AuthorRepository
	bookRepo   BookRepository
	runner     *aggregate.Runner
}

// AuthorServiceConfig holds configuration for the author service
type AuthorServiceConfig struct {
	AuthorRepo AuthorRepository
	BookRepo   BookRepository
	Runner     *aggregate.Runner
}

// NewAuthorService creates a new author service
func NewAuthorService(cfg AuthorServiceConfig) *AuthorService {
	return &AuthorService{
		authorRepo: cfg.AuthorRepo,
		bookRepo:   cfg.BookRepo,
		runner:     runnerOrDefault(cfg.Runner),
	}
}

// List renders every author sorted by family name
func (s *AuthorService) List(ctx context.Context) (*Outcome, error) {
	authors, err := s.authorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Render(ViewAuthorList, map[string]any{
		"title":       "Author List",
		"author_list": authors,
	}), nil
}

// Detail renders an author with the books they wrote
func (s *AuthorService) Detail(ctx context.Context, id string) (*Outcome, error) {
	author, results, err := loadDetail[model.Author](ctx, s.runner, "author", s.load(id),
		aggregate.Tasks{"author_books": s.books(id)}, ErrAuthorNotFound)
	if err != nil {
		return nil, err
	}
	return Render(ViewAuthorDetail, map[string]any{
		"title":        "Author Detail",
		"author":       author,
		"author_books": aggregate.Get[[]*model.Book](results, "author_books"),
	}), nil
}

// CreateForm renders an empty author form
func (s *AuthorService) CreateForm(ctx context.Context) (*Outcome, error) {
	return blankForm(ctx, s.runner, s.form("Create Author", ""))
}

// Create validates and inserts a new author
func (s *AuthorService) Create(ctx context.Context, in validation.Input) (*Outcome, error) {
	f := s.form("Create Author", "")
	f.persist = func(ctx context.Context, a *model.Author) (string, error) {
		if err := s.authorRepo.Create(ctx, a); err != nil {
			return "", err
		}
		return a.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// UpdateForm renders the form pre-filled with a stored author
func (s *AuthorService) UpdateForm(ctx context.Context, id string) (*Outcome, error) {
	return editForm(ctx, s.runner, s.form("Update Author", id), s.load(id), ErrAuthorNotFound)
}

// Update validates and replaces a stored author, keeping its ID
func (s *AuthorService) Update(ctx context.Context, id string, in validation.Input) (*Outcome, error) {
	f := s.form("Update Author", id)
	f.persist = func(ctx context.Context, a *model.Author) (string, error) {
		if err := s.authorRepo.Replace(ctx, a); err != nil {
			return "", notFoundAs(err, ErrAuthorNotFound)
		}
		return a.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// DeleteForm renders the delete confirmation with the books blocking it
func (s *AuthorService) DeleteForm(ctx context.Context, id string) (*Outcome, error) {
	return confirmDelete(ctx, s.runner, s.deletion(id))
}

// Delete removes an author unless books still reference them
func (s *AuthorService) Delete(ctx context.Context, id string) (*Outcome, error) {
	return guardDelete(ctx, s.runner, s.deletion(id))
}

func (s *AuthorService) load(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.authorRepo.GetByID(ctx, id)
	}
}

func (s *AuthorService) books(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.bookRepo.ListByAuthor(ctx, id)
	}
}

func (s *AuthorService) form(title, id string) formFlow[model.Author] {
	return formFlow[model.Author]{
		view:  ViewAuthorForm,
		title: title,
		key:   "author",
		rules: authorRules,
		build: func(rec validation.Record) *model.Author {
			a := &model.Author{
				ID:         id,
				FirstName:  rec.String("first_name"),
				FamilyName: rec.String("family_name"),
			}
			if t, ok := rec.Time("date_of_birth"); ok {
				a.DateOfBirth = &t
			}
			if t, ok := rec.Time("date_of_death"); ok {
				a.DateOfDeath = &t
			}
			return a
		},
	}
}

func (s *AuthorService) deletion(id string) deleteFlow[model.Author, *model.Book] {
	return deleteFlow[model.Author, *model.Book]{
		view:          ViewAuthorDelete,
		title:         "Delete Author",
		key:           "author",
		listURL:       AuthorListURL,
		load:          s.load(id),
		dependentsKey: "author_books",
		dependents:    s.books(id),
		remove: func(ctx context.Context) error {
			return s.authorRepo.Delete(ctx, id)
		},
	}
}

func runnerOrDefault(r *aggregate.Runner) *aggregate.Runner {
	if r == nil {
		return aggregate.NewRunner(aggregate.Options{})
	}
	return r
}
