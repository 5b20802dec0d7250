package service

import (
	"context"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/validation"
)

// BookService handles the book flows
type BookService struct {
	bookRepo         BookRepository
	authorRepo       AuthorRepository
	genreRepo        GenreRepository
	bookInstanceRepo BookInstanceRepository
	runner           *aggregate.Runner
}

// BookServiceConfig holds configuration for the book service
type BookServiceConfig struct {
	BookRepo         BookRepository
	AuthorRepo       AuthorRepository
	GenreRepo        GenreRepository
	BookInstanceRepo BookInstanceRepository
	Runner           *aggregate.Runner
}

// NewBookService creates a new book service
func NewBookService(cfg BookServiceConfig) *BookService {
	return &BookService{
		bookRepo:         cfg.BookRepo,
		authorRepo:       cfg.AuthorRepo,
		genreRepo:        cfg.GenreRepo,
		bookInstanceRepo: cfg.BookInstanceRepo,
		runner:           runnerOrDefault(cfg.Runner),
	}
}

// List renders every book sorted by title with its author
func (s *BookService) List(ctx context.Context) (*Outcome, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Render(ViewBookList, map[string]any{
		"title":     "Book List",
		"book_list": books,
	}), nil
}

// Detail renders a book with its author, genres and copies
func (s *BookService) Detail(ctx context.Context, id string) (*Outcome, error) {
	book, results, err := loadDetail[model.Book](ctx, s.runner, "book", s.load(id),
		aggregate.Tasks{"book_instances": s.copies(id)}, ErrBookNotFound)
	if err != nil {
		return nil, err
	}
	return Render(ViewBookDetail, map[string]any{
		"title":          book.Title,
		"book":           book,
		"book_instances": aggregate.Get[[]*model.BookInstance](results, "book_instances"),
	}), nil
}

// CreateForm renders an empty book form with the authors and genres to pick from
func (s *BookService) CreateForm(ctx context.Context) (*Outcome, error) {
	return blankForm(ctx, s.runner, s.form("Create Book", ""))
}

// Create validates and inserts a new book
func (s *BookService) Create(ctx context.Context, in validation.Input) (*Outcome, error) {
	f := s.form("Create Book", "")
	f.persist = func(ctx context.Context, b *model.Book) (string, error) {
		if err := s.bookRepo.Create(ctx, b); err != nil {
			return "", err
		}
		return b.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// UpdateForm renders the form pre-filled with a stored book, its genres checked
func (s *BookService) UpdateForm(ctx context.Context, id string) (*Outcome, error) {
	return editForm(ctx, s.runner, s.form("Update Book", id), s.load(id), ErrBookNotFound)
}

// Update validates and replaces a stored book, keeping its ID
func (s *BookService) Update(ctx context.Context, id string, in validation.Input) (*Outcome, error) {
	f := s.form("Update Book", id)
	f.persist = func(ctx context.Context, b *model.Book) (string, error) {
		if err := s.bookRepo.Replace(ctx, b); err != nil {
			return "", notFoundAs(err, ErrBookNotFound)
		}
		return b.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// DeleteForm renders the delete confirmation with the copies blocking it
func (s *BookService) DeleteForm(ctx context.Context, id string) (*Outcome, error) {
	return confirmDelete(ctx, s.runner, s.deletion(id))
}

// Delete removes a book unless copies of it still exist
func (s *BookService) Delete(ctx context.Context, id string) (*Outcome, error) {
	return guardDelete(ctx, s.runner, s.deletion(id))
}

func (s *BookService) load(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.bookRepo.GetByID(ctx, id)
	}
}

func (s *BookService) copies(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.bookInstanceRepo.ListByBook(ctx, id)
	}
}

func (s *BookService) form(title, id string) formFlow[model.Book] {
	return formFlow[model.Book]{
		view:  ViewBookForm,
		title: title,
		key:   "book",
		rules: bookRules,
		build: func(rec validation.Record) *model.Book {
			return &model.Book{
				ID:       id,
				Title:    rec.String("title"),
				Summary:  rec.String("summary"),
				ISBN:     rec.String("isbn"),
				AuthorID: rec.String("author"),
				GenreIDs: model.UniqueIDs(rec.Strings("genre")),
			}
		},
		choices: aggregate.Tasks{
			"authors": func(ctx context.Context) (any, error) { return s.authorRepo.List(ctx) },
			"genres":  func(ctx context.Context) (any, error) { return s.genreRepo.List(ctx) },
		},
		decorate: func(m map[string]any, b *model.Book, choices aggregate.Results) {
			var selected []string
			if b != nil {
				selected = b.GenreIDs
			}
			m["authors"] = aggregate.Get[[]*model.Author](choices, "authors")
			m["genres"] = model.GenreOptions(aggregate.Get[[]*model.Genre](choices, "genres"), selected)
		},
	}
}

func (s *BookService) deletion(id string) deleteFlow[model.Book, *model.BookInstance] {
	return deleteFlow[model.Book, *model.BookInstance]{
		view:          ViewBookDelete,
		title:         "Delete Book",
		key:           "book",
		listURL:       BookListURL,
		load:          s.load(id),
		dependentsKey: "book_instances",
		dependents:    s.copies(id),
		remove: func(ctx context.Context) error {
			return s.bookRepo.Delete(ctx, id)
		},
	}
}
