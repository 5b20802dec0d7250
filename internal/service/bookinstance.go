package service

import (
	"context"
	"time"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/validation"
)

// BookInstanceService handles the book copy flows
type BookInstanceService struct {
	bookInstanceRepo BookInstanceRepository
	bookRepo         BookRepository
	runner           *aggregate.Runner
	now              func() time.Time
}

// BookInstanceServiceConfig holds configuration for the book instance service
type BookInstanceServiceConfig struct {
	BookInstanceRepo BookInstanceRepository
	BookRepo         BookRepository
	Runner           *aggregate.Runner
	// Now defaults the due date of copies submitted without one
	Now func() time.Time
}

// NewBookInstanceService creates a new book instance service
func NewBookInstanceService(cfg BookInstanceServiceConfig) *BookInstanceService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &BookInstanceService{
		bookInstanceRepo: cfg.BookInstanceRepo,
		bookRepo:         cfg.BookRepo,
		runner:           runnerOrDefault(cfg.Runner),
		now:              now,
	}
}

// List renders every copy with its book
func (s *BookInstanceService) List(ctx context.Context) (*Outcome, error) {
	copies, err := s.bookInstanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Render(ViewBookInstanceList, map[string]any{
		"title":             "Book Instance List",
		"bookinstance_list": copies,
	}), nil
}

// Detail renders a copy with its book
func (s *BookInstanceService) Detail(ctx context.Context, id string) (*Outcome, error) {
	bi, _, err := loadDetail[model.BookInstance](ctx, s.runner, "bookinstance", s.load(id), nil, ErrBookInstanceNotFound)
	if err != nil {
		return nil, err
	}

	title := "Copy"
	if bi.Book != nil {
		title = "Copy: " + bi.Book.Title
	}
	return Render(ViewBookInstanceDetail, map[string]any{
		"title":        title,
		"bookinstance": bi,
	}), nil
}

// CreateForm renders an empty copy form with the books to pick from
func (s *BookInstanceService) CreateForm(ctx context.Context) (*Outcome, error) {
	return blankForm(ctx, s.runner, s.form("Create Book Instance", ""))
}

// Create validates and inserts a new copy
func (s *BookInstanceService) Create(ctx context.Context, in validation.Input) (*Outcome, error) {
	f := s.form("Create Book Instance", "")
	f.persist = func(ctx context.Context, bi *model.BookInstance) (string, error) {
		if err := s.bookInstanceRepo.Create(ctx, bi); err != nil {
			return "", err
		}
		return bi.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// UpdateForm renders the form pre-filled with a stored copy
func (s *BookInstanceService) UpdateForm(ctx context.Context, id string) (*Outcome, error) {
	return editForm(ctx, s.runner, s.form("Update Book Instance", id), s.load(id), ErrBookInstanceNotFound)
}

// Update validates and replaces a stored copy, keeping its ID
func (s *BookInstanceService) Update(ctx context.Context, id string, in validation.Input) (*Outcome, error) {
	f := s.form("Update Book Instance", id)
	f.persist = func(ctx context.Context, bi *model.BookInstance) (string, error) {
		if err := s.bookInstanceRepo.Replace(ctx, bi); err != nil {
			return "", notFoundAs(err, ErrBookInstanceNotFound)
		}
		return bi.URL(), nil
	}
	return submitForm(ctx, s.runner, f, in)
}

// DeleteForm renders the delete confirmation
func (s *BookInstanceService) DeleteForm(ctx context.Context, id string) (*Outcome, error) {
	return confirmDelete(ctx, s.runner, s.deletion(id))
}

// Delete removes a copy. Nothing references copies, so it is never blocked.
func (s *BookInstanceService) Delete(ctx context.Context, id string) (*Outcome, error) {
	return guardDelete(ctx, s.runner, s.deletion(id))
}

func (s *BookInstanceService) load(id string) aggregate.Task {
	return func(ctx context.Context) (any, error) {
		return s.bookInstanceRepo.GetByID(ctx, id)
	}
}

func (s *BookInstanceService) form(title, id string) formFlow[model.BookInstance] {
	return formFlow[model.BookInstance]{
		view:  ViewBookInstanceForm,
		title: title,
		key:   "bookinstance",
		rules: bookInstanceRules,
		build: func(rec validation.Record) *model.BookInstance {
			bi := &model.BookInstance{
				ID:      id,
				BookID:  rec.String("book"),
				Imprint: rec.String("imprint"),
				Status:  model.BookInstanceStatus(rec.String("status")),
			}
			if !bi.Status.IsValid() {
				bi.Status = model.DefaultBookInstanceStatus
			}
			if t, ok := rec.Time("due_back"); ok {
				bi.DueBack = t
			} else {
				bi.DueBack = s.now()
			}
			return bi
		},
		choices: aggregate.Tasks{
			"book_list": func(ctx context.Context) (any, error) { return s.bookRepo.List(ctx) },
		},
		decorate: func(m map[string]any, bi *model.BookInstance, choices aggregate.Results) {
			m["book_list"] = aggregate.Get[[]*model.Book](choices, "book_list")
			m["status_list"] = model.BookInstanceStatuses()
			if bi != nil {
				m["selected_book"] = bi.BookID
			}
		},
	}
}

func (s *BookInstanceService) deletion(id string) deleteFlow[model.BookInstance, struct{}] {
	return deleteFlow[model.BookInstance, struct{}]{
		view:    ViewBookInstanceDelete,
		title:   "Delete Book Instance",
		key:     "bookinstance",
		listURL: BookInstanceListURL,
		load:    s.load(id),
		remove: func(ctx context.Context) error {
			return s.bookInstanceRepo.Delete(ctx, id)
		},
	}
}
