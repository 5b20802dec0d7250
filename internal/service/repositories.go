package service

import (
	"context"

	"github.com/forgo/library/internal/model"
)

// AuthorRepository defines the interface for author storage
type AuthorRepository interface {
	GetByID(ctx context.Context, id string) (*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, author *model.Author) error
	Replace(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id string) error
}

// GenreRepository defines the interface for genre storage
type GenreRepository interface {
	GetByID(ctx context.Context, id string) (*model.Genre, error)
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	List(ctx context.Context) ([]*model.Genre, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, genre *model.Genre) error
	Replace(ctx context.Context, genre *model.Genre) error
	Delete(ctx context.Context, id string) error
}

// BookRepository defines the interface for book storage
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context) ([]*model.Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Book, error)
	ListByGenre(ctx context.Context, genreID string) ([]*model.Book, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, book *model.Book) error
	Replace(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id string) error
}

// BookInstanceRepository defines the interface for book copy storage
type BookInstanceRepository interface {
	GetByID(ctx context.Context, id string) (*model.BookInstance, error)
	List(ctx context.Context) ([]*model.BookInstance, error)
	ListByBook(ctx context.Context, bookID string) ([]*model.BookInstance, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.BookInstanceStatus) (int, error)
	Create(ctx context.Context, bi *model.BookInstance) error
	Replace(ctx context.Context, bi *model.BookInstance) error
	Delete(ctx context.Context, id string) error
}
