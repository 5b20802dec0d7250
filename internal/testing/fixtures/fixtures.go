// Package fixtures provides test data factories for integration testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the catalog
// repositories and return the stored models with their ids set.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	author := f.CreateAuthor(t)
//	book := f.CreateBook(t, author)
//	copy := f.CreateCopy(t, book)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	authors *repository.AuthorRepository
	genres  *repository.GenreRepository
	books   *repository.BookRepository
	copies  *repository.BookInstanceRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		authors: repository.NewAuthorRepository(db),
		genres:  repository.NewGenreRepository(db),
		books:   repository.NewBookRepository(db),
		copies:  repository.NewBookInstanceRepository(db),
	}
}

// randomID generates a random hex suffix
func randomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Author Fixtures
// ============================================================================

// CreateAuthor creates an author named "First<rand> Family<rand>"
func (f *Factory) CreateAuthor(t *testing.T, opts ...func(*model.Author)) *model.Author {
	t.Helper()

	a := &model.Author{
		FirstName:  "First" + randomID(),
		FamilyName: "Family" + randomID(),
	}
	for _, fn := range opts {
		fn(a)
	}

	if err := f.authors.Create(ctx(t), a); err != nil {
		t.Fatalf("fixtures: failed to create author: %v", err)
	}
	return a
}

// WithLifespan sets the author's dates
func WithLifespan(born, died *time.Time) func(*model.Author) {
	return func(a *model.Author) {
		a.DateOfBirth = born
		a.DateOfDeath = died
	}
}

// ============================================================================
// Genre Fixtures
// ============================================================================

// CreateGenre creates a genre with a unique name
func (f *Factory) CreateGenre(t *testing.T, opts ...func(*model.Genre)) *model.Genre {
	t.Helper()

	g := &model.Genre{Name: "Genre " + randomID()}
	for _, fn := range opts {
		fn(g)
	}

	if err := f.genres.Create(ctx(t), g); err != nil {
		t.Fatalf("fixtures: failed to create genre: %v", err)
	}
	return g
}

// ============================================================================
// Book Fixtures
// ============================================================================

// CreateBook creates a book by author filed under genres
func (f *Factory) CreateBook(t *testing.T, author *model.Author, genres ...*model.Genre) *model.Book {
	t.Helper()

	b := &model.Book{
		Title:    "Title " + randomID(),
		Summary:  "A summary.",
		ISBN:     "978" + randomID(),
		AuthorID: author.ID,
	}
	for _, g := range genres {
		b.GenreIDs = append(b.GenreIDs, g.ID)
	}

	if err := f.books.Create(ctx(t), b); err != nil {
		t.Fatalf("fixtures: failed to create book: %v", err)
	}
	return b
}

// ============================================================================
// Copy Fixtures
// ============================================================================

// CreateCopy creates a copy of book, available unless an option says otherwise
func (f *Factory) CreateCopy(t *testing.T, book *model.Book, opts ...func(*model.BookInstance)) *model.BookInstance {
	t.Helper()

	bi := &model.BookInstance{
		BookID:  book.ID,
		Imprint: "Imprint " + randomID(),
		Status:  model.StatusAvailable,
		DueBack: time.Now().UTC().Truncate(time.Second),
	}
	for _, fn := range opts {
		fn(bi)
	}

	if err := f.copies.Create(ctx(t), bi); err != nil {
		t.Fatalf("fixtures: failed to create copy: %v", err)
	}
	return bi
}

// WithStatus sets the copy's status
func WithStatus(s model.BookInstanceStatus) func(*model.BookInstance) {
	return func(bi *model.BookInstance) {
		bi.Status = s
	}
}
