package repository

import (
	"context"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// BookRepository handles book data access
type BookRepository struct {
	db database.Database
}

// NewBookRepository creates a new book repository
func NewBookRepository(db database.Database) *BookRepository {
	return &BookRepository{db: db}
}

// GetByID retrieves a book by ID with its author and genres populated
func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := `SELECT * FROM type::thing($tb, $id) FETCH author, genre`
	vars := map[string]interface{}{"tb": tableBook, "id": id}

	data, err := queryRecord(ctx, r.db, query, vars)
	if err != nil || data == nil {
		return nil, err
	}
	return parseBook(data), nil
}

// List retrieves all books sorted by title with their authors populated
func (r *BookRepository) List(ctx context.Context) ([]*model.Book, error) {
	return r.list(ctx, `SELECT * FROM book ORDER BY title ASC FETCH author`, nil)
}

// ListByAuthor retrieves the books written by an author
func (r *BookRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Book, error) {
	query := `SELECT * FROM book WHERE author = $author ORDER BY title ASC`
	vars := map[string]interface{}{"author": recordRef(tableAuthor, authorID)}

	return r.list(ctx, query, vars)
}

// ListByGenre retrieves the books filed under a genre
func (r *BookRepository) ListByGenre(ctx context.Context, genreID string) ([]*model.Book, error) {
	query := `SELECT * FROM book WHERE genre CONTAINS $genre ORDER BY title ASC`
	vars := map[string]interface{}{"genre": recordRef(tableGenre, genreID)}

	return r.list(ctx, query, vars)
}

// Count returns the number of books
func (r *BookRepository) Count(ctx context.Context) (int, error) {
	return queryCount(ctx, r.db, `SELECT count() FROM book GROUP ALL`, nil)
}

// Create inserts a new book and assigns its ID
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `CREATE type::thing($tb, $id) CONTENT {
		title: $title,
		summary: $summary,
		isbn: $isbn,
		author: $author,
		genre: $genre
	}`

	id := newKey()
	if err := r.db.Execute(ctx, query, bookVars(id, book)); err != nil {
		return err
	}

	book.ID = id
	return nil
}

// Replace overwrites every stored field of the book with the given ID.
// A missing record is reported as database.ErrNotFound.
func (r *BookRepository) Replace(ctx context.Context, book *model.Book) error {
	query := `UPDATE type::thing($tb, $id) CONTENT {
		title: $title,
		summary: $summary,
		isbn: $isbn,
		author: $author,
		genre: $genre
	}`

	return replaceRecord(ctx, r.db, query, bookVars(book.ID, book))
}

// Delete removes a book
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableBook, "id": id}

	return r.db.Execute(ctx, query, vars)
}

func (r *BookRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Book, error) {
	rows, err := queryRecords(ctx, r.db, query, vars)
	if err != nil {
		return nil, err
	}

	books := make([]*model.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, parseBook(row))
	}
	return books, nil
}

func bookVars(id string, book *model.Book) map[string]interface{} {
	return map[string]interface{}{
		"tb":      tableBook,
		"id":      id,
		"title":   book.Title,
		"summary": book.Summary,
		"isbn":    book.ISBN,
		"author":  recordRef(tableAuthor, book.AuthorID),
		"genre":   recordRefs(tableGenre, model.UniqueIDs(book.GenreIDs)),
	}
}

// parseBook maps a book record. Links that were fetched become populated
// references; links that were not stay as IDs only.
func parseBook(data map[string]interface{}) *model.Book {
	book := &model.Book{
		ID:       recordKey(data["id"]),
		Title:    getString(data, "title"),
		Summary:  getString(data, "summary"),
		ISBN:     getString(data, "isbn"),
		AuthorID: recordKey(data["author"]),
		GenreIDs: recordKeys(data["genre"]),
	}

	if doc := getDocument(data, "author"); doc != nil {
		book.Author = parseAuthor(doc)
	}
	if docs := getDocuments(data, "genre"); len(docs) > 0 {
		book.Genres = parseGenres(docs)
	}
	return book
}
