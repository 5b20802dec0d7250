package repository

import (
	"context"
	"time"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// BookInstanceRepository handles book copy data access
type BookInstanceRepository struct {
	db database.Database
}

// NewBookInstanceRepository creates a new book instance repository
func NewBookInstanceRepository(db database.Database) *BookInstanceRepository {
	return &BookInstanceRepository{db: db}
}

// GetByID retrieves a copy by ID with its book populated
func (r *BookInstanceRepository) GetByID(ctx context.Context, id string) (*model.BookInstance, error) {
	query := `SELECT * FROM type::thing($tb, $id) FETCH book`
	vars := map[string]interface{}{"tb": tableBookInstance, "id": id}

	data, err := queryRecord(ctx, r.db, query, vars)
	if err != nil || data == nil {
		return nil, err
	}
	return parseBookInstance(data), nil
}

// List retrieves all copies with their books populated
func (r *BookInstanceRepository) List(ctx context.Context) ([]*model.BookInstance, error) {
	return r.list(ctx, `SELECT * FROM bookinstance FETCH book`, nil)
}

// ListByBook retrieves the copies of a book
func (r *BookInstanceRepository) ListByBook(ctx context.Context, bookID string) ([]*model.BookInstance, error) {
	query := `SELECT * FROM bookinstance WHERE book = $book`
	vars := map[string]interface{}{"book": recordRef(tableBook, bookID)}

	return r.list(ctx, query, vars)
}

// Count returns the number of copies
func (r *BookInstanceRepository) Count(ctx context.Context) (int, error) {
	return queryCount(ctx, r.db, `SELECT count() FROM bookinstance GROUP ALL`, nil)
}

// CountByStatus returns the number of copies with the given status
func (r *BookInstanceRepository) CountByStatus(ctx context.Context, status model.BookInstanceStatus) (int, error) {
	query := `SELECT count() FROM bookinstance WHERE status = $status GROUP ALL`
	vars := map[string]interface{}{"status": string(status)}

	return queryCount(ctx, r.db, query, vars)
}

// Create inserts a new copy and assigns its ID
func (r *BookInstanceRepository) Create(ctx context.Context, bi *model.BookInstance) error {
	query := `CREATE type::thing($tb, $id) CONTENT {
		book: $book,
		imprint: $imprint,
		status: $status,
		due_back: $due_back
	}`

	id := newKey()
	applyBookInstanceDefaults(bi)
	if err := r.db.Execute(ctx, query, bookInstanceVars(id, bi)); err != nil {
		return err
	}

	bi.ID = id
	return nil
}

// Replace overwrites every stored field of the copy with the given ID.
// A missing record is reported as database.ErrNotFound.
func (r *BookInstanceRepository) Replace(ctx context.Context, bi *model.BookInstance) error {
	query := `UPDATE type::thing($tb, $id) CONTENT {
		book: $book,
		imprint: $imprint,
		status: $status,
		due_back: $due_back
	}`

	applyBookInstanceDefaults(bi)
	return replaceRecord(ctx, r.db, query, bookInstanceVars(bi.ID, bi))
}

// Delete removes a copy
func (r *BookInstanceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableBookInstance, "id": id}

	return r.db.Execute(ctx, query, vars)
}

func (r *BookInstanceRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.BookInstance, error) {
	rows, err := queryRecords(ctx, r.db, query, vars)
	if err != nil {
		return nil, err
	}

	copies := make([]*model.BookInstance, 0, len(rows))
	for _, row := range rows {
		copies = append(copies, parseBookInstance(row))
	}
	return copies, nil
}

// applyBookInstanceDefaults fills in the status and due date a copy is stored with
func applyBookInstanceDefaults(bi *model.BookInstance) {
	if !bi.Status.IsValid() {
		bi.Status = model.DefaultBookInstanceStatus
	}
	if bi.DueBack.IsZero() {
		bi.DueBack = time.Now()
	}
}

func bookInstanceVars(id string, bi *model.BookInstance) map[string]interface{} {
	return map[string]interface{}{
		"tb":       tableBookInstance,
		"id":       id,
		"book":     recordRef(tableBook, bi.BookID),
		"imprint":  bi.Imprint,
		"status":   string(bi.Status),
		"due_back": dateValue(&bi.DueBack),
	}
}

func parseBookInstance(data map[string]interface{}) *model.BookInstance {
	bi := &model.BookInstance{
		ID:      recordKey(data["id"]),
		BookID:  recordKey(data["book"]),
		Imprint: getString(data, "imprint"),
		Status:  model.BookInstanceStatus(getString(data, "status")),
	}
	if t := getTime(data, "due_back"); t != nil {
		bi.DueBack = *t
	}
	if doc := getDocument(data, "book"); doc != nil {
		bi.Book = parseBook(doc)
	}
	return bi
}
