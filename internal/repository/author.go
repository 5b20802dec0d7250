package repository

import (
	"context"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// AuthorRepository handles author data access
type AuthorRepository struct {
	db database.Database
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db database.Database) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableAuthor, "id": id}

	data, err := queryRecord(ctx, r.db, query, vars)
	if err != nil || data == nil {
		return nil, err
	}
	return parseAuthor(data), nil
}

// List retrieves all authors sorted by family name
func (r *AuthorRepository) List(ctx context.Context) ([]*model.Author, error) {
	query := `SELECT * FROM author ORDER BY family_name ASC`

	rows, err := queryRecords(ctx, r.db, query, nil)
	if err != nil {
		return nil, err
	}

	authors := make([]*model.Author, 0, len(rows))
	for _, row := range rows {
		authors = append(authors, parseAuthor(row))
	}
	return authors, nil
}

// Count returns the number of authors
func (r *AuthorRepository) Count(ctx context.Context) (int, error) {
	return queryCount(ctx, r.db, `SELECT count() FROM author GROUP ALL`, nil)
}

// Create inserts a new author and assigns its ID
func (r *AuthorRepository) Create(ctx context.Context, author *model.Author) error {
	query := `CREATE type::thing($tb, $id) CONTENT {
		first_name: $first_name,
		family_name: $family_name,
		date_of_birth: $date_of_birth,
		date_of_death: $date_of_death
	}`

	id := newKey()
	if err := r.db.Execute(ctx, query, authorVars(id, author)); err != nil {
		return err
	}

	author.ID = id
	return nil
}

// Replace overwrites every stored field of the author with the given ID.
// A missing record is reported as database.ErrNotFound.
func (r *AuthorRepository) Replace(ctx context.Context, author *model.Author) error {
	query := `UPDATE type::thing($tb, $id) CONTENT {
		first_name: $first_name,
		family_name: $family_name,
		date_of_birth: $date_of_birth,
		date_of_death: $date_of_death
	}`

	return replaceRecord(ctx, r.db, query, authorVars(author.ID, author))
}

// Delete removes an author
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableAuthor, "id": id}

	return r.db.Execute(ctx, query, vars)
}

func authorVars(id string, author *model.Author) map[string]interface{} {
	return map[string]interface{}{
		"tb":            tableAuthor,
		"id":            id,
		"first_name":    author.FirstName,
		"family_name":   author.FamilyName,
		"date_of_birth": dateValue(author.DateOfBirth),
		"date_of_death": dateValue(author.DateOfDeath),
	}
}

func parseAuthor(data map[string]interface{}) *model.Author {
	return &model.Author{
		ID:          recordKey(data["id"]),
		FirstName:   getString(data, "first_name"),
		FamilyName:  getString(data, "family_name"),
		DateOfBirth: getTime(data, "date_of_birth"),
		DateOfDeath: getTime(data, "date_of_death"),
	}
}
