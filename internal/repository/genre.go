package repository

import (
	"context"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// GenreRepository handles genre data access
type GenreRepository struct {
	db database.Database
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db database.Database) *GenreRepository {
	return &GenreRepository{db: db}
}

// GetByID retrieves a genre by ID
func (r *GenreRepository) GetByID(ctx context.Context, id string) (*model.Genre, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableGenre, "id": id}

	data, err := queryRecord(ctx, r.db, query, vars)
	if err != nil || data == nil {
		return nil, err
	}
	return parseGenre(data), nil
}

// FindByName retrieves the genre with exactly this name
func (r *GenreRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	query := `SELECT * FROM genre WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	data, err := queryRecord(ctx, r.db, query, vars)
	if err != nil || data == nil {
		return nil, err
	}
	return parseGenre(data), nil
}

// List retrieves all genres sorted by name
func (r *GenreRepository) List(ctx context.Context) ([]*model.Genre, error) {
	rows, err := queryRecords(ctx, r.db, `SELECT * FROM genre ORDER BY name ASC`, nil)
	if err != nil {
		return nil, err
	}
	return parseGenres(rows), nil
}

// Count returns the number of genres
func (r *GenreRepository) Count(ctx context.Context) (int, error) {
	return queryCount(ctx, r.db, `SELECT count() FROM genre GROUP ALL`, nil)
}

// Create inserts a new genre and assigns its ID
func (r *GenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	query := `CREATE type::thing($tb, $id) CONTENT { name: $name }`

	id := newKey()
	vars := map[string]interface{}{"tb": tableGenre, "id": id, "name": genre.Name}
	if err := r.db.Execute(ctx, query, vars); err != nil {
		return err
	}

	genre.ID = id
	return nil
}

// Replace overwrites the stored name of the genre with the given ID.
// A missing record is reported as database.ErrNotFound.
func (r *GenreRepository) Replace(ctx context.Context, genre *model.Genre) error {
	query := `UPDATE type::thing($tb, $id) CONTENT { name: $name }`
	vars := map[string]interface{}{"tb": tableGenre, "id": genre.ID, "name": genre.Name}

	return replaceRecord(ctx, r.db, query, vars)
}

// Delete removes a genre
func (r *GenreRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": tableGenre, "id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseGenre(data map[string]interface{}) *model.Genre {
	return &model.Genre{
		ID:   recordKey(data["id"]),
		Name: getString(data, "name"),
	}
}

func parseGenres(rows []map[string]interface{}) []*model.Genre {
	genres := make([]*model.Genre, 0, len(rows))
	for _, row := range rows {
		genres = append(genres, parseGenre(row))
	}
	return genres
}
