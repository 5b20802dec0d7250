package repository

import (
	"context"

	"github.com/forgo/library/internal/database"
)

// schemaStatements define the catalog tables. Every statement is idempotent so
// the schema can be applied to a database that already has it.
var schemaStatements = []string{
	`DEFINE TABLE IF NOT EXISTS author SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS first_name ON author TYPE string ASSERT string::len($value) BETWEEN 1 AND 100`,
	`DEFINE FIELD IF NOT EXISTS family_name ON author TYPE string ASSERT string::len($value) BETWEEN 1 AND 100`,
	`DEFINE FIELD IF NOT EXISTS date_of_birth ON author TYPE option<datetime>`,
	`DEFINE FIELD IF NOT EXISTS date_of_death ON author TYPE option<datetime>`,
	`DEFINE INDEX IF NOT EXISTS author_family_name ON author FIELDS family_name`,

	`DEFINE TABLE IF NOT EXISTS genre SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS name ON genre TYPE string`,
	`DEFINE INDEX IF NOT EXISTS genre_name ON genre FIELDS name`,

	`DEFINE TABLE IF NOT EXISTS book SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS title ON book TYPE string`,
	`DEFINE FIELD IF NOT EXISTS summary ON book TYPE string`,
	`DEFINE FIELD IF NOT EXISTS isbn ON book TYPE string`,
	`DEFINE FIELD IF NOT EXISTS author ON book TYPE record<author>`,
	`DEFINE FIELD IF NOT EXISTS genre ON book TYPE set<record<genre>> DEFAULT []`,
	`DEFINE INDEX IF NOT EXISTS book_author ON book FIELDS author`,

	`DEFINE TABLE IF NOT EXISTS bookinstance SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS book ON bookinstance TYPE record<book>`,
	`DEFINE FIELD IF NOT EXISTS imprint ON bookinstance TYPE string`,
	`DEFINE FIELD IF NOT EXISTS status ON bookinstance TYPE string DEFAULT 'Maintenance' ASSERT $value IN ['Available', 'Maintenance', 'Loaned', 'Reserved']`,
	`DEFINE FIELD IF NOT EXISTS due_back ON bookinstance TYPE datetime DEFAULT time::now()`,
	`DEFINE INDEX IF NOT EXISTS bookinstance_book ON bookinstance FIELDS book`,
	`DEFINE INDEX IF NOT EXISTS bookinstance_status ON bookinstance FIELDS status`,
}

// SchemaStatements returns the table definitions in the order they are applied
func SchemaStatements() []string {
	return append([]string(nil), schemaStatements...)
}

// ApplySchema defines every catalog table in one transaction
func ApplySchema(ctx context.Context, db database.Database) error {
	batch := database.NewAtomicBatch()
	for _, stmt := range schemaStatements {
		batch.Add(stmt, nil)
	}
	return batch.Execute(ctx, db)
}

// Tables lists the catalog tables, referencing tables first
func Tables() []string {
	return []string{tableBookInstance, tableBook, tableAuthor, tableGenre}
}
