// Package repository implements the catalog's data access layer on SurrealDB.
//
// Each repository struct handles the reads and writes for one entity. Records
// live in a table named after the entity and are keyed by a UUID, so a record
// id is "author:<uuid>" and the model only carries the key part.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::thing($table, $id) to address a single record
//   - record links for references (book.author, book.genre, bookinstance.book)
//   - FETCH to populate links on reads that need them
//
// A lookup of a missing record returns nil and no error. Any other failure is
// returned wrapped around one of the database package errors.
//
// # Example Usage
//
//	repo := NewAuthorRepository(db)
//	author, err := repo.GetByID(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if author == nil {
//	    // Handle not found
//	}
package repository
