// Package fixtures provides test data factories for the catalog.
//
// # Factory Pattern
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
//	author := f.CreateAuthor(t)
//	genre := f.CreateGenre(t)
//	book := f.CreateBook(t, author, genre)
//	copy := f.CreateCopy(t, book, fixtures.WithStatus(model.StatusLoaned))
//
// # Cleanup
//
// Test data is cleaned up when the test database is closed.
package fixtures
