// Package model defines the catalog entities and their derived fields.
//
// # Domain Entities
//
//   - Author: a person with a first and family name and optional life dates
//   - Genre: a named category
//   - Book: a title written by one Author, filed under any number of Genres
//   - BookInstance: a physical copy of a Book with an imprint, status and due date
//
// # Derived Fields
//
// Values such as Author.Name, Author.Lifespan or the canonical URL of every
// entity are computed on read by methods and are never persisted:
//
//	author.Name()                 // "Jane Austen"
//	author.DateOfBirthFormatted() // "December 16th, 1775" or "unknown"
//	book.URL()                    // "/catalog/book/{id}"
//
// # Error Types
//
// ProblemDetails in errors.go carries the status and message rendered by the
// error page.
package model
