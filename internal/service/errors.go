package service

import (
	"errors"

	"github.com/forgo/library/internal/database"
)

// Centralized service layer errors.
// Every error a flow returns is either one of these or a store failure.

// ===== Not Found Errors =====
var (
	ErrAuthorNotFound       = errors.New("author not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrGenreNotFound        = errors.New("genre not found")
	ErrBookInstanceNotFound = errors.New("book instance not found")
)

// IsNotFound reports whether err is one of the not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAuthorNotFound) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrGenreNotFound) ||
		errors.Is(err, ErrBookInstanceNotFound)
}

// notFoundAs reports a record the store could not find as the entity's own
// not-found error
func notFoundAs(err, notFound error) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound
	}
	return err
}
