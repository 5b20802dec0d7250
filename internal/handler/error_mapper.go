package handler

import (
	"errors"

	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/service"
)

// MapServiceError converts a service error to the problem shown on the error
// page. Missing entities are 404; anything else is a store failure.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, service.ErrAuthorNotFound):
		return model.NewNotFoundError("Author")
	case errors.Is(err, service.ErrBookNotFound):
		return model.NewNotFoundError("Book")
	case errors.Is(err, service.ErrGenreNotFound):
		return model.NewNotFoundError("Genre")
	case errors.Is(err, service.ErrBookInstanceNotFound):
		return model.NewNotFoundError("Book copy")
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext is MapServiceError with the failed operation
// named in the detail of a store failure
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
