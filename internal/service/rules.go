package service

import (
	"fmt"
	"strings"

	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/validation"
)

var (
	trim       = []validation.Transform{validation.Trim}
	trimEscape = []validation.Transform{validation.Trim, validation.Escape}
	escape     = []validation.Transform{validation.Escape}
)

var authorRules = validation.Rules{
	{Field: "first_name", Transforms: trim, Check: "required", Message: "First Name Must Be Specified"},
	{Field: "first_name", Check: "alphanum", Message: "First Name has non-alphanumeric characters"},
	{Field: "first_name", Check: fmt.Sprintf("max=%d", model.MaxAuthorNameLength), Message: "First Name is too long"},
	{Field: "first_name", Transforms: escape},
	{Field: "family_name", Transforms: trim, Check: "required", Message: "Family Name Must Be Specified"},
	{Field: "family_name", Check: "alphanum", Message: "Family Name has non-alphanumeric characters"},
	{Field: "family_name", Check: fmt.Sprintf("max=%d", model.MaxAuthorNameLength), Message: "Family Name is too long"},
	{Field: "family_name", Transforms: escape},
	{Field: "date_of_birth", Check: "iso8601", Message: "Invalid Date Of Birth", Optional: true},
	{Field: "date_of_death", Check: "iso8601", Message: "Invalid Date Of Death", Optional: true},
}

var genreRules = validation.Rules{
	{Field: "name", Transforms: trim, Check: "required", Message: "Genre Name Required"},
	{
		Field:   "name",
		Check:   fmt.Sprintf("min=%d,max=%d", model.MinGenreNameLength, model.MaxGenreNameLength),
		Message: fmt.Sprintf("Genre Name must be between %d and %d characters", model.MinGenreNameLength, model.MaxGenreNameLength),
	},
	{Field: "name", Transforms: escape},
}

var bookRules = validation.Rules{
	{Field: "title", Transforms: trim, Check: "required", Message: "Specify Book Title"},
	{Field: "title", Transforms: escape},
	{Field: "author", Transforms: trim, Check: "required", Message: "Specify Author Name"},
	{Field: "author", Transforms: escape},
	{Field: "summary", Transforms: trim, Check: "required", Message: "Specify Book Summary"},
	{Field: "summary", Transforms: escape},
	{Field: "isbn", Transforms: trim, Check: "required", Message: "Specify Book ISBN"},
	{Field: "isbn", Transforms: escape},
	{Field: "genre", Transforms: trimEscape, Each: true},
}

var bookInstanceRules = validation.Rules{
	{Field: "book", Transforms: trim, Check: "required", Message: "Specify Book"},
	{Field: "book", Transforms: escape},
	{Field: "imprint", Transforms: trim, Check: "required", Message: "Specify Imprint"},
	{Field: "imprint", Transforms: escape},
	{Field: "due_back", Transforms: trim, Check: "iso8601", Message: "Invalid Due Back Date", Optional: true},
	{Field: "status", Transforms: trim, Check: "oneof=" + statusList(), Message: "Invalid Status", Optional: true},
	{Field: "status", Transforms: escape},
}

func statusList() string {
	statuses := model.BookInstanceStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, " ")
}
