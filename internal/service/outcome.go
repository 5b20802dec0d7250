package service

import "net/http"

// View names
const (
	ViewIndex              = "index"
	ViewAuthorList         = "author_list"
	ViewAuthorDetail       = "author_detail"
	ViewAuthorForm         = "author_form"
	ViewAuthorDelete       = "author_delete"
	ViewGenreList          = "genre_list"
	ViewGenreDetail        = "genre_detail"
	ViewGenreForm          = "genre_form"
	ViewGenreDelete        = "genre_delete"
	ViewBookList           = "book_list"
	ViewBookDetail         = "book_detail"
	ViewBookForm           = "book_form"
	ViewBookDelete         = "book_delete"
	ViewBookInstanceList   = "bookinstance_list"
	ViewBookInstanceDetail = "bookinstance_detail"
	ViewBookInstanceForm   = "bookinstance_form"
	ViewBookInstanceDelete = "bookinstance_delete"
)

// List locations
const (
	AuthorListURL       = "/catalog/authors"
	GenreListURL        = "/catalog/genres"
	BookListURL         = "/catalog/books"
	BookInstanceListURL = "/catalog/bookinstances"
)

// Outcome is the result of a flow: a view to render, or a redirect when
// Location is set
type Outcome struct {
	View     string
	Model    map[string]any
	Status   int
	Location string
}

// Render creates an outcome that renders view with a 200 status
func Render(view string, model map[string]any) *Outcome {
	if model == nil {
		model = map[string]any{}
	}
	return &Outcome{View: view, Model: model, Status: http.StatusOK}
}

// Redirect creates an outcome that redirects to location
func Redirect(location string) *Outcome {
	return &Outcome{Location: location, Status: http.StatusFound}
}

// IsRedirect reports whether the outcome is a redirect
func (o *Outcome) IsRedirect() bool {
	return o.Location != ""
}
