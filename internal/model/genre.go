package model

// Genre represents a category books can be filed under
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Genre name bounds
const (
	MinGenreNameLength = 3
	MaxGenreNameLength = 100
)

// URL returns the canonical location of the genre's detail page
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

// GenreOption is a genre offered as a checkbox on the book form
type GenreOption struct {
	*Genre
	Checked bool
}

// GenreOptions wraps genres as form options, checking those whose id is selected
func GenreOptions(genres []*Genre, selected []string) []GenreOption {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	options := make([]GenreOption, 0, len(genres))
	for _, g := range genres {
		_, checked := set[g.ID]
		options = append(options, GenreOption{Genre: g, Checked: checked})
	}
	return options
}
