package model

// Book represents a title in the catalog.
// AuthorID and GenreIDs are the stored references; Author and Genres are only
// set when a read populates them.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	AuthorID string   `json:"author"`
	GenreIDs []string `json:"genre"`

	Author *Author  `json:"-"`
	Genres []*Genre `json:"-"`
}

// URL returns the canonical location of the book's detail page
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book references the genre
func (b *Book) HasGenre(genreID string) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// UniqueIDs drops empty and repeated ids, keeping first-occurrence order
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
