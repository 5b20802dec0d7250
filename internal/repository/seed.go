package repository

import (
	"context"
	"time"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// Catalog is a set of entities inserted together.
// Books reference their author and genres through the populated Author and
// Genres fields; copies reference their book through Book.
type Catalog struct {
	Authors []*model.Author
	Genres  []*model.Genre
	Books   []*model.Book
	Copies  []*model.BookInstance
}

// Seed inserts the whole catalog as a single transaction, assigning every
// entity its ID. Nothing is written if any statement fails.
func Seed(ctx context.Context, db database.Database, c *Catalog) error {
	batch := database.NewAtomicBatch()

	for _, a := range c.Authors {
		a.ID = newKey()
		batch.Add(`CREATE type::thing($tb, $id) CONTENT {
			first_name: $first_name,
			family_name: $family_name,
			date_of_birth: $date_of_birth,
			date_of_death: $date_of_death
		}`, authorVars(a.ID, a))
	}

	for _, g := range c.Genres {
		g.ID = newKey()
		batch.Add(`CREATE type::thing($tb, $id) CONTENT { name: $name }`,
			map[string]interface{}{"tb": tableGenre, "id": g.ID, "name": g.Name})
	}

	for _, b := range c.Books {
		b.ID = newKey()
		if b.Author != nil {
			b.AuthorID = b.Author.ID
		}
		for _, g := range b.Genres {
			b.GenreIDs = append(b.GenreIDs, g.ID)
		}
		b.GenreIDs = model.UniqueIDs(b.GenreIDs)
		batch.Add(`CREATE type::thing($tb, $id) CONTENT {
			title: $title,
			summary: $summary,
			isbn: $isbn,
			author: $author,
			genre: $genre
		}`, bookVars(b.ID, b))
	}

	for _, bi := range c.Copies {
		bi.ID = newKey()
		if bi.Book != nil {
			bi.BookID = bi.Book.ID
		}
		applyBookInstanceDefaults(bi)
		batch.Add(`CREATE type::thing($tb, $id) CONTENT {
			book: $book,
			imprint: $imprint,
			status: $status,
			due_back: $due_back
		}`, bookInstanceVars(bi.ID, bi))
	}

	return batch.Execute(ctx, db)
}

// SampleCatalog returns a small catalog for local development
func SampleCatalog() *Catalog {
	date := func(year int, month time.Month, day int) *time.Time {
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	rothfuss := &model.Author{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date(1973, time.June, 6)}
	bova := &model.Author{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date(1932, time.November, 8)}
	asimov := &model.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date(1920, time.January, 2), DateOfDeath: date(1992, time.April, 6)}
	billings := &model.Author{FirstName: "Bob", FamilyName: "Billings"}
	jones := &model.Author{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: date(1971, time.December, 16)}

	fantasy := &model.Genre{Name: "Fantasy"}
	scifi := &model.Genre{Name: "Science Fiction"}
	poetry := &model.Genre{Name: "French Poetry"}

	wind := &model.Book{
		Title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
		Summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon.",
		ISBN:    "9781473211896",
		Author:  rothfuss,
		Genres:  []*model.Genre{fantasy},
	}
	fear := &model.Book{
		Title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
		Summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile.",
		ISBN:    "9788401352836",
		Author:  rothfuss,
		Genres:  []*model.Genre{fantasy},
	}
	apes := &model.Book{
		Title:   "Apes and Angels",
		Summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity.",
		ISBN:    "9780765379528",
		Author:  bova,
		Genres:  []*model.Genre{scifi},
	}
	death := &model.Book{
		Title:   "Death Wave",
		Summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
		ISBN:    "9780765379504",
		Author:  bova,
		Genres:  []*model.Genre{scifi},
	}
	test1 := &model.Book{
		Title:   "Test Book 1",
		Summary: "Summary of test book 1",
		ISBN:    "ISBN111111",
		Author:  billings,
		Genres:  []*model.Genre{poetry, fantasy},
	}

	return &Catalog{
		Authors: []*model.Author{rothfuss, bova, asimov, billings, jones},
		Genres:  []*model.Genre{fantasy, scifi, poetry},
		Books:   []*model.Book{wind, fear, apes, death, test1},
		Copies:  []*model.BookInstance{
			{Book: wind, Imprint: "London Gollancz, 2014.", Status: model.StatusAvailable},
			{Book: fear, Imprint: "Gollancz, 2011.", Status: model.StatusLoaned, DueBack: time.Now().AddDate(0, 0, 14)},
			{Book: apes, Imprint: "New York Tom Doherty Associates, 2016.", Status: model.StatusAvailable},
			{Book: death, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: model.StatusAvailable},
			{Book: death, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: model.StatusMaintenance},
			{Book: test1, Imprint: "Imprint XXX2", Status: model.StatusReserved},
			{Book: test1, Imprint: "Imprint XXX3"},
		},
	}
}
