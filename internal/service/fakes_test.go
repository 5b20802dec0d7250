package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
)

// memCatalog is an in-memory store shared by the fake repositories
type memCatalog struct {
	mu      sync.Mutex
	seq     int
	writes  int
	authors map[string]model.Author
	genres  map[string]model.Genre
	books   map[string]model.Book
	copies  map[string]model.BookInstance

	// readErr fails every read when set
	readErr error
	// writeErr fails every write when set
	writeErr error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		authors: map[string]model.Author{},
		genres:  map[string]model.Genre{},
		books:   map[string]model.Book{},
		copies:  map[string]model.BookInstance{},
	}
}

func (c *memCatalog) nextID(prefix string) string {
	c.seq++
	return fmt.Sprintf("%s%d", prefix, c.seq)
}

func (c *memCatalog) read() error {
	return c.readErr
}

func (c *memCatalog) write() error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes++
	return nil
}

func (c *memCatalog) authorRepo() *memAuthorRepo     { return &memAuthorRepo{c} }
func (c *memCatalog) genreRepo() *memGenreRepo       { return &memGenreRepo{c} }
func (c *memCatalog) bookRepo() *memBookRepo         { return &memBookRepo{c} }
func (c *memCatalog) bookInstanceRepo() *memCopyRepo { return &memCopyRepo{c} }

func (c *memCatalog) runner() *aggregate.Runner {
	return aggregate.NewRunner(aggregate.Options{})
}

func (c *memCatalog) authorService() *AuthorService {
	return NewAuthorService(AuthorServiceConfig{
		AuthorRepo: c.authorRepo(),
		BookRepo:   c.bookRepo(),
		Runner:     c.runner(),
	})
}

func (c *memCatalog) genreService() *GenreService {
	return NewGenreService(GenreServiceConfig{
		GenreRepo: c.genreRepo(),
		BookRepo:  c.bookRepo(),
		Runner:    c.runner(),
	})
}

func (c *memCatalog) bookService() *BookService {
	return NewBookService(BookServiceConfig{
		BookRepo:         c.bookRepo(),
		AuthorRepo:       c.authorRepo(),
		GenreRepo:        c.genreRepo(),
		BookInstanceRepo: c.bookInstanceRepo(),
		Runner:           c.runner(),
	})
}

func (c *memCatalog) bookInstanceService(now time.Time) *BookInstanceService {
	return NewBookInstanceService(BookInstanceServiceConfig{
		BookInstanceRepo: c.bookInstanceRepo(),
		BookRepo:         c.bookRepo(),
		Runner:           c.runner(),
		Now:              func() time.Time { return now },
	})
}

func (c *memCatalog) indexService() *IndexService {
	return NewIndexService(IndexServiceConfig{
		AuthorRepo:       c.authorRepo(),
		BookRepo:         c.bookRepo(),
		GenreRepo:        c.genreRepo(),
		BookInstanceRepo: c.bookInstanceRepo(),
		Runner:           c.runner(),
	})
}

// ----------------------------------------------------------------------------

type memAuthorRepo struct{ c *memCatalog }

func (r *memAuthorRepo) GetByID(ctx context.Context, id string) (*model.Author, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	a, ok := r.c.authors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memAuthorRepo) List(ctx context.Context) ([]*model.Author, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	out := make([]*model.Author, 0, len(r.c.authors))
	for _, a := range r.c.authors {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FamilyName < out[j].FamilyName })
	return out, nil
}

func (r *memAuthorRepo) Count(ctx context.Context) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return len(r.c.authors), r.c.read()
}

func (r *memAuthorRepo) Create(ctx context.Context, a *model.Author) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	a.ID = r.c.nextID("a")
	r.c.authors[a.ID] = *a
	return nil
}

func (r *memAuthorRepo) Replace(ctx context.Context, a *model.Author) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	if _, ok := r.c.authors[a.ID]; !ok {
		return database.ErrNotFound
	}
	r.c.authors[a.ID] = *a
	return nil
}

func (r *memAuthorRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	delete(r.c.authors, id)
	return nil
}

// ----------------------------------------------------------------------------

type memGenreRepo struct{ c *memCatalog }

func (r *memGenreRepo) GetByID(ctx context.Context, id string) (*model.Genre, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	g, ok := r.c.genres[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *memGenreRepo) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	for _, g := range r.c.genres {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *memGenreRepo) List(ctx context.Context) ([]*model.Genre, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	out := make([]*model.Genre, 0, len(r.c.genres))
	for _, g := range r.c.genres {
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memGenreRepo) Count(ctx context.Context) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return len(r.c.genres), r.c.read()
}

func (r *memGenreRepo) Create(ctx context.Context, g *model.Genre) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	g.ID = r.c.nextID("g")
	r.c.genres[g.ID] = *g
	return nil
}

func (r *memGenreRepo) Replace(ctx context.Context, g *model.Genre) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	if _, ok := r.c.genres[g.ID]; !ok {
		return database.ErrNotFound
	}
	r.c.genres[g.ID] = *g
	return nil
}

func (r *memGenreRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	delete(r.c.genres, id)
	return nil
}

// ----------------------------------------------------------------------------

type memBookRepo struct{ c *memCatalog }

func (r *memBookRepo) GetByID(ctx context.Context, id string) (*model.Book, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	b, ok := r.c.books[id]
	if !ok {
		return nil, nil
	}
	if a, ok := r.c.authors[b.AuthorID]; ok {
		b.Author = &a
	}
	for _, gid := range b.GenreIDs {
		if g, ok := r.c.genres[gid]; ok {
			b.Genres = append(b.Genres, &g)
		}
	}
	return &b, nil
}

func (r *memBookRepo) filter(keep func(model.Book) bool) ([]*model.Book, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	out := []*model.Book{}
	for _, b := range r.c.books {
		if keep(b) {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *memBookRepo) List(ctx context.Context) ([]*model.Book, error) {
	return r.filter(func(model.Book) bool { return true })
}

func (r *memBookRepo) ListByAuthor(ctx context.Context, authorID string) ([]*model.Book, error) {
	return r.filter(func(b model.Book) bool { return b.AuthorID == authorID })
}

func (r *memBookRepo) ListByGenre(ctx context.Context, genreID string) ([]*model.Book, error) {
	return r.filter(func(b model.Book) bool { return b.HasGenre(genreID) })
}

func (r *memBookRepo) Count(ctx context.Context) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return len(r.c.books), r.c.read()
}

func (r *memBookRepo) Create(ctx context.Context, b *model.Book) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	b.ID = r.c.nextID("b")
	r.c.books[b.ID] = *b
	return nil
}

func (r *memBookRepo) Replace(ctx context.Context, b *model.Book) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	if _, ok := r.c.books[b.ID]; !ok {
		return database.ErrNotFound
	}
	r.c.books[b.ID] = *b
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	delete(r.c.books, id)
	return nil
}

// ----------------------------------------------------------------------------

type memCopyRepo struct{ c *memCatalog }

func (r *memCopyRepo) GetByID(ctx context.Context, id string) (*model.BookInstance, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	bi, ok := r.c.copies[id]
	if !ok {
		return nil, nil
	}
	if b, ok := r.c.books[bi.BookID]; ok {
		bi.Book = &b
	}
	return &bi, nil
}

func (r *memCopyRepo) filter(keep func(model.BookInstance) bool) ([]*model.BookInstance, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.read(); err != nil {
		return nil, err
	}
	out := []*model.BookInstance{}
	for _, bi := range r.c.copies {
		if keep(bi) {
			out = append(out, &bi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCopyRepo) List(ctx context.Context) ([]*model.BookInstance, error) {
	return r.filter(func(model.BookInstance) bool { return true })
}

func (r *memCopyRepo) ListByBook(ctx context.Context, bookID string) ([]*model.BookInstance, error) {
	return r.filter(func(bi model.BookInstance) bool { return bi.BookID == bookID })
}

func (r *memCopyRepo) Count(ctx context.Context) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return len(r.c.copies), r.c.read()
}

func (r *memCopyRepo) CountByStatus(ctx context.Context, status model.BookInstanceStatus) (int, error) {
	copies, err := r.filter(func(bi model.BookInstance) bool { return bi.Status == status })
	return len(copies), err
}

func (r *memCopyRepo) Create(ctx context.Context, bi *model.BookInstance) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	bi.ID = r.c.nextID("c")
	r.c.copies[bi.ID] = *bi
	return nil
}

func (r *memCopyRepo) Replace(ctx context.Context, bi *model.BookInstance) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	if _, ok := r.c.copies[bi.ID]; !ok {
		return database.ErrNotFound
	}
	r.c.copies[bi.ID] = *bi
	return nil
}

func (r *memCopyRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if err := r.c.write(); err != nil {
		return err
	}
	delete(r.c.copies, id)
	return nil
}

// ----------------------------------------------------------------------------

func (c *memCatalog) addAuthor(first, family string) *model.Author {
	a := &model.Author{FirstName: first, FamilyName: family}
	_ = c.authorRepo().Create(context.Background(), a)
	return a
}

func (c *memCatalog) addGenre(name string) *model.Genre {
	g := &model.Genre{Name: name}
	_ = c.genreRepo().Create(context.Background(), g)
	return g
}

func (c *memCatalog) addBook(title, authorID string, genreIDs ...string) *model.Book {
	b := &model.Book{Title: title, Summary: "s", ISBN: "i", AuthorID: authorID, GenreIDs: genreIDs}
	_ = c.bookRepo().Create(context.Background(), b)
	return b
}

func (c *memCatalog) addCopy(bookID string, status model.BookInstanceStatus) *model.BookInstance {
	bi := &model.BookInstance{BookID: bookID, Imprint: "imp", Status: status}
	_ = c.bookInstanceRepo().Create(context.Background(), bi)
	return bi
}

// resetWrites clears the write counter after fixtures are in place
func (c *memCatalog) resetWrites() {
	c.mu.Lock()
	c.writes = 0
	c.mu.Unlock()
}
