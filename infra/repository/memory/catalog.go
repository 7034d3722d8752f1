package memory

import (
	"context"

	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/amirasaad/recordkeeper/pkg/repository"
)

// BookRepository keeps books keyed by case-insensitive title.
type BookRepository struct {
	s *store[*catalog.Book]
}

// NewBookRepository returns an empty book repository.
func NewBookRepository() *BookRepository {
	return &BookRepository{s: newStore[*catalog.Book](foldKey)}
}

func (r *BookRepository) Create(_ context.Context, book *catalog.Book) error {
	return r.s.insert(book.Title, book)
}

func (r *BookRepository) GetByTitle(_ context.Context, title string) (*catalog.Book, error) {
	return r.s.get(title)
}

func (r *BookRepository) List(_ context.Context) ([]*catalog.Book, error) {
	return r.s.list(), nil
}

// PatronRepository keeps patrons keyed by case-insensitive name.
type PatronRepository struct {
	s *store[*catalog.Patron]
}

// NewPatronRepository returns an empty patron repository.
func NewPatronRepository() *PatronRepository {
	return &PatronRepository{s: newStore[*catalog.Patron](foldKey)}
}

func (r *PatronRepository) Create(_ context.Context, patron *catalog.Patron) error {
	return r.s.insert(patron.Name, patron)
}

func (r *PatronRepository) GetByName(_ context.Context, name string) (*catalog.Patron, error) {
	return r.s.get(name)
}

func (r *PatronRepository) List(_ context.Context) ([]*catalog.Patron, error) {
	return r.s.list(), nil
}

var (
	_ repository.BookRepository   = (*BookRepository)(nil)
	_ repository.PatronRepository = (*PatronRepository)(nil)
)
