package catalog_test

import (
	"context"

	domaincatalog "github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/stretchr/testify/mock"
)

// mockBookRepository is a testify mock of repository.BookRepository.
type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Create(ctx context.Context, book *domaincatalog.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) GetByTitle(ctx context.Context, title string) (*domaincatalog.Book, error) {
	args := m.Called(ctx, title)
	book, _ := args.Get(0).(*domaincatalog.Book)
	return book, args.Error(1)
}

func (m *mockBookRepository) List(ctx context.Context) ([]*domaincatalog.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]*domaincatalog.Book)
	return books, args.Error(1)
}

// mockPatronRepository is a testify mock of repository.PatronRepository.
type mockPatronRepository struct {
	mock.Mock
}

func (m *mockPatronRepository) Create(ctx context.Context, patron *domaincatalog.Patron) error {
	return m.Called(ctx, patron).Error(0)
}

func (m *mockPatronRepository) GetByName(ctx context.Context, name string) (*domaincatalog.Patron, error) {
	args := m.Called(ctx, name)
	patron, _ := args.Get(0).(*domaincatalog.Patron)
	return patron, args.Error(1)
}

func (m *mockPatronRepository) List(ctx context.Context) ([]*domaincatalog.Patron, error) {
	args := m.Called(ctx)
	patrons, _ := args.Get(0).([]*domaincatalog.Patron)
	return patrons, args.Error(1)
}
