// Package catalog provides the library aggregate: it owns the books and the
// patrons, mediates borrowing and returning, and builds the borrowing and
// fine reports.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/domain/fine"
	"github.com/amirasaad/recordkeeper/pkg/eventbus"
	"github.com/amirasaad/recordkeeper/pkg/repository"
	"github.com/shopspring/decimal"
)

var (
	// ErrBookNotFound is returned when no book has the given title.
	ErrBookNotFound = fmt.Errorf("book %w", repository.ErrNotFound)

	// ErrPatronNotFound is returned when no patron has the given name.
	ErrPatronNotFound = fmt.Errorf("patron %w", repository.ErrNotFound)

	// ErrDuplicateBook is returned when a title is already in the catalog.
	ErrDuplicateBook = fmt.Errorf("book title %w", repository.ErrDuplicateKey)

	// ErrDuplicatePatron is returned when a patron name is already registered.
	ErrDuplicatePatron = fmt.Errorf("patron name %w", repository.ErrDuplicateKey)

	// ErrAlreadyBorrowed is returned by Borrow when the book is out on loan.
	// It is the domain error, re-exported so callers need one import.
	ErrAlreadyBorrowed = catalog.ErrAlreadyBorrowed

	// ErrNotBorrowedByPatron is returned by Return when the patron does not
	// hold the book.
	ErrNotBorrowedByPatron = catalog.ErrNotBorrowedByPatron
)

// Service is the catalog aggregate.
type Service struct {
	mu        sync.Mutex
	books     repository.BookRepository
	patrons   repository.PatronRepository
	policy    fine.Policy
	dailyRate decimal.Decimal
	now       func() time.Time
	bus       eventbus.Bus
	logger    *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithFinePolicy sets the policy used by FineReport.
func WithFinePolicy(p fine.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithDailyRate sets the fine charged per overdue day.
func WithDailyRate(rate decimal.Decimal) Option {
	return func(s *Service) { s.dailyRate = rate }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a catalog over the given collections. Without options it uses
// a time-seeded simulated fine policy and the default daily rate.
func New(
	books repository.BookRepository,
	patrons repository.PatronRepository,
	bus eventbus.Bus,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		books:     books,
		patrons:   patrons,
		dailyRate: fine.DefaultDailyRate,
		now:       time.Now,
		bus:       bus,
		logger:    logger.With("service", "catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		s.policy = fine.NewSimulatedPolicy(fine.DefaultMaxSimulatedDays, 0)
	}
	return s
}

// AddBook registers an available book.
func (s *Service) AddBook(ctx context.Context, title, author, genre string) (*catalog.Book, error) {
	logger := s.logger.With("title", title)

	book, err := catalog.NewBook(title, author, genre)
	if err != nil {
		logger.Warn("AddBook rejected", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.books.Create(ctx, book); err != nil {
		logger.Warn("AddBook failed", "error", err)
		return nil, mapRepoErr(err, ErrBookNotFound, ErrDuplicateBook, title)
	}

	logger.Info("Book added", "author", author, "genre", genre)
	s.emit(ctx, events.BookAdded{Title: title, Author: author, Genre: genre})
	return book, nil
}

// AddPatron registers a patron with nothing borrowed.
func (s *Service) AddPatron(ctx context.Context, name, contact string) (*catalog.Patron, error) {
	logger := s.logger.With("patron", name)

	patron, err := catalog.NewPatron(name, contact)
	if err != nil {
		logger.Warn("AddPatron rejected", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.patrons.Create(ctx, patron); err != nil {
		logger.Warn("AddPatron failed", "error", err)
		return nil, mapRepoErr(err, ErrPatronNotFound, ErrDuplicatePatron, name)
	}

	logger.Info("Patron added")
	s.emit(ctx, events.PatronAdded{Name: name})
	return patron, nil
}

// FindBookByTitle looks a book up ignoring case.
func (s *Service) FindBookByTitle(ctx context.Context, title string) (*catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBook(ctx, title)
}

// FindPatronByName looks a patron up ignoring case.
func (s *Service) FindPatronByName(ctx context.Context, name string) (*catalog.Patron, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findPatron(ctx, name)
}

// Borrow lends the titled book to the named patron.
func (s *Service) Borrow(ctx context.Context, patronName, title string) error {
	logger := s.logger.With("patron", patronName, "title", title)

	s.mu.Lock()
	defer s.mu.Unlock()
	patron, book, err := s.resolve(ctx, patronName, title)
	if err != nil {
		logger.Warn("Borrow failed", "error", err)
		return err
	}
	at := s.now()
	if err := patron.Borrow(book, at); err != nil {
		logger.Warn("Borrow rejected", "error", err)
		return fmt.Errorf("%w: %s", err, book.Title)
	}

	logger.Info("Book borrowed")
	s.emit(ctx, events.BookBorrowed{Patron: patron.Name, Title: book.Title, BorrowedAt: at})
	return nil
}

// Return takes the titled book back from the named patron.
func (s *Service) Return(ctx context.Context, patronName, title string) error {
	logger := s.logger.With("patron", patronName, "title", title)

	s.mu.Lock()
	defer s.mu.Unlock()
	patron, book, err := s.resolve(ctx, patronName, title)
	if err != nil {
		logger.Warn("Return failed", "error", err)
		return err
	}
	if err := patron.Return(book); err != nil {
		logger.Warn("Return rejected", "error", err)
		return fmt.Errorf("%w: %s", err, book.Title)
	}

	logger.Info("Book returned")
	s.emit(ctx, events.BookReturned{Patron: patron.Name, Title: book.Title})
	return nil
}

// Books lists every book in the order it was added.
func (s *Service) Books(ctx context.Context) ([]*catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.List(ctx)
}

// Patrons lists every patron in the order they registered.
func (s *Service) Patrons(ctx context.Context) ([]*catalog.Patron, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patrons.List(ctx)
}

func (s *Service) resolve(ctx context.Context, patronName, title string) (*catalog.Patron, *catalog.Book, error) {
	patron, err := s.findPatron(ctx, patronName)
	if err != nil {
		return nil, nil, err
	}
	book, err := s.findBook(ctx, title)
	if err != nil {
		return nil, nil, err
	}
	return patron, book, nil
}

func (s *Service) findBook(ctx context.Context, title string) (*catalog.Book, error) {
	book, err := s.books.GetByTitle(ctx, title)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookNotFound, ErrDuplicateBook, title)
	}
	return book, nil
}

func (s *Service) findPatron(ctx context.Context, name string) (*catalog.Patron, error) {
	patron, err := s.patrons.GetByName(ctx, name)
	if err != nil {
		return nil, mapRepoErr(err, ErrPatronNotFound, ErrDuplicatePatron, name)
	}
	return patron, nil
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit event", "type", event.Type(), "error", err)
	}
}

func mapRepoErr(err, notFound, duplicate error, key string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", notFound, key)
	case errors.Is(err, repository.ErrDuplicateKey):
		return fmt.Errorf("%w: %s", duplicate, key)
	default:
		return err
	}
}
