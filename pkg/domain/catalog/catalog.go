// Package catalog models library books and the patrons who borrow them.
//
// Books are owned by whoever creates them (normally a catalog service). A
// patron only ever holds non-owning pointers to those books, so the
// availability flag has a single source of truth.
package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrAlreadyBorrowed is returned when borrowing a book that is not available.
	ErrAlreadyBorrowed = errors.New("book is already borrowed")

	// ErrNotBorrowedByPatron is returned when a patron returns a book they do not hold.
	ErrNotBorrowedByPatron = errors.New("book was not borrowed by this patron")

	// ErrTitleRequired is returned when a book has an empty title.
	ErrTitleRequired = errors.New("book title is required")

	// ErrNameRequired is returned when a patron has an empty name.
	ErrNameRequired = errors.New("patron name is required")

	// ErrNilBook is returned when a nil book is passed to a patron operation.
	ErrNilBook = errors.New("nil book")
)

// Book is a single library title. Available is false exactly while some
// patron holds the book.
type Book struct {
	Title     string
	Author    string
	Genre     string
	Available bool
}

// NewBook returns an available book.
func NewBook(title, author, genre string) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	return &Book{
		Title:     title,
		Author:    author,
		Genre:     genre,
		Available: true,
	}, nil
}

// Loan ties a borrowed book to the moment it left the shelf.
type Loan struct {
	Book       *Book
	BorrowedAt time.Time
}

// Patron is a library member and the books they currently hold.
type Patron struct {
	Name    string
	Contact string
	loans   []Loan
}

// NewPatron returns a patron with nothing borrowed.
func NewPatron(name, contact string) (*Patron, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	return &Patron{Name: name, Contact: contact}, nil
}

// Borrow takes an available book. On error neither the book nor the patron
// is changed.
func (p *Patron) Borrow(book *Book, at time.Time) error {
	if book == nil {
		return ErrNilBook
	}
	if !book.Available {
		return ErrAlreadyBorrowed
	}
	book.Available = false
	p.loans = append(p.loans, Loan{Book: book, BorrowedAt: at})
	return nil
}

// Return gives back a book held by this patron. On error neither the book nor
// the patron is changed.
func (p *Patron) Return(book *Book) error {
	if book == nil {
		return ErrNilBook
	}
	i := p.indexOf(book)
	if i < 0 {
		return ErrNotBorrowedByPatron
	}
	book.Available = true
	p.loans = append(p.loans[:i], p.loans[i+1:]...)
	return nil
}

// HasBorrowed reports whether the patron currently holds book.
func (p *Patron) HasBorrowed(book *Book) bool {
	return p.indexOf(book) >= 0
}

// Borrowed returns the held books in borrow order.
func (p *Patron) Borrowed() []*Book {
	out := make([]*Book, len(p.loans))
	for i, l := range p.loans {
		out[i] = l.Book
	}
	return out
}

// Loans returns a copy of the patron's open loans in borrow order.
func (p *Patron) Loans() []Loan {
	out := make([]Loan, len(p.loans))
	copy(out, p.loans)
	return out
}

func (p *Patron) indexOf(book *Book) int {
	for i, l := range p.loans {
		if l.Book == book {
			return i
		}
	}
	return -1
}
