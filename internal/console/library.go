package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	domaincatalog "github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/amirasaad/recordkeeper/pkg/handler/activity"
	"github.com/amirasaad/recordkeeper/pkg/service/catalog"
)

// LibraryMenu drives a catalog from numbered choices.
type LibraryMenu struct {
	catalog *catalog.Service
	feed    *activity.Feed
	prompt  *Prompter
	out     io.Writer
}

// NewLibraryMenu reads choices from in and writes results to out. feed may be nil.
func NewLibraryMenu(c *catalog.Service, feed *activity.Feed, in io.Reader, out io.Writer) *LibraryMenu {
	return &LibraryMenu{
		catalog: c,
		feed:    feed,
		prompt:  NewPrompter(in, out),
		out:     out,
	}
}

// Run loops until the user exits or the input ends.
func (m *LibraryMenu) Run(ctx context.Context) error {
	mn := &menu{
		title: "Library Management System Menu",
		items: []item{
			{"Add Book", m.addBook},
			{"Add Patron", m.addPatron},
			{"Borrow Book", m.borrow},
			{"Return Book", m.returnBook},
			{"Display All Books", m.displayBooks},
			{"Display All Patrons", m.displayPatrons},
			{"Generate Borrowing Report", m.borrowingReport},
			{"Generate Fine Report", m.fineReport},
			{"Exit", nil},
			{"Recent Activity", func(context.Context) error { showActivity(m.out, m.feed); return nil }},
		},
		prompt:  m.prompt,
		out:     m.out,
		explain: explainCatalog,
	}
	return mn.loop(ctx)
}

func (m *LibraryMenu) addBook(ctx context.Context) error {
	title, err := m.prompt.Line(ctx, "Enter book title: ")
	if err != nil {
		return err
	}
	author, err := m.prompt.Line(ctx, "Enter book author: ")
	if err != nil {
		return err
	}
	genre, err := m.prompt.Line(ctx, "Enter book genre: ")
	if err != nil {
		return err
	}
	book, err := m.catalog.AddBook(ctx, title, author, genre)
	if err != nil {
		return err
	}
	success(m.out, "Book added: %s", book.Title)
	return nil
}

func (m *LibraryMenu) addPatron(ctx context.Context) error {
	name, err := m.prompt.Line(ctx, "Enter patron name: ")
	if err != nil {
		return err
	}
	contact, err := m.prompt.Line(ctx, "Enter patron contact: ")
	if err != nil {
		return err
	}
	patron, err := m.catalog.AddPatron(ctx, name, contact)
	if err != nil {
		return err
	}
	success(m.out, "Patron added: %s", patron.Name)
	return nil
}

// readLoanParties asks for the patron first and stops early if they are
// unknown, so the title is only asked for a real patron.
func (m *LibraryMenu) readLoanParties(ctx context.Context) (string, string, error) {
	name, err := m.prompt.Line(ctx, "Enter patron name: ")
	if err != nil {
		return "", "", err
	}
	if _, err := m.catalog.FindPatronByName(ctx, name); err != nil {
		return "", "", err
	}
	title, err := m.prompt.Line(ctx, "Enter book title: ")
	if err != nil {
		return "", "", err
	}
	return name, title, nil
}

func (m *LibraryMenu) borrow(ctx context.Context) error {
	name, title, err := m.readLoanParties(ctx)
	if err != nil {
		return err
	}
	if err := m.catalog.Borrow(ctx, name, title); err != nil {
		if errors.Is(err, catalog.ErrAlreadyBorrowed) {
			failure(m.out, "Cannot borrow %s. It's unavailable.", title)
			return nil
		}
		return err
	}
	book, err := m.catalog.FindBookByTitle(ctx, title)
	if err != nil {
		return err
	}
	success(m.out, "%s has been borrowed.", book.Title)
	return nil
}

func (m *LibraryMenu) returnBook(ctx context.Context) error {
	name, title, err := m.readLoanParties(ctx)
	if err != nil {
		return err
	}
	if err := m.catalog.Return(ctx, name, title); err != nil {
		if errors.Is(err, catalog.ErrNotBorrowedByPatron) {
			failure(m.out, "This book was not borrowed by %s", name)
			return nil
		}
		return err
	}
	book, err := m.catalog.FindBookByTitle(ctx, title)
	if err != nil {
		return err
	}
	success(m.out, "%s has been returned.", book.Title)
	return nil
}

func (m *LibraryMenu) displayBooks(ctx context.Context) error {
	books, err := m.catalog.Books(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Library Books:")
	for _, b := range books {
		_, _ = fmt.Fprintf(m.out, "Title: %s, Author: %s, Genre: %s, Available: %t\n",
			b.Title, b.Author, b.Genre, b.Available)
	}
	return nil
}

func (m *LibraryMenu) displayPatrons(ctx context.Context) error {
	patrons, err := m.catalog.Patrons(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Patron List:")
	for _, p := range patrons {
		_, _ = fmt.Fprintf(m.out, "Name: %s, Contact: %s\n", p.Name, p.Contact)
	}
	return nil
}

func (m *LibraryMenu) borrowingReport(ctx context.Context) error {
	report, err := m.catalog.BorrowingReport(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Borrowing Report:")
	for _, line := range report.Lines() {
		_, _ = fmt.Fprintln(m.out, line)
	}
	return nil
}

func (m *LibraryMenu) fineReport(ctx context.Context) error {
	report, err := m.catalog.FineReport(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Fine Report:")
	for _, line := range report.Lines() {
		_, _ = fmt.Fprintln(m.out, line)
	}
	_, _ = fmt.Fprintf(m.out, "Total: %s\n", report.Total().StringFixed(2))
	return nil
}

func explainCatalog(err error) string {
	switch {
	case errors.Is(err, catalog.ErrPatronNotFound):
		return "Patron not found."
	case errors.Is(err, catalog.ErrBookNotFound):
		return "Book not found."
	case errors.Is(err, catalog.ErrAlreadyBorrowed):
		return "Cannot borrow the book. It's unavailable."
	case errors.Is(err, catalog.ErrDuplicateBook):
		return "A book with that title already exists."
	case errors.Is(err, catalog.ErrDuplicatePatron):
		return "A patron with that name already exists."
	case errors.Is(err, domaincatalog.ErrTitleRequired):
		return "Book title is required."
	case errors.Is(err, domaincatalog.ErrNameRequired):
		return "Patron name is required."
	default:
		return "Error: " + err.Error()
	}
}
