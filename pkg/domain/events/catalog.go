package events

import "time"

// BookAdded is emitted after a book is added to the catalog.
type BookAdded struct {
	Title  string
	Author string
	Genre  string
}

// PatronAdded is emitted after a patron registers.
type PatronAdded struct {
	Name string
}

// BookBorrowed is emitted after a patron takes a book.
type BookBorrowed struct {
	Patron     string
	Title      string
	BorrowedAt time.Time
}

// BookReturned is emitted after a patron gives a book back.
type BookReturned struct {
	Patron string
	Title  string
}

func (e BookAdded) Type() string    { return EventTypeBookAdded }
func (e PatronAdded) Type() string  { return EventTypePatronAdded }
func (e BookBorrowed) Type() string { return EventTypeBookBorrowed }
func (e BookReturned) Type() string { return EventTypeBookReturned }
