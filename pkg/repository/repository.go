// Package repository declares the collections owned by the ledger and the
// catalog. Implementations keep records in insertion order and reject
// duplicate keys.
package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
)

var (
	// ErrNotFound is returned when no record has the requested key.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when creating a record whose key is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

// AccountRepository stores accounts keyed by account number (case-sensitive).
type AccountRepository interface {
	Create(ctx context.Context, acc *account.Account) error
	Get(ctx context.Context, number string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
}

// TransactionRepository is an append-only log of transactions.
type TransactionRepository interface {
	Append(ctx context.Context, txs ...account.Transaction) error
	List(ctx context.Context) ([]account.Transaction, error)
}

// BookRepository stores books keyed by title (case-insensitive).
type BookRepository interface {
	Create(ctx context.Context, book *catalog.Book) error
	GetByTitle(ctx context.Context, title string) (*catalog.Book, error)
	List(ctx context.Context) ([]*catalog.Book, error)
}

// PatronRepository stores patrons keyed by name (case-insensitive).
type PatronRepository interface {
	Create(ctx context.Context, patron *catalog.Patron) error
	GetByName(ctx context.Context, name string) (*catalog.Patron, error)
	List(ctx context.Context) ([]*catalog.Patron, error)
}
