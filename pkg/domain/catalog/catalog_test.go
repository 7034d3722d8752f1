package catalog_test

import (
	"testing"
	"time"

	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, title string) *catalog.Book {
	t.Helper()
	b, err := catalog.NewBook(title, "Herbert", "SciFi")
	require.NoError(t, err)
	return b
}

func newPatron(t *testing.T, name string) *catalog.Patron {
	t.Helper()
	p, err := catalog.NewPatron(name, name+"@example.com")
	require.NoError(t, err)
	return p
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	b, err := catalog.NewBook("Dune", "Herbert", "SciFi")
	require.NoError(t, err)
	assert.True(t, b.Available, "new books are available")

	_, err = catalog.NewBook(" ", "Herbert", "SciFi")
	assert.ErrorIs(t, err, catalog.ErrTitleRequired)

	p, err := catalog.NewPatron("Alice", "555-0100")
	require.NoError(t, err)
	assert.Empty(t, p.Borrowed())

	_, err = catalog.NewPatron("", "555-0100")
	assert.ErrorIs(t, err, catalog.ErrNameRequired)
}

func TestBorrowReturnRoundTrip(t *testing.T) {
	t.Parallel()
	dune := newBook(t, "Dune")
	alice := newPatron(t, "Alice")
	at := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, alice.Borrow(dune, at))
	assert.False(t, dune.Available)
	assert.True(t, alice.HasBorrowed(dune))
	loans := alice.Loans()
	require.Len(t, loans, 1)
	assert.Equal(t, at, loans[0].BorrowedAt)
	assert.Same(t, dune, loans[0].Book, "patron must hold a reference, not a copy")

	require.NoError(t, alice.Return(dune))
	assert.True(t, dune.Available)
	assert.Empty(t, alice.Borrowed())
}

func TestBorrowUnavailableIsNoop(t *testing.T) {
	t.Parallel()
	dune := newBook(t, "Dune")
	alice := newPatron(t, "Alice")
	bob := newPatron(t, "Bob")

	require.NoError(t, alice.Borrow(dune, time.Now()))

	err := bob.Borrow(dune, time.Now())
	assert.ErrorIs(t, err, catalog.ErrAlreadyBorrowed)
	assert.Empty(t, bob.Borrowed())
	assert.False(t, dune.Available)
	assert.Len(t, alice.Borrowed(), 1)

	err = alice.Borrow(dune, time.Now())
	assert.ErrorIs(t, err, catalog.ErrAlreadyBorrowed)
	assert.Len(t, alice.Borrowed(), 1)
}

func TestReturnByWrongPatron(t *testing.T) {
	t.Parallel()
	dune := newBook(t, "Dune")
	alice := newPatron(t, "Alice")
	bob := newPatron(t, "Bob")
	require.NoError(t, alice.Borrow(dune, time.Now()))

	err := bob.Return(dune)
	assert.ErrorIs(t, err, catalog.ErrNotBorrowedByPatron)
	assert.False(t, dune.Available)
	assert.True(t, alice.HasBorrowed(dune))

	// a never-borrowed book cannot be returned either
	emma := newBook(t, "Emma")
	assert.ErrorIs(t, alice.Return(emma), catalog.ErrNotBorrowedByPatron)
	assert.True(t, emma.Available)
}

func TestBorrowedKeepsOrder(t *testing.T) {
	t.Parallel()
	alice := newPatron(t, "Alice")
	books := []*catalog.Book{newBook(t, "Dune"), newBook(t, "Emma"), newBook(t, "Ulysses")}
	for _, b := range books {
		require.NoError(t, alice.Borrow(b, time.Now()))
	}
	require.NoError(t, alice.Return(books[1]))

	got := alice.Borrowed()
	require.Len(t, got, 2)
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "Ulysses", got[1].Title)
}

func TestNilBook(t *testing.T) {
	t.Parallel()
	alice := newPatron(t, "Alice")
	assert.ErrorIs(t, alice.Borrow(nil, time.Now()), catalog.ErrNilBook)
	assert.ErrorIs(t, alice.Return(nil), catalog.ErrNilBook)
}
