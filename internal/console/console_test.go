package console_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/recordkeeper/infra/eventbus"
	"github.com/amirasaad/recordkeeper/infra/repository/memory"
	"github.com/amirasaad/recordkeeper/internal/console"
	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/handler/activity"
	catalogsvc "github.com/amirasaad/recordkeeper/pkg/service/catalog"
	"github.com/amirasaad/recordkeeper/pkg/service/ledger"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMain(m *testing.M) {
	color.NoColor = true
	slog.SetDefault(discard)
	os.Exit(m.Run())
}

func lines(ss ...string) string {
	return strings.Join(ss, "\n") + "\n"
}

func runBank(t *testing.T, input string) string {
	t.Helper()
	bus := infraeventbus.NewWithMemory(discard)
	feed := activity.NewFeed(0)
	activity.Register(bus, feed, discard, events.LedgerTypes...)
	l := ledger.New(memory.NewAccountRepository(), memory.NewTransactionRepository(), bus, discard)

	var out bytes.Buffer
	require.NoError(t, console.NewBankMenu(l, feed, strings.NewReader(input), &out).Run(context.Background()))
	return out.String()
}

type fixedDays int

func (d fixedDays) OverdueDays(catalog.Loan, time.Time) int { return int(d) }

func runLibrary(t *testing.T, input string) string {
	t.Helper()
	c := catalogsvc.New(memory.NewBookRepository(), memory.NewPatronRepository(), nil, discard,
		catalogsvc.WithFinePolicy(fixedDays(4)))

	var out bytes.Buffer
	require.NoError(t, console.NewLibraryMenu(c, nil, strings.NewReader(input), &out).Run(context.Background()))
	return out.String()
}

func TestBankMenuSession(t *testing.T) {
	out := runBank(t, lines(
		"1", "Savings", "A1", "100",
		"1", "checking", "A2", "0",
		"3", "A1", "A2", "50",
		"2", "A1",
		"4",
		"5", "A1", "1000", "12", "12",
		"11",
		"6",
		"2", "A2",
	))

	assert.Contains(t, out, "--- Online Banking System Menu ---")
	assert.Contains(t, out, "Savings account created successfully.")
	assert.Contains(t, out, "Checking account created successfully.")
	assert.Contains(t, out, "Transfer Successful.")
	assert.Contains(t, out, "Balance for account A1: 50.00")
	assert.Contains(t, out, "Transfer to A2: 50.00 on Account A1")
	assert.Contains(t, out, "Transfer from A1: 50.00 on Account A2")
	assert.Contains(t, out, "Loan Amount: 1000.00")
	assert.Contains(t, out, "Monthly Payment: 88.85")
	assert.Contains(t, out, "Transferred 50.00 from A1 to A2")
	assert.Contains(t, out, "Exiting the system. Goodbye!")
	assert.NotContains(t, out, "Balance for account A2", "nothing runs after exit")
	assert.NotContains(t, out, "Choose an option", "prompts are hidden for piped input")
}

func TestBankMenuFailures(t *testing.T) {
	out := runBank(t, lines(
		"1", "Savings", "A1", "10",
		"1", "Savings", "A1", "10",
		"1", "Brokerage",
		"3", "A1", "ZZ", "5",
		"3", "A1", "A1", "11",
		"2", "nope",
		"7", "A1", "ten",
		"8", "A1", "10.01",
		"5", "A1", "1000", "5", "0",
		"abc",
		"42",
	))

	assert.Contains(t, out, "An account with that number already exists.")
	assert.Contains(t, out, "Unknown account type. Use Savings or Checking.")
	assert.Contains(t, out, "Transfer failed. Account not found.")
	assert.Contains(t, out, "Transfer failed. Insufficient funds!")
	assert.Contains(t, out, "Account not found.")
	assert.Contains(t, out, "Please enter a valid number.")
	assert.Contains(t, out, "Insufficient funds!")
	assert.Contains(t, out, "Invalid loan terms")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice! Please select a valid option."))
	assert.NotContains(t, out, "Goodbye", "input ended without choosing exit")
}

func TestBankMenuDepositWithdrawAndSchedule(t *testing.T) {
	out := runBank(t, lines(
		"1", "Checking", "C1", "0",
		"7", "C1", "25.50",
		"8", "C1", "5.50",
		"9",
		"10", "C1", "1200", "0", "12",
		"6",
	))

	assert.Contains(t, out, "Deposit successful. New balance: 25.50")
	assert.Contains(t, out, "Withdrawal successful. New balance: 20.00")
	assert.Contains(t, out, "Account: C1, Type: Checking, Balance: 20.00")
	assert.Contains(t, out, "Remaining")
	assert.Contains(t, out, "100.00")
}

func TestLibraryMenuSession(t *testing.T) {
	out := runLibrary(t, lines(
		"1", "Dune", "Herbert", "SciFi",
		"2", "Alice", "alice@example.com",
		"2", "Bob", "bob@example.com",
		"3", "alice", "dune",
		"3", "Bob", "Dune",
		"5",
		"6",
		"7",
		"8",
		"4", "Bob", "Dune",
		"4", "Carol",
		"3", "Alice", "Emma",
		"4", "Alice", "Dune",
		"5",
		"9",
	))

	assert.Contains(t, out, "--- Library Management System Menu ---")
	assert.Contains(t, out, "Book added: Dune")
	assert.Contains(t, out, "Patron added: Alice")
	assert.Contains(t, out, "Dune has been borrowed.")
	assert.Contains(t, out, "Cannot borrow Dune. It's unavailable.")
	assert.Contains(t, out, "Title: Dune, Author: Herbert, Genre: SciFi, Available: false")
	assert.Contains(t, out, "Name: Alice, Contact: alice@example.com")
	assert.Contains(t, out, lines("Patron: Alice", "  Borrowed Book: Dune", "Patron: Bob"))
	assert.Contains(t, out, "Patron: Alice, Book: Dune, Overdue Days: 4, Fine: 4.00")
	assert.Contains(t, out, "Total: 4.00")
	assert.Contains(t, out, "This book was not borrowed by Bob")
	assert.Contains(t, out, "Patron not found.")
	assert.Contains(t, out, "Book not found.")
	assert.Contains(t, out, "Dune has been returned.")
	assert.Contains(t, out, "Title: Dune, Author: Herbert, Genre: SciFi, Available: true")
	assert.Contains(t, out, "Exiting the system. Goodbye!")
}

func TestLibraryMenuRejectsDuplicates(t *testing.T) {
	out := runLibrary(t, lines(
		"1", "Dune", "Herbert", "SciFi",
		"1", "DUNE", "Someone", "Else",
		"2", "Alice", "",
		"2", "alice", "",
		"1", "", "", "",
		"10",
	))

	assert.Contains(t, out, "A book with that title already exists.")
	assert.Contains(t, out, "A patron with that name already exists.")
	assert.Contains(t, out, "Book title is required.")
	assert.Contains(t, out, "No activity yet.")
}

func TestPrompter(t *testing.T) {
	ctx := context.Background()
	p := console.NewPrompter(strings.NewReader(lines("  hello  ", "12.5", "x", "7")), io.Discard)

	s, err := p.Line(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	d, err := p.Decimal(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = p.Int(ctx, "> ")
	assert.ErrorIs(t, err, console.ErrInvalidNumber)

	n, err := p.Int(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = p.Line(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
	_, err = p.Line(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompterStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	p := console.NewPrompter(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Line(ctx, "> ")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Line kept blocking after cancel")
	}

	go func() { _, _ = pw.Write([]byte("6\n")) }()
	_, err := p.Line(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled, "a line typed after the interrupt is not returned")
}

func TestMenuReturnsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	l := ledger.New(memory.NewAccountRepository(), memory.NewTransactionRepository(), nil, discard)

	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- console.NewBankMenu(l, nil, pr, &out).Run(ctx)
	}()

	_, err := pw.Write([]byte("9\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("menu kept waiting for input after cancel")
	}
	assert.NotContains(t, out.String(), "Goodbye")
}
