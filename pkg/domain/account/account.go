package account

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNegativeAmount is returned when a deposit, withdrawal or opening balance is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrUnknownKind is returned when an account kind is neither Savings nor Checking.
	ErrUnknownKind = errors.New("unknown account kind")

	// ErrAccountNumberRequired is returned when an account is built without a number.
	ErrAccountNumberRequired = errors.New("account number is required")
)

// Kind tags an account as one of the closed set of account variants.
type Kind string

const (
	KindSavings  Kind = "Savings"
	KindChecking Kind = "Checking"
)

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(KindSavings)):
		return KindSavings, nil
	case strings.EqualFold(strings.TrimSpace(s), string(KindChecking)):
		return KindChecking, nil
	default:
		return "", ErrUnknownKind
	}
}

// IsValid reports whether k is one of the known variants.
func (k Kind) IsValid() bool {
	return k == KindSavings || k == KindChecking
}

func (k Kind) String() string {
	return string(k)
}

// Account holds the balance of a single numbered account.
//
// Invariants:
//   - Number is never empty.
//   - A withdrawal performed by the account never drives the balance below zero.
//   - Savings and Checking behave identically; Kind is a label only.
type Account struct {
	Number    string
	Kind      Kind
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number    string
	kind      Kind
	balance   decimal.Decimal
	createdAt time.Time
}

// New creates a new Builder. The kind defaults to Savings and the balance to zero.
func New() *Builder {
	return &Builder{
		kind:      KindSavings,
		balance:   decimal.Zero,
		createdAt: time.Now(),
	}
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithKind sets the account variant.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithBalance sets the opening balance.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the collected fields and returns the new Account.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.number) == "" {
		return nil, ErrAccountNumberRequired
	}
	if !b.kind.IsValid() {
		return nil, ErrUnknownKind
	}
	if b.balance.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Account{
		Number:    b.number,
		Kind:      b.kind,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
	}, nil
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// ValidateWithdraw checks that amount can be taken from the account without
// overdrawing it.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Withdraw removes amount from the balance. On error the balance is unchanged.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
