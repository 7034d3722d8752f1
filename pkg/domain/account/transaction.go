package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records a single movement of funds on an account. It is never
// mutated once created.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber string
	Amount        decimal.Decimal
	Label         string
	CreatedAt     time.Time
}

// NewTransaction creates a Transaction with a fresh ID.
func NewTransaction(accountNumber string, amount decimal.Decimal, label string) Transaction {
	return Transaction{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Amount:        amount,
		Label:         label,
		CreatedAt:     time.Now(),
	}
}

// Details renders the transaction as a single history line.
func (t Transaction) Details() string {
	return fmt.Sprintf("%s: %s on Account %s", t.Label, t.Amount.StringFixed(2), t.AccountNumber)
}

// TransferToLabel labels the outgoing half of a transfer.
func TransferToLabel(to string) string {
	return "Transfer to " + to
}

// TransferFromLabel labels the incoming half of a transfer.
func TransferFromLabel(from string) string {
	return "Transfer from " + from
}
