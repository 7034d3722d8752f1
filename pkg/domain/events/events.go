// Package events defines the facts the ledger and catalog services announce
// after they change state.
package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names, as returned by Type.
const (
	EventTypeAccountCreated    = "AccountCreated"
	EventTypeFundsDeposited    = "FundsDeposited"
	EventTypeFundsWithdrawn    = "FundsWithdrawn"
	EventTypeTransferCompleted = "TransferCompleted"
	EventTypeTransferFailed    = "TransferFailed"
	EventTypeBookAdded         = "BookAdded"
	EventTypePatronAdded       = "PatronAdded"
	EventTypeBookBorrowed      = "BookBorrowed"
	EventTypeBookReturned      = "BookReturned"
)

// LedgerTypes lists the events emitted by the ledger.
var LedgerTypes = []string{
	EventTypeAccountCreated,
	EventTypeFundsDeposited,
	EventTypeFundsWithdrawn,
	EventTypeTransferCompleted,
	EventTypeTransferFailed,
}

// CatalogTypes lists the events emitted by the catalog.
var CatalogTypes = []string{
	EventTypeBookAdded,
	EventTypePatronAdded,
	EventTypeBookBorrowed,
	EventTypeBookReturned,
}

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// AccountCreated is emitted after a new account joins the ledger.
type AccountCreated struct {
	Number         string
	Kind           string
	OpeningBalance decimal.Decimal
}

// FundsDeposited is emitted after a deposit.
type FundsDeposited struct {
	Number  string
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

// FundsWithdrawn is emitted after a withdrawal.
type FundsWithdrawn struct {
	Number  string
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

// TransferCompleted is emitted after both transfer transactions are recorded.
type TransferCompleted struct {
	From    string
	To      string
	Amount  decimal.Decimal
	TxOutID uuid.UUID
	TxInID  uuid.UUID
}

// TransferFailed is emitted when a transfer is rejected. Nothing was changed.
type TransferFailed struct {
	From   string
	To     string
	Amount decimal.Decimal
	Reason string
}

func (e AccountCreated) Type() string    { return EventTypeAccountCreated }
func (e FundsDeposited) Type() string    { return EventTypeFundsDeposited }
func (e FundsWithdrawn) Type() string    { return EventTypeFundsWithdrawn }
func (e TransferCompleted) Type() string { return EventTypeTransferCompleted }
func (e TransferFailed) Type() string    { return EventTypeTransferFailed }
