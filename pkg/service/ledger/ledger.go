// Package ledger provides the banking aggregate: it owns a set of accounts and
// the transaction log, and mediates deposits, withdrawals and transfers.
//
// Every operation either completes or leaves all balances and the log
// untouched, and failures are reported as errors that can be told apart with
// errors.Is.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/domain/loan"
	"github.com/amirasaad/recordkeeper/pkg/eventbus"
	"github.com/amirasaad/recordkeeper/pkg/repository"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when no account has the given number.
	ErrAccountNotFound = fmt.Errorf("account %w", repository.ErrNotFound)

	// ErrDuplicateAccount is returned when an account number is already in use.
	ErrDuplicateAccount = fmt.Errorf("account number %w", repository.ErrDuplicateKey)

	// ErrInsufficientFunds is returned when a withdrawal or transfer would overdraw an account.
	ErrInsufficientFunds = account.ErrInsufficientFunds
)

// Service is the ledger aggregate.
type Service struct {
	mu           sync.Mutex
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	bus          eventbus.Bus
	logger       *slog.Logger
}

// New creates a ledger over the given collections. The ledger assumes it is
// the only writer of both. Events are emitted while the ledger is locked, so
// bus handlers must not call back into it.
func New(
	accounts repository.AccountRepository,
	transactions repository.TransactionRepository,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		bus:          bus,
		logger:       logger.With("service", "ledger"),
	}
}

// CreateAccount opens an account of the given kind and returns a snapshot of it.
func (s *Service) CreateAccount(
	ctx context.Context,
	kind account.Kind,
	number string,
	openingBalance decimal.Decimal,
) (*account.Account, error) {
	logger := s.logger.With("number", number, "kind", kind)

	acc, err := account.New().
		WithNumber(number).
		WithKind(kind).
		WithBalance(openingBalance).
		Build()
	if err != nil {
		logger.Warn("CreateAccount rejected", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.accounts.Create(ctx, acc); err != nil {
		logger.Warn("CreateAccount failed", "error", err)
		return nil, mapRepoErr(err, number)
	}

	logger.Info("Account created", "balance", acc.Balance.String())
	s.emit(ctx, events.AccountCreated{
		Number:         acc.Number,
		Kind:           acc.Kind.String(),
		OpeningBalance: acc.Balance,
	})
	return snapshot(acc), nil
}

// Deposit credits amount to the account.
func (s *Service) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*account.Account, error) {
	logger := s.logger.With("number", number, "amount", amount.String())

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.find(ctx, number)
	if err != nil {
		logger.Warn("Deposit failed", "error", err)
		return nil, err
	}
	if err := acc.Deposit(amount); err != nil {
		logger.Warn("Deposit rejected", "error", err)
		return nil, err
	}

	logger.Info("Deposit successful", "balance", acc.Balance.String())
	s.emit(ctx, events.FundsDeposited{Number: number, Amount: amount, Balance: acc.Balance})
	return snapshot(acc), nil
}

// Withdraw debits amount from the account. An overdraft is rejected with
// ErrInsufficientFunds and leaves the balance as it was.
func (s *Service) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*account.Account, error) {
	logger := s.logger.With("number", number, "amount", amount.String())

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.find(ctx, number)
	if err != nil {
		logger.Warn("Withdraw failed", "error", err)
		return nil, err
	}
	if err := acc.Withdraw(amount); err != nil {
		logger.Warn("Withdraw rejected", "error", err)
		return nil, err
	}

	logger.Info("Withdraw successful", "balance", acc.Balance.String())
	s.emit(ctx, events.FundsWithdrawn{Number: number, Amount: amount, Balance: acc.Balance})
	return snapshot(acc), nil
}

// TransferFunds moves amount from one account to another and records one
// outgoing and one incoming transaction. It fails with ErrAccountNotFound or
// ErrInsufficientFunds without changing anything.
func (s *Service) TransferFunds(ctx context.Context, from, to string, amount decimal.Decimal) error {
	logger := s.logger.With("from", from, "to", to, "amount", amount.String())

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.find(ctx, from)
	if err != nil {
		return s.transferFailed(ctx, logger, from, to, amount, err)
	}
	dst, err := s.find(ctx, to)
	if err != nil {
		return s.transferFailed(ctx, logger, from, to, amount, err)
	}
	if err := src.ValidateWithdraw(amount); err != nil {
		return s.transferFailed(ctx, logger, from, to, amount, err)
	}

	txOut := account.NewTransaction(from, amount, account.TransferToLabel(to))
	txIn := account.NewTransaction(to, amount, account.TransferFromLabel(from))
	if err := s.transactions.Append(ctx, txOut, txIn); err != nil {
		return s.transferFailed(ctx, logger, from, to, amount, err)
	}

	// Both calls were validated above and cannot fail.
	_ = src.Withdraw(amount)
	_ = dst.Deposit(amount)

	logger.Info("Transfer successful",
		"from_balance", src.Balance.String(),
		"to_balance", dst.Balance.String(),
	)
	s.emit(ctx, events.TransferCompleted{
		From:    from,
		To:      to,
		Amount:  amount,
		TxOutID: txOut.ID,
		TxInID:  txIn.ID,
	})
	return nil
}

// GetBalance returns the balance of the account or ErrAccountNotFound.
func (s *Service) GetBalance(ctx context.Context, number string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.find(ctx, number)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// GetAccount returns a snapshot of the account or ErrAccountNotFound.
func (s *Service) GetAccount(ctx context.Context, number string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.find(ctx, number)
	if err != nil {
		return nil, err
	}
	return snapshot(acc), nil
}

// Accounts returns snapshots of every account in creation order.
func (s *Service) Accounts(ctx context.Context) ([]*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*account.Account, len(all))
	for i, acc := range all {
		out[i] = snapshot(acc)
	}
	return out, nil
}

// ListTransactions returns the transaction log in insertion order.
func (s *Service) ListTransactions(ctx context.Context) ([]account.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.List(ctx)
}

// QuoteLoan prices a loan for the given account number. The number is only
// carried on the loan; no account is looked up or changed.
func (s *Service) QuoteLoan(
	_ context.Context,
	number string,
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
) (loan.Quote, error) {
	l, err := loan.New(number, principal, annualRatePercent, termMonths)
	if err != nil {
		s.logger.Warn("QuoteLoan rejected", "number", number, "error", err)
		return loan.Quote{}, err
	}
	q := l.Quote()
	s.logger.Info("Loan quoted",
		"number", number,
		"principal", q.Principal.String(),
		"monthly_payment", q.MonthlyPayment.String(),
	)
	return q, nil
}

// LoanSchedule returns the month by month amortization of a loan. Like
// QuoteLoan it does not touch any account.
func (s *Service) LoanSchedule(
	_ context.Context,
	number string,
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
) ([]loan.Installment, error) {
	l, err := loan.New(number, principal, annualRatePercent, termMonths)
	if err != nil {
		s.logger.Warn("LoanSchedule rejected", "number", number, "error", err)
		return nil, err
	}
	return l.Schedule(), nil
}

func (s *Service) find(ctx context.Context, number string) (*account.Account, error) {
	acc, err := s.accounts.Get(ctx, number)
	if err != nil {
		return nil, mapRepoErr(err, number)
	}
	return acc, nil
}

func (s *Service) transferFailed(
	ctx context.Context,
	logger *slog.Logger,
	from, to string,
	amount decimal.Decimal,
	err error,
) error {
	logger.Warn("Transfer failed", "error", err)
	s.emit(ctx, events.TransferFailed{From: from, To: to, Amount: amount, Reason: err.Error()})
	return err
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit event", "type", event.Type(), "error", err)
	}
}

func mapRepoErr(err error, number string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	case errors.Is(err, repository.ErrDuplicateKey):
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, number)
	default:
		return err
	}
}

func snapshot(acc *account.Account) *account.Account {
	cp := *acc
	return &cp
}
