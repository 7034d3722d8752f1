package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/amirasaad/recordkeeper/pkg/domain/loan"
	"github.com/amirasaad/recordkeeper/pkg/handler/activity"
	"github.com/amirasaad/recordkeeper/pkg/service/ledger"
	"github.com/shopspring/decimal"
)

// BankMenu drives a ledger from numbered choices.
type BankMenu struct {
	ledger *ledger.Service
	feed   *activity.Feed
	prompt *Prompter
	out    io.Writer
}

// NewBankMenu reads choices from in and writes results to out. feed may be nil.
func NewBankMenu(l *ledger.Service, feed *activity.Feed, in io.Reader, out io.Writer) *BankMenu {
	return &BankMenu{
		ledger: l,
		feed:   feed,
		prompt: NewPrompter(in, out),
		out:    out,
	}
}

// Run loops until the user exits or the input ends.
func (m *BankMenu) Run(ctx context.Context) error {
	mn := &menu{
		title: "Online Banking System Menu",
		items: []item{
			{"Create Account", m.createAccount},
			{"View Balance", m.viewBalance},
			{"Transfer Funds", m.transfer},
			{"View Transaction History", m.history},
			{"Apply for Loan", m.applyForLoan},
			{"Exit", nil},
			{"Deposit", m.deposit},
			{"Withdraw", m.withdraw},
			{"Display All Accounts", m.listAccounts},
			{"View Loan Schedule", m.loanSchedule},
			{"Recent Activity", func(context.Context) error { showActivity(m.out, m.feed); return nil }},
		},
		prompt:  m.prompt,
		out:     m.out,
		explain: explainLedger,
	}
	return mn.loop(ctx)
}

func (m *BankMenu) createAccount(ctx context.Context) error {
	kindInput, err := m.prompt.Line(ctx, "Enter account type (Savings/Checking): ")
	if err != nil {
		return err
	}
	kind, err := account.ParseKind(kindInput)
	if err != nil {
		return err
	}
	number, err := m.prompt.Line(ctx, "Enter account number: ")
	if err != nil {
		return err
	}
	opening, err := m.prompt.Decimal(ctx, "Enter initial deposit: ")
	if err != nil {
		return err
	}
	acc, err := m.ledger.CreateAccount(ctx, kind, number, opening)
	if err != nil {
		return err
	}
	success(m.out, "%s account created successfully.", acc.Kind)
	return nil
}

func (m *BankMenu) viewBalance(ctx context.Context) error {
	number, err := m.prompt.Line(ctx, "Enter account number to check balance: ")
	if err != nil {
		return err
	}
	balance, err := m.ledger.GetBalance(ctx, number)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(m.out, "Balance for account %s: %s\n", number, balance.StringFixed(2))
	return nil
}

func (m *BankMenu) transfer(ctx context.Context) error {
	from, err := m.prompt.Line(ctx, "Enter source account number: ")
	if err != nil {
		return err
	}
	to, err := m.prompt.Line(ctx, "Enter target account number: ")
	if err != nil {
		return err
	}
	amount, err := m.prompt.Decimal(ctx, "Enter amount to transfer: ")
	if err != nil {
		return err
	}
	if err := m.ledger.TransferFunds(ctx, from, to, amount); err != nil {
		failure(m.out, "Transfer failed. %s", explainLedger(err))
		return nil
	}
	success(m.out, "Transfer Successful.")
	return nil
}

func (m *BankMenu) history(ctx context.Context) error {
	txs, err := m.ledger.ListTransactions(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Transaction History:")
	for _, tx := range txs {
		_, _ = fmt.Fprintln(m.out, tx.Details())
	}
	return nil
}

func (m *BankMenu) readLoan(ctx context.Context) (string, decimal.Decimal, decimal.Decimal, int, error) {
	number, err := m.prompt.Line(ctx, "Enter account number to apply for a loan: ")
	if err != nil {
		return "", decimal.Zero, decimal.Zero, 0, err
	}
	principal, err := m.prompt.Decimal(ctx, "Enter loan amount: ")
	if err != nil {
		return "", decimal.Zero, decimal.Zero, 0, err
	}
	rate, err := m.prompt.Decimal(ctx, "Enter interest rate: ")
	if err != nil {
		return "", decimal.Zero, decimal.Zero, 0, err
	}
	term, err := m.prompt.Int(ctx, "Enter loan term in months: ")
	if err != nil {
		return "", decimal.Zero, decimal.Zero, 0, err
	}
	return number, principal, rate, term, nil
}

func (m *BankMenu) applyForLoan(ctx context.Context) error {
	number, principal, rate, term, err := m.readLoan(ctx)
	if err != nil {
		return err
	}
	q, err := m.ledger.QuoteLoan(ctx, number, principal, rate, term)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(m.out, "Loan Amount: %s\n", q.Principal.StringFixed(2))
	_, _ = fmt.Fprintf(m.out, "Monthly Payment: %s\n", q.MonthlyPayment.StringFixed(2))
	_, _ = fmt.Fprintf(m.out, "Total Payment: %s\n", q.TotalPayment.StringFixed(2))
	_, _ = fmt.Fprintf(m.out, "Total Interest: %s\n", q.TotalInterest.StringFixed(2))
	return nil
}

func (m *BankMenu) loanSchedule(ctx context.Context) error {
	number, principal, rate, term, err := m.readLoan(ctx)
	if err != nil {
		return err
	}
	rows, err := m.ledger.LoanSchedule(ctx, number, principal, rate, term)
	if err != nil {
		return err
	}
	heading(m.out, fmt.Sprintf("%-6s %12s %12s %12s %12s", "Month", "Payment", "Interest", "Principal", "Remaining"))
	for _, r := range rows {
		_, _ = fmt.Fprintf(m.out, "%-6d %12s %12s %12s %12s\n",
			r.Month,
			r.Payment.StringFixed(2),
			r.Interest.StringFixed(2),
			r.Principal.StringFixed(2),
			r.Remaining.StringFixed(2),
		)
	}
	return nil
}

func (m *BankMenu) deposit(ctx context.Context) error {
	number, err := m.prompt.Line(ctx, "Enter account number: ")
	if err != nil {
		return err
	}
	amount, err := m.prompt.Decimal(ctx, "Enter amount to deposit: ")
	if err != nil {
		return err
	}
	acc, err := m.ledger.Deposit(ctx, number, amount)
	if err != nil {
		return err
	}
	success(m.out, "Deposit successful. New balance: %s", acc.Balance.StringFixed(2))
	return nil
}

func (m *BankMenu) withdraw(ctx context.Context) error {
	number, err := m.prompt.Line(ctx, "Enter account number: ")
	if err != nil {
		return err
	}
	amount, err := m.prompt.Decimal(ctx, "Enter amount to withdraw: ")
	if err != nil {
		return err
	}
	acc, err := m.ledger.Withdraw(ctx, number, amount)
	if err != nil {
		return err
	}
	success(m.out, "Withdrawal successful. New balance: %s", acc.Balance.StringFixed(2))
	return nil
}

func (m *BankMenu) listAccounts(ctx context.Context) error {
	accounts, err := m.ledger.Accounts(ctx)
	if err != nil {
		return err
	}
	heading(m.out, "Accounts:")
	for _, acc := range accounts {
		_, _ = fmt.Fprintf(m.out, "Account: %s, Type: %s, Balance: %s\n",
			acc.Number, acc.Kind, acc.Balance.StringFixed(2))
	}
	return nil
}

func explainLedger(err error) string {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds!"
	case errors.Is(err, ledger.ErrDuplicateAccount):
		return "An account with that number already exists."
	case errors.Is(err, account.ErrUnknownKind):
		return "Unknown account type. Use Savings or Checking."
	case errors.Is(err, account.ErrNegativeAmount):
		return "Amount must not be negative."
	case errors.Is(err, account.ErrAccountNumberRequired):
		return "Account number is required."
	case errors.Is(err, loan.ErrInvalidPrincipal),
		errors.Is(err, loan.ErrInvalidRate),
		errors.Is(err, loan.ErrInvalidTerm):
		return "Invalid loan terms: " + err.Error()
	case errors.Is(err, ErrInvalidNumber):
		return "Please enter a valid number."
	default:
		return "Error: " + err.Error()
	}
}

func showActivity(w io.Writer, feed *activity.Feed) {
	heading(w, "Recent Activity:")
	if feed == nil || feed.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No activity yet.")
		return
	}
	for _, e := range feed.Entries() {
		_, _ = fmt.Fprintf(w, "%s  %s\n", e.At.Format("15:04:05"), e.Summary)
	}
}
