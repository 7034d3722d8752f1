// Package loan computes amortized payments for fixed-rate loans.
//
// A Loan is a pure value object. It carries the account number it was quoted
// for but holds no reference to any account and is never stored by a ledger.
package loan

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrincipal is returned for a negative principal.
	ErrInvalidPrincipal = errors.New("principal must not be negative")

	// ErrInvalidRate is returned for a negative annual interest rate.
	ErrInvalidRate = errors.New("annual interest rate must not be negative")

	// ErrInvalidTerm is returned when the term is shorter than one month or
	// longer than MaxTermMonths.
	ErrInvalidTerm = errors.New("term must be between 1 and 1200 months")
)

// MaxTermMonths is the longest term New accepts: one hundred years.
const MaxTermMonths = 1200

// powScale bounds the precision of intermediate compounding factors.
const powScale = 18

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Loan describes a fixed-rate loan repaid in equal monthly installments.
type Loan struct {
	AccountNumber     string
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
}

// Quote summarizes the repayment of a loan, rounded to cents.
type Quote struct {
	Principal      decimal.Decimal
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// New validates the inputs and returns a Loan.
func New(
	accountNumber string,
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
) (Loan, error) {
	if principal.IsNegative() {
		return Loan{}, ErrInvalidPrincipal
	}
	if annualRatePercent.IsNegative() {
		return Loan{}, ErrInvalidRate
	}
	if termMonths < 1 || termMonths > MaxTermMonths {
		return Loan{}, ErrInvalidTerm
	}
	return Loan{
		AccountNumber:     accountNumber,
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
	}, nil
}

// MonthlyRate returns the periodic rate as a fraction: annual percent / 12 / 100.
func (l Loan) MonthlyRate() decimal.Decimal {
	return l.AnnualRatePercent.Div(monthsPerYear).Div(hundred)
}

// MonthlyPayment returns the unrounded installment
//
//	P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate has no interest to amortize, so the payment is P / n.
func (l Loan) MonthlyPayment() decimal.Decimal {
	n := decimal.NewFromInt(int64(l.TermMonths))
	r := l.MonthlyRate()
	if r.IsZero() {
		return l.Principal.Div(n)
	}
	factor := compound(decimal.NewFromInt(1).Add(r), l.TermMonths)
	denominator := factor.Sub(decimal.NewFromInt(1))
	return l.Principal.Mul(r).Mul(factor).Div(denominator)
}

// Quote returns the monthly and total cost of the loan rounded to cents.
func (l Loan) Quote() Quote {
	payment := l.MonthlyPayment()
	total := payment.Mul(decimal.NewFromInt(int64(l.TermMonths))).Round(2)
	return Quote{
		Principal:      l.Principal.Round(2),
		MonthlyPayment: payment.Round(2),
		TotalPayment:   total,
		TotalInterest:  total.Sub(l.Principal).Round(2),
	}
}

// Schedule splits every installment into interest and principal. The final
// installment absorbs rounding so that the remaining balance ends at zero.
func (l Loan) Schedule() []Installment {
	r := l.MonthlyRate()
	payment := l.MonthlyPayment().Round(2)
	remaining := l.Principal.Round(2)

	rows := make([]Installment, 0, l.TermMonths)
	for month := 1; month <= l.TermMonths; month++ {
		interest := remaining.Mul(r).Round(2)
		principal := payment.Sub(interest)
		pay := payment
		if month == l.TermMonths || principal.GreaterThan(remaining) {
			principal = remaining
			pay = principal.Add(interest)
		}
		remaining = remaining.Sub(principal)
		rows = append(rows, Installment{
			Month:     month,
			Payment:   pay,
			Interest:  interest,
			Principal: principal,
			Remaining: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return rows
}

func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		result = result.Mul(base).Round(powScale)
	}
	return result
}
