// Package fine decides how many days a loan is overdue and what that costs.
package fine

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/amirasaad/recordkeeper/pkg/domain/catalog"
	"github.com/shopspring/decimal"
)

// DefaultMaxSimulatedDays is the exclusive upper bound of simulated overdue days.
const DefaultMaxSimulatedDays = 15

// DefaultDailyRate is charged per overdue day.
var DefaultDailyRate = decimal.NewFromInt(1)

// Policy reports how many days a loan is overdue at now.
type Policy interface {
	OverdueDays(loan catalog.Loan, now time.Time) int
}

// SimulatedPolicy does not track due dates. It draws a pseudo-random number of
// overdue days, uniform in [0, MaxDays()), for every loan it is asked about, so
// two reports over the same loans generally differ.
//
// The zero value is ready to use: it draws from a time-seeded source with
// DefaultMaxSimulatedDays as the bound.
type SimulatedPolicy struct {
	maxDays int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedPolicy returns a simulated policy. A maxDays of zero or less
// uses DefaultMaxSimulatedDays. A zero seed draws from a time-seeded source;
// any other seed makes the sequence reproducible.
func NewSimulatedPolicy(maxDays int, seed uint64) *SimulatedPolicy {
	return &SimulatedPolicy{
		maxDays: maxDays,
		rng:     newRand(seed),
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// MaxDays is the exclusive upper bound of the simulated overdue days.
func (p *SimulatedPolicy) MaxDays() int {
	if p.maxDays <= 0 {
		return DefaultMaxSimulatedDays
	}
	return p.maxDays
}

// OverdueDays ignores the loan and returns a simulated count.
func (p *SimulatedPolicy) OverdueDays(_ catalog.Loan, _ time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rng == nil {
		p.rng = newRand(0)
	}
	return p.rng.IntN(p.MaxDays())
}

// DueDatePolicy treats every loan as due LoanPeriod after it was borrowed.
type DueDatePolicy struct {
	LoanPeriod time.Duration
}

// OverdueDays counts whole days past the due date; loans not yet due are 0.
func (p DueDatePolicy) OverdueDays(loan catalog.Loan, now time.Time) int {
	due := loan.BorrowedAt.Add(p.LoanPeriod)
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due) / (24 * time.Hour))
}

// Calculate returns dailyRate * overdueDays. Negative day counts cost nothing.
func Calculate(dailyRate decimal.Decimal, overdueDays int) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return dailyRate.Mul(decimal.NewFromInt(int64(overdueDays)))
}
