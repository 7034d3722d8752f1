package catalog

import (
	"context"
	"fmt"

	"github.com/amirasaad/recordkeeper/pkg/domain/fine"
	"github.com/shopspring/decimal"
)

// BorrowingEntry lists the titles one patron currently holds, in borrow order.
type BorrowingEntry struct {
	Patron string
	Titles []string
}

// BorrowingReport is ordered by patron registration.
type BorrowingReport []BorrowingEntry

// Lines renders the report one line per patron and per held book.
func (r BorrowingReport) Lines() []string {
	var lines []string
	for _, e := range r {
		lines = append(lines, "Patron: "+e.Patron)
		for _, t := range e.Titles {
			lines = append(lines, "  Borrowed Book: "+t)
		}
	}
	return lines
}

// FineEntry is the fine owed for one held book.
type FineEntry struct {
	Patron      string
	Title       string
	OverdueDays int
	Fine        decimal.Decimal
}

// FineReport is ordered by patron registration, then borrow order.
type FineReport []FineEntry

// Total sums every fine in the report.
func (r FineReport) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r {
		total = total.Add(e.Fine)
	}
	return total
}

// Lines renders one line per held book.
func (r FineReport) Lines() []string {
	lines := make([]string, 0, len(r))
	for _, e := range r {
		lines = append(lines, fmt.Sprintf(
			"Patron: %s, Book: %s, Overdue Days: %d, Fine: %s",
			e.Patron, e.Title, e.OverdueDays, e.Fine.StringFixed(2),
		))
	}
	return lines
}

// BorrowingReport lists, for every patron, the books they currently hold.
// Patrons holding nothing appear with no titles.
func (s *Service) BorrowingReport(ctx context.Context) (BorrowingReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patrons, err := s.patrons.List(ctx)
	if err != nil {
		return nil, err
	}
	report := make(BorrowingReport, 0, len(patrons))
	for _, p := range patrons {
		held := p.Borrowed()
		titles := make([]string, len(held))
		for i, b := range held {
			titles[i] = b.Title
		}
		report = append(report, BorrowingEntry{Patron: p.Name, Titles: titles})
	}
	return report, nil
}

// FineReport prices every open loan with the configured fine policy. With the
// simulated policy two reports over the same loans generally differ.
func (s *Service) FineReport(ctx context.Context) (FineReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patrons, err := s.patrons.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var report FineReport
	for _, p := range patrons {
		for _, l := range p.Loans() {
			days := s.policy.OverdueDays(l, now)
			report = append(report, FineEntry{
				Patron:      p.Name,
				Title:       l.Book.Title,
				OverdueDays: days,
				Fine:        fine.Calculate(s.dailyRate, days),
			})
		}
	}
	s.logger.Info("Fine report generated", "entries", len(report), "total", report.Total().String())
	return report, nil
}
