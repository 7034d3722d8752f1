// Package activity keeps a bounded, human-readable feed of what the ledger
// and the catalog did, fed from the event bus.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/eventbus"
)

// DefaultCapacity is the number of entries a feed keeps when none is given.
const DefaultCapacity = 50

// Entry is one line of the feed.
type Entry struct {
	At      time.Time
	Type    string
	Summary string
}

// Feed is a ring of the most recent entries, oldest first.
type Feed struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	now      func() time.Time
}

// NewFeed returns an empty feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity, now: time.Now}
}

func (f *Feed) add(eventType, summary string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, Entry{At: f.now(), Type: eventType, Summary: summary})
	if over := len(f.entries) - f.capacity; over > 0 {
		f.entries = append([]Entry(nil), f.entries[over:]...)
	}
}

// Entries returns a copy of the feed, oldest first.
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries held.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// HandleEvent returns a bus handler that appends a summary of every event it
// receives to feed.
func HandleEvent(feed *Feed, logger *slog.Logger) eventbus.HandlerFunc {
	return func(_ context.Context, e events.Event) error {
		summary, err := Describe(e)
		if err != nil {
			logger.Warn("Skipping activity entry", "type", e.Type(), "error", err)
			return err
		}
		feed.add(e.Type(), summary)
		logger.Debug("Activity recorded", "type", e.Type(), "summary", summary)
		return nil
	}
}

// Describe renders an event as a single line.
func Describe(e events.Event) (string, error) {
	switch ev := e.(type) {
	case events.AccountCreated:
		return fmt.Sprintf("%s account %s opened with %s", ev.Kind, ev.Number, ev.OpeningBalance.StringFixed(2)), nil
	case events.FundsDeposited:
		return fmt.Sprintf("Deposited %s to %s, balance %s", ev.Amount.StringFixed(2), ev.Number, ev.Balance.StringFixed(2)), nil
	case events.FundsWithdrawn:
		return fmt.Sprintf("Withdrew %s from %s, balance %s", ev.Amount.StringFixed(2), ev.Number, ev.Balance.StringFixed(2)), nil
	case events.TransferCompleted:
		return fmt.Sprintf("Transferred %s from %s to %s", ev.Amount.StringFixed(2), ev.From, ev.To), nil
	case events.TransferFailed:
		return fmt.Sprintf("Transfer of %s from %s to %s failed: %s", ev.Amount.StringFixed(2), ev.From, ev.To, ev.Reason), nil
	case events.BookAdded:
		return fmt.Sprintf("Book added: %s by %s", ev.Title, ev.Author), nil
	case events.PatronAdded:
		return fmt.Sprintf("Patron added: %s", ev.Name), nil
	case events.BookBorrowed:
		return fmt.Sprintf("%s borrowed %s", ev.Patron, ev.Title), nil
	case events.BookReturned:
		return fmt.Sprintf("%s returned %s", ev.Patron, ev.Title), nil
	default:
		return "", fmt.Errorf("unknown event type %T", e)
	}
}

// Register subscribes feed to every type in eventTypes. The bus delivers each
// event once, so every delivery becomes one entry.
func Register(bus eventbus.Bus, feed *Feed, logger *slog.Logger, eventTypes ...string) {
	handler := HandleEvent(feed, logger)
	for _, t := range eventTypes {
		bus.Register(t, handler)
	}
}
