package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/eventbus"
)

// DefaultPublishedLimit is how many recent events NewWithMemory keeps for
// Published.
const DefaultPublishedLimit = 256

// MemoryEventBus dispatches events synchronously to in-process handlers.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []events.Event
	limit     int
}

// NewWithMemory creates a new in-memory event bus that remembers the last
// DefaultPublishedLimit events.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return NewWithMemoryLimit(logger, DefaultPublishedLimit)
}

// NewWithMemoryLimit creates an in-memory event bus that remembers the last
// limit events. A limit of zero or less records nothing.
func NewWithMemoryLimit(logger *slog.Logger, limit int) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]events.Event, 0),
		limit:     limit,
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type. Handler
// errors are logged and do not stop the remaining handlers.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := event.Type()
	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.record(event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("failed to process event", "type", eventType, "error", err)
		}
	}
	return nil
}

// record keeps event for Published. The backing slice is compacted once it
// holds twice the limit, so appends stay amortized O(1).
func (b *MemoryEventBus) record(event events.Event) {
	if b.limit <= 0 {
		return
	}
	b.published = append(b.published, event)
	if len(b.published) >= 2*b.limit {
		b.published = append(b.published[:0], b.published[len(b.published)-b.limit:]...)
	}
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]events.Event, 0)
}

// Published returns a copy of the most recent events, oldest first.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	recent := b.published
	if len(recent) > b.limit {
		recent = recent[len(recent)-b.limit:]
	}
	out := make([]events.Event, len(recent))
	copy(out, recent)
	return out
}

// Ensure MemoryEventBus implements the Bus interface.
var _ eventbus.Bus = (*MemoryEventBus)(nil)
