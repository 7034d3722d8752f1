package eventbus

import (
	"context"

	"github.com/amirasaad/recordkeeper/pkg/domain/events"
)

// HandlerFunc handles a single emitted event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus defines the contract for emitting domain events and registering handlers.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
