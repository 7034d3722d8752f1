// Package app wires the ledger and the catalog to their collections and to
// the event bus.
package app

import (
	"github.com/amirasaad/recordkeeper/pkg/domain/events"
	"github.com/amirasaad/recordkeeper/pkg/handler/activity"
)

// setupEventBus registers all event handlers with the bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger.With("handler", "activity")

	activity.Register(bus, a.Activity, logger, events.LedgerTypes...)
	activity.Register(bus, a.Activity, logger, events.CatalogTypes...)
}
