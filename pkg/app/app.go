package app

import (
	"log/slog"

	"github.com/amirasaad/recordkeeper/infra/repository/memory"
	"github.com/amirasaad/recordkeeper/pkg/config"
	"github.com/amirasaad/recordkeeper/pkg/domain/fine"
	"github.com/amirasaad/recordkeeper/pkg/eventbus"
	"github.com/amirasaad/recordkeeper/pkg/handler/activity"
	"github.com/amirasaad/recordkeeper/pkg/service/catalog"
	"github.com/amirasaad/recordkeeper/pkg/service/ledger"
)

// Deps contains the shared dependencies built by the initializer.
type Deps struct {
	EventBus   eventbus.Bus
	FinePolicy fine.Policy
	Logger     *slog.Logger
}

type App struct {
	Deps     *Deps
	Config   *config.App
	Activity *activity.Feed
	Ledger   *ledger.Service
	Catalog  *catalog.Service
}

// New builds a ledger and a catalog, each over its own fresh collections.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:     deps,
		Config:   cfg,
		Activity: activity.NewFeed(activity.DefaultCapacity),
	}
	app.setupEventBus()

	app.Ledger = ledger.New(
		memory.NewAccountRepository(),
		memory.NewTransactionRepository(),
		deps.EventBus,
		deps.Logger,
	)

	opts := []catalog.Option{catalog.WithDailyRate(cfg.Catalog.Fine.DailyRate)}
	if deps.FinePolicy != nil {
		opts = append(opts, catalog.WithFinePolicy(deps.FinePolicy))
	}
	app.Catalog = catalog.New(
		memory.NewBookRepository(),
		memory.NewPatronRepository(),
		deps.EventBus,
		deps.Logger,
		opts...,
	)
	return app
}
