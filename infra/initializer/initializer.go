package initializer

import (
	"fmt"
	"io"
	"log/slog"

	infra_eventbus "github.com/amirasaad/recordkeeper/infra/eventbus"
	"github.com/amirasaad/recordkeeper/pkg/app"
	"github.com/amirasaad/recordkeeper/pkg/config"
	"github.com/amirasaad/recordkeeper/pkg/domain/fine"
)

// InitializeDependencies builds the logger, event bus and fine policy shared
// by the ledger and the catalog. Logs are written to logOut.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(logOut, cfg.Log)
	deps.Logger = logger

	deps.EventBus = infra_eventbus.NewWithMemory(logger)

	deps.FinePolicy, err = newFinePolicy(cfg.Catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fine policy: %w", err)
	}

	return
}

func newFinePolicy(cfg *config.Catalog, logger *slog.Logger) (fine.Policy, error) {
	switch cfg.Fine.Policy {
	case config.FinePolicySimulated, "":
		logger.Info("Using simulated fine policy",
			"max_days", cfg.Fine.MaxSimulatedDays,
			"seeded", cfg.Fine.Seed != 0,
		)
		return fine.NewSimulatedPolicy(cfg.Fine.MaxSimulatedDays, cfg.Fine.Seed), nil
	case config.FinePolicyDueDate:
		logger.Info("Using due date fine policy", "loan_period", cfg.LoanPeriod)
		return fine.DueDatePolicy{LoanPeriod: cfg.LoanPeriod}, nil
	default:
		return nil, fmt.Errorf("unsupported fine policy %q", cfg.Fine.Policy)
	}
}
