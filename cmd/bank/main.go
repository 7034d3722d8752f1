package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/recordkeeper/infra/initializer"
	"github.com/amirasaad/recordkeeper/internal/console"
	"github.com/amirasaad/recordkeeper/pkg/app"
	"github.com/amirasaad/recordkeeper/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// A second signal after the first one kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	err := run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, in io.Reader, out, logOut io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg, logOut)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	deps.Logger.Info("starting online banking", "env", cfg.Env)

	a := app.New(deps, cfg)
	return console.NewBankMenu(a.Ledger, a.Activity, in, out).Run(ctx)
}
