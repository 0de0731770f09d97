package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/cli"
	"github.com/securelogx/console/internal/client/config"
	"github.com/securelogx/console/internal/client/session"
	"github.com/securelogx/console/internal/cryptox"
	"github.com/securelogx/console/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	key, err := cryptox.LoadOrCreateKey(cfg.KeyPath)
	if err != nil {
		return err
	}

	db, err := session.InitDatabase(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer db.Close()

	jar, err := session.NewJar(ctx, db, key, logger)
	if err != nil {
		return err
	}

	client := api.NewHTTPClient(cfg.AuthBaseURL, jar, logger)
	app := cli.NewApp(client, logger, os.Stdin, os.Stdout)

	logger.Debug(ctx, "console starting", "auth_url", cfg.AuthBaseURL, "store", cfg.StorePath)

	return serve(ctx, app.Run, shutdownGrace, logger)
}

// shutdownGrace bounds how long a signal waits for the command in flight.
const shutdownGrace = 500 * time.Millisecond

// serve runs the console until it returns or ctx is cancelled. After
// cancellation it waits up to grace for run to finish, so a cancelled
// request is not cut off from the cookie store it writes to. A REPL blocked
// on stdin cannot be interrupted and is abandoned after grace.
func serve(ctx context.Context, run func(context.Context) error, grace time.Duration, log logging.Logger) error {
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	select {
	case <-done:
	case <-time.After(grace):
		log.Debug(context.Background(), "console still busy at shutdown", "grace", grace)
	}
	return ctx.Err()
}
