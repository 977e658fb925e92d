// Command devsecops-app serves the greeting and health endpoints on port 3000.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonwraymond/devsecops-app/app"
	"github.com/jonwraymond/devsecops-app/observe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "devsecops-app:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.DefaultConfig())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Shutdown(shutdownCtx); err != nil {
			a.Logger().Error(shutdownCtx, "telemetry shutdown failed", observe.Field{Key: "error", Value: err.Error()})
		}
	}()

	return a.Run(ctx)
}
