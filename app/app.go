// Package app wires the service together: observability, the health flag,
// the router and the lifecycle manager.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/devsecops-app/health"
	"github.com/jonwraymond/devsecops-app/observe"
	"github.com/jonwraymond/devsecops-app/router"
	"github.com/jonwraymond/devsecops-app/server"
)

// App is one configured service. Its health flag is shared by every
// instance it starts.
type App struct {
	config   Config
	observer observe.Observer
	flag     *health.Flag
	manager  *server.Manager
}

// New validates cfg and builds an App. Call Shutdown to flush telemetry.
func New(ctx context.Context, cfg Config) (*App, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return nil, fmt.Errorf("app: observer: %w", err)
	}

	flag := health.NewFlag()

	handler := router.New(router.Config{
		Greeting:   cfg.Greeting,
		Flag:       flag,
		Middleware: observe.MiddlewareFromObserver(obs),
		Logger:     obs.Logger(),
	})

	return &App{
		config:   cfg,
		observer: obs,
		flag:     flag,
		manager:  server.New(handler, server.Config{Logger: obs.Logger()}),
	}, nil
}

// Flag returns the health flag behind /health and /toggle-health.
func (a *App) Flag() *health.Flag {
	return a.flag
}

// Logger returns the application logger.
func (a *App) Logger() observe.Logger {
	return a.observer.Logger()
}

// Start binds port and returns the listening instance. The caller owns
// the instance and must Close it.
func (a *App) Start(ctx context.Context, port int) (*server.Instance, error) {
	return a.manager.Start(ctx, port)
}

// Run serves on the configured port until ctx is cancelled or the server
// stops on its own, then closes the instance.
func (a *App) Run(ctx context.Context) error {
	inst, err := a.Start(ctx, a.config.Port)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-inst.Done()
		return inst.Err()
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-inst.Done():
		}
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.ShutdownTimeout)
		defer cancel()
		return inst.Close(closeCtx)
	})
	return g.Wait()
}

// Shutdown flushes and stops telemetry providers.
func (a *App) Shutdown(ctx context.Context) error {
	return a.observer.Shutdown(ctx)
}
