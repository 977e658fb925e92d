// Package router maps the service's HTTP surface onto its handlers.
package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jonwraymond/devsecops-app/health"
	"github.com/jonwraymond/devsecops-app/observe"
)

// DefaultGreeting is the body served on GET /.
const DefaultGreeting = "Hello from DevSecOps App 🚀"

// Config holds the collaborators the router is built from.
type Config struct {
	// Greeting is served on GET /. Default: DefaultGreeting
	Greeting string

	// Flag backs /health and /toggle-health. Default: a new healthy flag.
	Flag *health.Flag

	// Middleware traces and logs requests. Optional.
	Middleware *observe.Middleware

	// Logger receives recovered panics. Default: discard.
	Logger observe.Logger
}

// New builds the router:
//
//	GET  /               greeting text
//	GET  /health         {"status": ...}
//	POST /toggle-health  {"healthy": bool} -> {"updated": bool}
func New(cfg Config) http.Handler {
	if cfg.Greeting == "" {
		cfg.Greeting = DefaultGreeting
	}
	if cfg.Flag == nil {
		cfg.Flag = health.NewFlag()
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}

	r := mux.NewRouter()
	r.HandleFunc("/", GreetingHandler(cfg.Greeting)).Methods(http.MethodGet)
	r.HandleFunc("/health", health.StatusHandler(cfg.Flag)).Methods(http.MethodGet)
	r.HandleFunc("/toggle-health", health.ToggleHandler(cfg.Flag)).Methods(http.MethodPost)

	if cfg.Middleware != nil {
		r.Use(cfg.Middleware.Handler)
		r.NotFoundHandler = cfg.Middleware.Handler(http.NotFoundHandler())
		r.MethodNotAllowedHandler = cfg.Middleware.Handler(methodNotAllowed())
	}

	return recoverWith(cfg.Logger, r)
}

// recoverWith turns handler panics into 500 responses and logs them.
func recoverWith(logger observe.Logger, h http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(panicLogger{logger}))(h)
}

// GreetingHandler returns a handler that always answers 200 with greeting.
func GreetingHandler(greeting string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(greeting))
	}
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

// panicLogger adapts observe.Logger to handlers.RecoveryHandlerLogger.
type panicLogger struct {
	logger observe.Logger
}

func (l panicLogger) Println(v ...any) {
	l.logger.Error(context.Background(), "recovered from panic", observe.Field{Key: "panic", Value: fmt.Sprint(v...)})
}
