package observe

import (
	"context"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// RequestIDHeader carries the request id in and out of the service.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Middleware traces and logs HTTP requests.
//
// Contract:
//   - Concurrency: Handler returns a handler safe for concurrent use.
//   - Context: the span and request id are attached to the request context
//     seen by the wrapped handler.
//   - Ownership: responses are passed through unmodified apart from the
//     X-Request-ID header.
type Middleware struct {
	tracer Tracer
	logger Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, logger Logger) *Middleware {
	return &Middleware{
		tracer: tracer,
		logger: logger,
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) *Middleware {
	return NewMiddleware(NewTracer(obs.Tracer()), obs.Logger())
}

// Handler wraps next with tracing, request ids and an access log line.
// It has the mux.MiddlewareFunc signature.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		meta := RequestMeta{
			Method: r.Method,
			Route:  routeTemplate(r),
			Path:   r.URL.Path,
		}

		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx = WithRequestID(ctx, id)
		ctx, span := m.tracer.StartSpan(ctx, meta)

		metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

		m.tracer.EndSpan(span, metrics.Code)

		fields := []Field{
			{Key: "method", Value: meta.Method},
			{Key: "route", Value: meta.Route},
			{Key: "path", Value: meta.Path},
			{Key: "status", Value: metrics.Code},
			{Key: "bytes", Value: metrics.Written},
			{Key: "duration_ms", Value: float64(metrics.Duration.Microseconds()) / 1000},
		}
		if metrics.Code >= http.StatusInternalServerError {
			m.logger.Warn(ctx, "request completed", fields...)
		} else {
			m.logger.Info(ctx, "request completed", fields...)
		}
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return ""
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return ""
	}
	return tpl
}
