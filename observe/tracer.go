package observe

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestMeta describes an inbound HTTP request for telemetry purposes.
type RequestMeta struct {
	Method string
	Route  string // route template, e.g. /health
	Path   string // raw request path
}

// SpanName returns the deterministic span name for this request.
// Format: HTTP <method> <route>
func (m RequestMeta) SpanName() string {
	route := m.Route
	if route == "" {
		route = "unmatched"
	}
	return "HTTP " + m.Method + " " + route
}

// Tracer wraps OpenTelemetry tracing with request-scoped span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a server span for the request.
	StartSpan(ctx context.Context, meta RequestMeta) (context.Context, trace.Span)

	// EndSpan records the response status code and ends the span.
	EndSpan(span trace.Span, statusCode int)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta RequestMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", meta.Method),
		attribute.String("url.path", meta.Path),
	}
	if meta.Route != "" {
		attrs = append(attrs, attribute.String("http.route", meta.Route))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// EndSpan marks 5xx responses as errors; 4xx stay unset on server spans.
func (t *tracerImpl) EndSpan(span trace.Span, statusCode int) {
	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	if statusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(statusCode))
	}
	span.End()
}
