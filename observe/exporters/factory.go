// Package exporters builds the OpenTelemetry span exporter selected by name.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	// ErrUnknownExporter is returned for a name with no exporter behind it.
	ErrUnknownExporter = errors.New("exporters: unknown exporter")

	// ErrMissingEndpoint is returned when a network exporter has no
	// collector endpoint in the environment.
	ErrMissingEndpoint = errors.New("exporters: endpoint not configured")
)

type builder func(ctx context.Context, stdout io.Writer) (sdktrace.SpanExporter, error)

// builders holds every supported exporter. "none" and "" discard spans.
var builders = map[string]builder{
	"stdout": buildStdout,
	"otlp":   buildOTLP,
	"jaeger": buildJaeger,
	"none":   buildDiscard,
	"":       buildDiscard,
}

// Supported reports whether name selects an exporter New can build.
func Supported(name string) bool {
	_, ok := builders[name]
	return ok
}

// New returns the span exporter called name: stdout, otlp, jaeger or none.
// otlp reads OTEL_EXPORTER_OTLP_ENDPOINT (or its _TRACES_ variant) and
// jaeger reads OTEL_EXPORTER_JAEGER_ENDPOINT.
func New(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	return build(ctx, name, os.Stdout)
}

func build(ctx context.Context, name string, stdout io.Writer) (sdktrace.SpanExporter, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
	return b(ctx, stdout)
}

func buildStdout(_ context.Context, stdout io.Writer) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(stdout))
}

func buildDiscard(_ context.Context, _ io.Writer) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(io.Discard))
}

// buildOTLP leaves endpoint resolution to otlptracegrpc, which reads the
// same variables.
func buildOTLP(ctx context.Context, _ io.Writer) (sdktrace.SpanExporter, error) {
	if _, err := endpointFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); err != nil {
		return nil, err
	}
	return otlptracegrpc.New(ctx)
}

// buildJaeger targets Jaeger's native OTLP gRPC receiver.
func buildJaeger(ctx context.Context, _ io.Writer) (sdktrace.SpanExporter, error) {
	endpoint, err := endpointFromEnv("OTEL_EXPORTER_JAEGER_ENDPOINT")
	if err != nil {
		return nil, err
	}
	return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))
}

// endpointFromEnv returns the first non-empty variable among keys.
func endpointFromEnv(keys ...string) (string, error) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: set %s", ErrMissingEndpoint, strings.Join(keys, " or "))
}
