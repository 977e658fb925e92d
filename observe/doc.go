// Package observe provides the service's observability primitives: a JSON
// structured logger, OpenTelemetry tracing setup, and an HTTP middleware that
// traces and logs every request.
//
// It performs no I/O beyond writing log lines and exporter setup. Consumers
// build an Observer once at startup and hand its Logger and Tracer to the
// components that need them.
package observe
