package observe

import "errors"

// Config.Validate errors.
var (
	// ErrMissingServiceName is returned when no service name is configured.
	ErrMissingServiceName = errors.New("observe: missing service name")

	// ErrInvalidSamplePct is returned for a trace sample ratio outside [0, 1].
	ErrInvalidSamplePct = errors.New("observe: sample ratio out of range")

	// ErrInvalidTracingExporter is returned for an exporter name the
	// exporters package cannot build.
	ErrInvalidTracingExporter = errors.New("observe: unsupported tracing exporter")

	// ErrInvalidLogLevel is returned for a level other than debug, info,
	// warn or error.
	ErrInvalidLogLevel = errors.New("observe: unsupported log level")
)
