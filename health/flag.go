package health

import "sync/atomic"

// Status is the value reported by the health endpoint.
type Status string

const (
	// StatusHealthy is reported while the flag is set.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy is reported once the flag has been cleared.
	StatusUnhealthy Status = "unhealthy"
)

// Flag is the service health flag. It starts healthy and changes only
// through Set. All methods are safe for concurrent use.
type Flag struct {
	// Inverted so the zero value is healthy.
	cleared atomic.Bool
}

// NewFlag returns a flag in the healthy state.
func NewFlag() *Flag {
	return &Flag{}
}

// Healthy reports whether the flag is set.
func (f *Flag) Healthy() bool {
	return !f.cleared.Load()
}

// Set stores the flag value and returns it.
func (f *Flag) Set(healthy bool) bool {
	f.cleared.Store(!healthy)
	return healthy
}

// Status maps the flag onto the reported status.
func (f *Flag) Status() Status {
	if f.Healthy() {
		return StatusHealthy
	}
	return StatusUnhealthy
}
