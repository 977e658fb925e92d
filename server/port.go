package server

import "fmt"

const (
	// MinPort is the smallest port Start accepts.
	MinPort = 1
	// MaxPort is the largest port Start accepts.
	MaxPort = 65535
)

// ValidatePort reports whether port lies in (0, 65536). A failure wraps
// ErrInvalidPort. Start runs the same check before touching the network.
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	return nil
}
