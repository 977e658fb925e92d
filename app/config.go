package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/devsecops-app/observe"
	"github.com/jonwraymond/devsecops-app/router"
	"github.com/jonwraymond/devsecops-app/server"
)

// DefaultPort is the port the service listens on when run as a program.
const DefaultPort = 3000

// Config holds all configuration for the App. It is built in code; the
// service reads no configuration files.
type Config struct {
	ServiceName string
	Version     string

	// Port is used by Run. Default: DefaultPort
	Port int

	// Greeting is served on GET /. Default: router.DefaultGreeting
	Greeting string

	// ShutdownTimeout bounds Close when Run is cancelled. Default: 5 seconds
	ShutdownTimeout time.Duration

	Observe observe.Config
}

// DefaultConfig returns the configuration the service runs with.
func DefaultConfig() Config {
	return Config{
		ServiceName:     "devsecops-app",
		Version:         "1.0.0",
		Port:            DefaultPort,
		Greeting:        router.DefaultGreeting,
		ShutdownTimeout: 5 * time.Second,
		Observe: observe.Config{
			ServiceName: "devsecops-app",
			Version:     "1.0.0",
			Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("app: service name is required")
	}
	if err := server.ValidatePort(c.Port); err != nil {
		return err
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("app: shutdown timeout must not be negative, got %v", c.ShutdownTimeout)
	}
	if err := c.Observe.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Greeting == "" {
		c.Greeting = def.Greeting
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.Observe.ServiceName == "" {
		c.Observe.ServiceName = c.ServiceName
	}
	if c.Observe.Version == "" {
		c.Observe.Version = c.Version
	}
}
