package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/devsecops-app/observe"
)

// State is the lifecycle state of an Instance.
type State int32

const (
	// StateUnbound is an instance that has not started binding.
	StateUnbound State = iota
	// StateBinding is an instance waiting for its socket.
	StateBinding
	// StateListening is an instance accepting connections.
	StateListening
	// StateClosing is an instance draining after Close.
	StateClosing
	// StateClosed is an instance whose socket has been released.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBinding:
		return "binding"
	case StateListening:
		return "listening"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config configures a Manager.
type Config struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	// Default: 10 seconds
	ReadHeaderTimeout time.Duration

	// Logger receives lifecycle events. Default: discard.
	Logger observe.Logger
}

// Manager starts listening instances that serve one handler.
// A Manager may start any number of instances on distinct ports.
type Manager struct {
	handler http.Handler
	config  Config
}

// New creates a Manager serving handler.
func New(handler http.Handler, config ...Config) *Manager {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}

	return &Manager{handler: handler, config: cfg}
}

// Start validates port, binds it and returns once the socket is listening.
// An invalid port fails with ErrInvalidPort before any socket is opened.
// Bind failures, such as a port already in use, are returned as is; Start
// never retries. ctx is only consulted for address resolution; a bind in
// progress cannot be cancelled.
func (m *Manager) Start(ctx context.Context, port int) (*Instance, error) {
	if err := ValidatePort(port); err != nil {
		return nil, err
	}
	if m.handler == nil {
		return nil, ErrNilHandler
	}

	inst := &Instance{
		logger: m.config.Logger,
		done:   make(chan struct{}),
	}
	inst.state.Store(int32(StateBinding))

	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(port))
	var lc net.ListenConfig
	ln, err := lc.Listen(context.WithoutCancel(ctx), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("server: listen on %s: %w", addr, err)
	}

	inst.listener = ln
	inst.srv = &http.Server{
		Handler:           m.handler,
		ReadHeaderTimeout: m.config.ReadHeaderTimeout,
	}
	inst.state.Store(int32(StateListening))

	go inst.serve()

	m.config.Logger.Info(ctx, "server listening",
		observe.Field{Key: "url", Value: inst.URL()},
		observe.Field{Key: "addr", Value: ln.Addr().String()},
	)
	return inst, nil
}

// Instance is a bound listening socket serving HTTP. It is owned by the
// caller of Start and must be released with Close.
type Instance struct {
	listener net.Listener
	srv      *http.Server
	logger   observe.Logger

	state    atomic.Int32
	done     chan struct{}
	serveErr error

	closeOnce sync.Once
	closeErr  error
}

func (i *Instance) serve() {
	err := i.srv.Serve(i.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		i.serveErr = err
		i.logger.Error(context.Background(), "server stopped",
			observe.Field{Key: "addr", Value: i.listener.Addr().String()},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}
	i.state.Store(int32(StateClosed))
	close(i.done)
}

// State returns the current lifecycle state.
func (i *Instance) State() State {
	return State(i.state.Load())
}

// Listening reports whether the instance is accepting connections.
func (i *Instance) Listening() bool {
	return i.State() == StateListening
}

// Addr returns the bound address.
func (i *Instance) Addr() net.Addr {
	return i.listener.Addr()
}

// Port returns the bound port.
func (i *Instance) Port() int {
	if tcp, ok := i.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// URL returns the base URL of the instance on localhost.
func (i *Instance) URL() string {
	return "http://localhost:" + strconv.Itoa(i.Port())
}

// Done is closed once the instance has stopped serving.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Err returns the error that stopped serving, if any. It is only
// meaningful after Done is closed.
func (i *Instance) Err() error {
	select {
	case <-i.done:
		return i.serveErr
	default:
		return nil
	}
}

// Close stops accepting connections and returns once the socket is released
// and the serve loop has exited. In-flight requests are allowed to finish
// until ctx expires; Close then returns the context error. Close is
// idempotent and later calls return the first result.
func (i *Instance) Close(ctx context.Context) error {
	i.closeOnce.Do(func() {
		if !i.state.CompareAndSwap(int32(StateListening), int32(StateClosing)) {
			<-i.done
			return
		}

		if err := i.srv.Shutdown(ctx); err != nil {
			i.closeErr = fmt.Errorf("server: close %s: %w", i.listener.Addr(), err)
		}
		<-i.done

		i.logger.Info(ctx, "server closed",
			observe.Field{Key: "addr", Value: i.listener.Addr().String()},
		)
	})
	return i.closeErr
}
