package server

import "errors"

var (
	// ErrInvalidPort indicates the requested port is not an integer in (0, 65536).
	ErrInvalidPort = errors.New("server: invalid port number")

	// ErrNilHandler indicates a Manager was built without an HTTP handler.
	ErrNilHandler = errors.New("server: handler is nil")
)
