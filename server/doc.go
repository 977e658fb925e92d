// Package server manages the lifecycle of the service's listening socket.
//
// A Manager validates a requested port, binds it, and hands back an Instance
// once the socket is listening. The caller owns the Instance and releases the
// port with Close.
//
//	mgr := server.New(handler, server.Config{Logger: logger})
//	inst, err := mgr.Start(ctx, 3000)
//	if errors.Is(err, server.ErrInvalidPort) {
//	    // rejected before any socket was opened
//	}
//	defer inst.Close(ctx)
//
// # Instance States
//
// An Instance moves through Unbound, Binding, Listening, Closing and Closed.
// Start returns only after the Binding to Listening transition. A failed bind
// moves straight to Closed and no Instance is returned.
package server
