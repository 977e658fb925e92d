// Package health holds the service health flag and the HTTP handlers that
// read and toggle it.
//
// A Flag starts healthy and changes only when a caller sets it. It is an
// owned value: each router gets the flag it should serve, so two services
// in one process never share health.
//
//	flag := health.NewFlag()
//
//	r.HandleFunc("/health", health.StatusHandler(flag)).Methods(http.MethodGet)
//	r.HandleFunc("/toggle-health", health.ToggleHandler(flag)).Methods(http.MethodPost)
//
// # HTTP Endpoints
//
// StatusHandler answers {"status":"healthy"} with 200 or
// {"status":"unhealthy"} with 500. ToggleHandler accepts {"healthy": bool}
// and answers {"updated": bool}. Any other payload is rejected with 400 and
// an {"error": "..."} body (413 past MaxToggleBytes), leaving the flag
// untouched.
package health
