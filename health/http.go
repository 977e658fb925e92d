package health

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusResponse is the JSON body of the health endpoint.
type StatusResponse struct {
	Status Status `json:"status"`
}

// ToggleResponse is the JSON body returned by the toggle endpoint.
type ToggleResponse struct {
	Updated bool `json:"updated"`
}

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MaxToggleBytes bounds the toggle payload.
const MaxToggleBytes = 1 << 16

// healthyKey is matched exactly; encoding/json would fold case on a struct tag.
const healthyKey = "healthy"

// StatusHandler returns an HTTP handler answering 200 {"status":"healthy"}
// while flag is set and 500 {"status":"unhealthy"} otherwise.
func StatusHandler(flag *Flag) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := flag.Status()

		code := http.StatusOK
		if status != StatusHealthy {
			code = http.StatusInternalServerError
		}
		writeJSON(w, code, StatusResponse{Status: status})
	}
}

// ToggleHandler returns an HTTP handler that stores the "healthy" value
// of the request body into flag. Payloads without a boolean "healthy"
// value are rejected with 400, oversized ones with 413. Rejections leave
// the flag unchanged.
func ToggleHandler(flag *Flag) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		healthy, err := DecodeToggle(http.MaxBytesReader(w, r.Body, MaxToggleBytes))
		if err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, ErrBodyTooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			writeJSON(w, code, ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, ToggleResponse{Updated: flag.Set(healthy)})
	}
}

// DecodeToggle reads a toggle payload and returns its "healthy" value.
// The key must be spelled exactly; "Healthy" or "HEALTHY" count as missing.
func DecodeToggle(r io.Reader) (bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return false, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return false, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, ErrMissingHealthValue
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	raw, ok := fields[healthyKey]
	if !ok || string(raw) == "null" {
		return false, ErrMissingHealthValue
	}

	var healthy bool
	if err := json.Unmarshal(raw, &healthy); err != nil {
		return false, fmt.Errorf("%w: got %s", ErrInvalidHealthValue, raw)
	}
	return healthy, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
