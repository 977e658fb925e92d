package health

import "errors"

// Toggle payload errors. Each one leaves the flag unchanged.
var (
	// ErrMalformedBody indicates the toggle request body is not a JSON object.
	ErrMalformedBody = errors.New("health: malformed request body")

	// ErrMissingHealthValue indicates the toggle payload has no "healthy" value.
	ErrMissingHealthValue = errors.New("health: healthy field is required")

	// ErrInvalidHealthValue indicates the "healthy" value is not a boolean.
	ErrInvalidHealthValue = errors.New("health: healthy field must be a boolean")

	// ErrBodyTooLarge indicates the toggle payload exceeds the size limit.
	ErrBodyTooLarge = errors.New("health: request body too large")
)
