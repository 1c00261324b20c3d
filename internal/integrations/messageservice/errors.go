package messageservice

import "errors"

var (
	// ErrInvalidTemplate is returned when the gateway rejects the template or
	// its variables. Not retryable.
	ErrInvalidTemplate = errors.New("messageservice client: invalid template request")

	// ErrUnavailable is returned when the gateway cannot be reached or
	// answers with a transient failure. Retryable.
	ErrUnavailable = errors.New("messageservice client: service unavailable")

	// ErrInternal is returned on unexpected client-side failures.
	ErrInternal = errors.New("messageservice client: internal error")
)
