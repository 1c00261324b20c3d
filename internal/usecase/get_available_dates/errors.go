package get_available_dates

import "errors"

var (
	// ErrKindergartenNotFound is returned when the kindergarten does not exist.
	ErrKindergartenNotFound = errors.New("get_available_dates: kindergarten not found")

	// ErrTicketNotFound is returned when the ticket product does not exist in
	// the kindergarten.
	ErrTicketNotFound = errors.New("get_available_dates: ticket not found")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_available_dates: internal error")
)
