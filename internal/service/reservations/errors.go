package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	// or belongs to another customer.
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("reservations.service: internal error")
)
