package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	// or belongs to another customer.
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAlreadyCanceled is returned when the reservation is already canceled.
	ErrAlreadyCanceled = errors.New("cancel_reservation: reservation already canceled")

	// ErrNotChainRoot is returned when a hotel chain is canceled through one
	// of its child rows; cancellation addresses the root night.
	ErrNotChainRoot = errors.New("cancel_reservation: reservation is not the first night of the stay")

	// ErrTicketConflict is returned when the balance refund lost the
	// optimistic-concurrency race.
	ErrTicketConflict = errors.New("cancel_reservation: ticket balance conflict")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("cancel_reservation: internal error")
)
