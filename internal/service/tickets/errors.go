package tickets

import "errors"

var (
	// ErrCustomerNotFound is returned when the customer does not exist in the
	// kindergarten.
	ErrCustomerNotFound = errors.New("tickets.service: customer not found")

	// ErrTicketNotFound is returned when the ticket product does not exist in
	// the kindergarten.
	ErrTicketNotFound = errors.New("tickets.service: ticket not found")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("tickets.service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("tickets.service: internal error")
)
