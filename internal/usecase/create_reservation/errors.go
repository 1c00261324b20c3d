package create_reservation

import "errors"

var (
	// ErrKindergartenNotFound is returned when the kindergarten does not exist.
	ErrKindergartenNotFound = errors.New("create_reservation: kindergarten not found")

	// ErrCustomerNotFound is returned when the customer does not exist in the
	// kindergarten.
	ErrCustomerNotFound = errors.New("create_reservation: customer not found")

	// ErrPetNotFound is returned when the pet is not one of the customer's
	// active pets.
	ErrPetNotFound = errors.New("create_reservation: pet not found")

	// ErrTicketNotFound is returned when the ticket product does not exist in
	// the kindergarten.
	ErrTicketNotFound = errors.New("create_reservation: ticket not found")

	// ErrNoUsableTicket is returned when the customer holds no unexpired
	// ticket with balance matching the request.
	ErrNoUsableTicket = errors.New("create_reservation: no usable customer ticket")

	// ErrAlreadyReserved is returned when the pet already has an active
	// reservation on the requested date.
	ErrAlreadyReserved = errors.New("create_reservation: pet already reserved on this date")

	// ErrInvalidReservedAt is returned when the requested date is not in the
	// kindergarten's available set.
	ErrInvalidReservedAt = errors.New("create_reservation: date is not available")

	// ErrInvalidAttendanceTime is returned when the attendance time is not
	// one of the generated slots for the ticket's duration.
	ErrInvalidAttendanceTime = errors.New("create_reservation: invalid attendance time")

	// ErrInvalidEndAt is returned when a hotel stay's checkout date is
	// missing, not after the check-in date, or out of range.
	ErrInvalidEndAt = errors.New("create_reservation: invalid end date")

	// ErrDailyLimitExceeded is returned when admitting the pet would push a
	// date past the kindergarten's daily pet limit.
	ErrDailyLimitExceeded = errors.New("create_reservation: daily pet limit exceeded")

	// ErrTicketConflict is returned when the ticket balance changed under a
	// concurrent request and the optimistic decrement lost the race.
	ErrTicketConflict = errors.New("create_reservation: ticket balance conflict")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_reservation: internal error")
)
