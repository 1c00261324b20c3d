package dayoffs

import "errors"

var (
	// ErrDayOffNotFound is returned when the day-off does not exist in the
	// kindergarten.
	ErrDayOffNotFound = errors.New("dayoffs.service: day off not found")

	// ErrDuplicateDayOff is returned when the date is already blocked.
	ErrDuplicateDayOff = errors.New("dayoffs.service: duplicate day off")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("dayoffs.service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("dayoffs.service: internal error")
)
