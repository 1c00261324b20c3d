package get_available_slots

import "errors"

var (
	// ErrKindergartenNotFound is returned when the kindergarten does not exist.
	ErrKindergartenNotFound = errors.New("get_available_slots: kindergarten not found")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
