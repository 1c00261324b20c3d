package customers

import "errors"

var (
	// ErrCustomerNotFound is returned when the customer does not exist in the
	// kindergarten.
	ErrCustomerNotFound = errors.New("customers.service: customer not found")

	// ErrPetNotFound is returned when the pet is not one of the customer's
	// active pets.
	ErrPetNotFound = errors.New("customers.service: pet not found")

	// ErrDuplicatePhoneNumber is returned when the kindergarten already has a
	// customer with the phone number.
	ErrDuplicatePhoneNumber = errors.New("customers.service: duplicate phone number")

	// ErrDuplicatePetName is returned when the customer already has an active
	// pet with the name.
	ErrDuplicatePetName = errors.New("customers.service: duplicate pet name")

	// ErrInvalidInput is returned when the request itself is malformed.
	ErrInvalidInput = errors.New("customers.service: invalid input data")

	// ErrEmptyImport is returned when the CSV file holds no data rows.
	ErrEmptyImport = errors.New("customers.service: import file has no rows")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("customers.service: internal error")
)
