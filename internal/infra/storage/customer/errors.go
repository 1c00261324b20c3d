package customer

import "errors"

var (
	// ErrCustomerNotFound is returned when no customer matches.
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")

	// ErrPetNotFound is returned when no pet matches.
	ErrPetNotFound = errors.New("customer.repository: pet not found")

	// ErrDuplicatePhoneNumber is returned when the kindergarten already has a
	// customer with the same phone number.
	ErrDuplicatePhoneNumber = errors.New("customer.repository: duplicate phone number")

	// ErrDuplicatePetName is returned when the customer already has a
	// non-deleted pet with the same name.
	ErrDuplicatePetName = errors.New("customer.repository: duplicate pet name")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("customer.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)
