package customerticket

import "errors"

var (
	// ErrCustomerTicketNotFound is returned when no customer ticket matches.
	ErrCustomerTicketNotFound = errors.New("customerticket.repository: customer ticket not found")

	// ErrVersionConflict is returned when a balance mutation loses the
	// optimistic-concurrency race: the row's version no longer matches the
	// expected one, or the balance no longer covers the requested units.
	// Callers must abort the surrounding transaction and may retry it whole.
	ErrVersionConflict = errors.New("customerticket.repository: ticket balance version conflict")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("customerticket.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("customerticket.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("customerticket.repository: failed to scan row")
)
