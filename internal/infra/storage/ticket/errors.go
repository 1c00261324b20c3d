package ticket

import "errors"

var (
	// ErrTicketNotFound is returned when no ticket matches (or it is deleted).
	ErrTicketNotFound = errors.New("ticket.repository: ticket not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("ticket.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("ticket.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("ticket.repository: failed to scan row")
)
