package calendar

import "errors"

var (
	// ErrDayOffNotFound is returned when no day-off matches.
	ErrDayOffNotFound = errors.New("calendar.repository: day off not found")

	// ErrDuplicateDayOff is returned when the kindergarten already has a
	// day-off on the date.
	ErrDuplicateDayOff = errors.New("calendar.repository: duplicate day off")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
