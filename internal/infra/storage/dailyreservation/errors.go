package dailyreservation

import "errors"

var (
	// ErrDailyLimitExceeded is returned when an increment would push the
	// total pet count past the kindergarten's daily limit. The conditional
	// upsert re-checks the limit inside the reservation transaction, closing
	// the race window left open by the pre-validation read.
	ErrDailyLimitExceeded = errors.New("dailyreservation.repository: daily pet limit exceeded")

	// ErrAggregateNotFound is returned when decrementing a date that has no
	// aggregate row.
	ErrAggregateNotFound = errors.New("dailyreservation.repository: daily aggregate not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("dailyreservation.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("dailyreservation.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("dailyreservation.repository: failed to scan row")
)
