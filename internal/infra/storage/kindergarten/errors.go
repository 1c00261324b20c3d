package kindergarten

import "errors"

var (
	// ErrKindergartenNotFound is returned when no kindergarten matches.
	ErrKindergartenNotFound = errors.New("kindergarten.repository: kindergarten not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("kindergarten.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("kindergarten.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("kindergarten.repository: failed to scan row")
)
