package reservation

import "github.com/jw-park/petkinder-backend/pkg/dbmetrics"

// DBExecutor is the query surface this repository needs.
type DBExecutor = dbmetrics.DBExecutor
