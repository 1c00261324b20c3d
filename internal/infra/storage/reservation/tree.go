package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/types"
)

// Hotel stays are adjacency-list chains of unbounded length, so both tree
// walks below use recursive CTEs instead of flat scans.

// GetDescendants fetches every row below a chain root, shallowest first. The
// root itself is not included; a childless root yields an empty slice.
func (r *Repository) GetDescendants(ctx context.Context, rootID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		WITH RECURSIVE chain(id) AS (
			SELECT id FROM reservations WHERE parent_id = $1
			UNION ALL
			SELECT res.id FROM reservations res JOIN chain c ON res.parent_id = c.id
		)
		SELECT ` + strings.Join(reservationColumns, ", ") + `
		FROM reservations
		WHERE id IN (SELECT id FROM chain)
		ORDER BY depth`

	rows, err := executor.QueryContext(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDescendants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetStayEndAts returns, per chain root, the checkout time of the stay: the
// latest end_at across the root and its non-canceled descendants. Roots whose
// whole chain is canceled are absent from the result.
func (r *Repository) GetStayEndAts(ctx context.Context, rootIDs []int64) (map[int64]time.Time, error) {
	endAts := make(map[int64]time.Time, len(rootIDs))
	if len(rootIDs) == 0 {
		return endAts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		WITH RECURSIVE chain(root_id, id, end_at, status) AS (
			SELECT id, id, end_at, status FROM reservations WHERE id = ANY($1)
			UNION ALL
			SELECT c.root_id, res.id, res.end_at, res.status
			FROM reservations res JOIN chain c ON res.parent_id = c.id
		)
		SELECT root_id, MAX(end_at)
		FROM chain
		WHERE status <> $2
		GROUP BY root_id`

	rows, err := executor.QueryContext(ctx, query, pq.Array(rootIDs), domain.StatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStayEndAts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rootID int64
		var endAt sql.NullTime
		if err := rows.Scan(&rootID, &endAt); err != nil {
			return nil, fmt.Errorf("%w: GetStayEndAts - scan row: %v", ErrScanRow, err)
		}
		if endAt.Valid {
			endAts[rootID] = endAt.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStayEndAts - rows error: %v", ErrScanRow, err)
	}

	return endAts, nil
}

// domainTime normalizes a TIME column value ("09:00:00") to "HH:MM".
func domainTime(s string) types.TimeString {
	if len(s) >= 5 {
		return types.TimeString(s[:5])
	}
	return types.TimeString(s)
}
