package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/psqlbuilder"
)

const constraintDayOffDate = "day_offs_kindergarten_date_key"

// Repository persists kindergarten day-offs and reads the shared national
// holiday calendar.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a calendar repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListDayOffDates returns the kindergarten's blocked dates in [from, to].
func (r *Repository) ListDayOffDates(ctx context.Context, kindergartenID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_off_at").
		From("day_offs").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID}).
		Where(squirrel.GtOrEq{"day_off_at": dateOnly(from)}).
		Where(squirrel.LtOrEq{"day_off_at": dateOnly(to)}).
		OrderBy("day_off_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDayOffDates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDates(ctx, executor, "ListDayOffDates", query, args)
}

// ListHolidayDates returns the shared calendar's holiday dates in [from, to].
// Non-holiday special days (commemorations) never block reservations.
func (r *Repository) ListHolidayDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("special_day_at").
		From("korea_special_days").
		Where(squirrel.Eq{"is_holiday": true}).
		Where(squirrel.GtOrEq{"special_day_at": dateOnly(from)}).
		Where(squirrel.LtOrEq{"special_day_at": dateOnly(to)}).
		OrderBy("special_day_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidayDates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDates(ctx, executor, "ListHolidayDates", query, args)
}

// CreateDayOff inserts a blocked date.
func (r *Repository) CreateDayOff(ctx context.Context, dayOff *domain.DayOff) (*domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_offs").
		Columns("kindergarten_id", "day_off_at").
		Values(dayOff.KindergartenID, dateOnly(dayOff.DayOffAt)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDayOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dayOff.ID,
		&createdAt,
		&updatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraintDayOffDate {
		return nil, ErrDuplicateDayOff
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDayOff - execute insert: %v", ErrExecQuery, err)
	}

	dayOff.CreatedAt = createdAt.Time
	dayOff.UpdatedAt = updatedAt.Time

	return dayOff, nil
}

// GetDayOffByID fetches one day-off.
func (r *Repository) GetDayOffByID(ctx context.Context, id int64) (*domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"kindergarten_id",
		"day_off_at",
		"created_at",
		"updated_at",
	).
		From("day_offs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOffByID - build select query: %v", ErrBuildQuery, err)
	}

	var dayOff domain.DayOff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dayOff.ID,
		&dayOff.KindergartenID,
		&dayOff.DayOffAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOffByID - scan day off: %v", ErrScanRow, err)
	}

	dayOff.CreatedAt = createdAt.Time
	dayOff.UpdatedAt = updatedAt.Time

	return &dayOff, nil
}

// DeleteDayOff removes a day-off after writing its pre-delete snapshot to the
// deleted_records audit table. Callers run it inside a transaction so the
// snapshot and the delete commit together.
func (r *Repository) DeleteDayOff(ctx context.Context, dayOff *domain.DayOff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	snapshot, err := json.Marshal(dayOff)
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - marshal snapshot: %v", ErrExecQuery, err)
	}

	auditQuery, auditArgs, err := psqlbuilder.Insert("deleted_records").
		Columns("id", "table_name", "record_id", "snapshot").
		Values(uuid.New(), "day_offs", dayOff.ID, snapshot).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - build audit insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, auditQuery, auditArgs...); err != nil {
		return fmt.Errorf("%w: DeleteDayOff - execute audit insert: %v", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("day_offs").
		Where(squirrel.Eq{"id": dayOff.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDayOffNotFound
	}

	return nil
}

func (r *Repository) queryDates(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]time.Time, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: %s - scan date: %v", ErrScanRow, op, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return dates, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
