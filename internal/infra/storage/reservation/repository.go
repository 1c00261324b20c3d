package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"kindergarten_id",
	"customer_id",
	"pet_id",
	"customer_ticket_id",
	"ticket_type",
	"status",
	"reserved_at",
	"end_at",
	"attendance_time",
	"is_attended",
	"parent_id",
	"depth",
	"created_at",
	"updated_at",
}

// Repository persists reservations, including the parent/child chains that
// represent multi-night hotel stays.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts one reservation row.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"kindergarten_id",
			"customer_id",
			"pet_id",
			"customer_ticket_id",
			"ticket_type",
			"status",
			"reserved_at",
			"end_at",
			"attendance_time",
			"is_attended",
			"parent_id",
			"depth",
		).
		Values(
			res.KindergartenID,
			res.CustomerID,
			res.PetID,
			res.CustomerTicketID,
			res.TicketType,
			res.Status,
			res.ReservedAt,
			res.EndAt,
			res.AttendanceTime,
			res.IsAttended,
			res.ParentID,
			res.Depth,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID fetches one reservation.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ExistsActiveOnDate reports whether the pet already has a non-canceled
// reservation on the given calendar date. Used by the duplicate-day check.
func (r *Repository) ExistsActiveOnDate(ctx context.Context, petID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"pet_id": petID, "reserved_at": dateOnly(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCanceled}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOnDate - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListByCustomerWithFilter fetches a customer's reservations.
func (r *Repository) ListByCustomerWithFilter(ctx context.Context, filter domain.CustomerReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": filter.CustomerID}).
		OrderBy("reserved_at DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCanceled})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reserved_at": dateOnly(*filter.From)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reserved_at": dateOnly(*filter.To)})
	}
	if filter.RootsOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"depth": 0})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CancelByIDs marks the given reservations canceled.
func (r *Repository) CancelByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCanceled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByIDs - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelByIDs - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelByIDs - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime
	var attendanceTime sql.NullString

	err := row.Scan(
		&res.ID,
		&res.KindergartenID,
		&res.CustomerID,
		&res.PetID,
		&res.CustomerTicketID,
		&res.TicketType,
		&res.Status,
		&res.ReservedAt,
		&res.EndAt,
		&attendanceTime,
		&res.IsAttended,
		&res.ParentID,
		&res.Depth,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if attendanceTime.Valid {
		ts := domainTime(attendanceTime.String)
		res.AttendanceTime = &ts
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
