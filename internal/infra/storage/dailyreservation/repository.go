package dailyreservation

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

// incrementQuery bumps the per-date aggregate atomically. The upsert's WHERE
// re-checks the daily limit against the current committed counters, so the
// aggregate row doubles as the serialization point for concurrent capacity
// checks: whichever transaction commits first wins, the other sees no row
// updated and fails before committing.
const incrementQuery = `
INSERT INTO daily_reservations
    (kindergarten_id, reserved_date, total_pet_count, time_pet_count, all_day_pet_count, hotel_pet_count)
VALUES ($1, $2, 1, $3, $4, $5)
ON CONFLICT (kindergarten_id, reserved_date) DO UPDATE SET
    total_pet_count   = daily_reservations.total_pet_count + 1,
    time_pet_count    = daily_reservations.time_pet_count + $3,
    all_day_pet_count = daily_reservations.all_day_pet_count + $4,
    hotel_pet_count   = daily_reservations.hotel_pet_count + $5,
    updated_at        = NOW()
WHERE $6 = -1 OR daily_reservations.total_pet_count < $6
RETURNING total_pet_count`

const decrementQuery = `
UPDATE daily_reservations SET
    total_pet_count   = GREATEST(total_pet_count - 1, 0),
    time_pet_count    = GREATEST(time_pet_count - $3, 0),
    all_day_pet_count = GREATEST(all_day_pet_count - $4, 0),
    hotel_pet_count   = GREATEST(hotel_pet_count - $5, 0),
    updated_at        = NOW()
WHERE kindergarten_id = $1 AND reserved_date = $2`

// Repository maintains the per-kindergarten per-date aggregate counters.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a daily-reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IncrementForDate adds one pet of the given type to the date's aggregate,
// creating the row when absent. It returns ErrDailyLimitExceeded when the
// increment would push total_pet_count past limit (limit -1 is unlimited).
func (r *Repository) IncrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType, limit int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// A zero limit can never admit the row the insert branch would create.
	if limit != domain.UnlimitedDailyPetLimit && limit <= 0 {
		return ErrDailyLimitExceeded
	}

	timeInc, allDayInc, hotelInc := typeIncrements(ticketType)

	var total int
	err := executor.QueryRowContext(ctx, incrementQuery,
		kindergartenID, dateOnly(date), timeInc, allDayInc, hotelInc, limit,
	).Scan(&total)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrDailyLimitExceeded
	}
	if err != nil {
		return fmt.Errorf("%w: IncrementForDate - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DecrementForDate removes one pet of the given type from the date's
// aggregate. Counters never go below zero.
func (r *Repository) DecrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timeInc, allDayInc, hotelInc := typeIncrements(ticketType)

	result, err := executor.ExecContext(ctx, decrementQuery,
		kindergartenID, dateOnly(date), timeInc, allDayInc, hotelInc,
	)
	if err != nil {
		return fmt.Errorf("%w: DecrementForDate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementForDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAggregateNotFound
	}

	return nil
}

// ListFullDates returns the dates in [from, to] whose counter for the given
// ticket type has already reached limit. The availability walk subtracts
// them from the candidate range.
func (r *Repository) ListFullDates(ctx context.Context, kindergartenID int64, ticketType domain.TicketType, from, to time.Time, limit int) ([]time.Time, error) {
	if limit == domain.UnlimitedDailyPetLimit {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reserved_date").
		From("daily_reservations").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID}).
		Where(squirrel.GtOrEq{"reserved_date": dateOnly(from)}).
		Where(squirrel.LtOrEq{"reserved_date": dateOnly(to)}).
		Where(squirrel.GtOrEq{counterColumn(ticketType): limit}).
		OrderBy("reserved_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFullDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFullDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListFullDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFullDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// GetByDate fetches one aggregate row, or nil when the date has no
// reservations yet.
func (r *Repository) GetByDate(ctx context.Context, kindergartenID int64, date time.Time) (*domain.DailyReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"kindergarten_id",
		"reserved_date",
		"total_pet_count",
		"time_pet_count",
		"all_day_pet_count",
		"hotel_pet_count",
		"created_at",
		"updated_at",
	).
		From("daily_reservations").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID, "reserved_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var agg domain.DailyReservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&agg.ID,
		&agg.KindergartenID,
		&agg.ReservedDate,
		&agg.TotalPetCount,
		&agg.TimePetCount,
		&agg.AllDayPetCount,
		&agg.HotelPetCount,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan aggregate: %v", ErrScanRow, err)
	}

	agg.CreatedAt = createdAt.Time
	agg.UpdatedAt = updatedAt.Time

	return &agg, nil
}

func typeIncrements(t domain.TicketType) (timeInc, allDayInc, hotelInc int) {
	switch t {
	case domain.TicketTypeTime:
		return 1, 0, 0
	case domain.TicketTypeAllDay:
		return 0, 1, 0
	case domain.TicketTypeHotel:
		return 0, 0, 1
	default:
		return 0, 0, 0
	}
}

func counterColumn(t domain.TicketType) string {
	switch t {
	case domain.TicketTypeTime:
		return "time_pet_count"
	case domain.TicketTypeAllDay:
		return "all_day_pet_count"
	case domain.TicketTypeHotel:
		return "hotel_pet_count"
	default:
		return "total_pet_count"
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
