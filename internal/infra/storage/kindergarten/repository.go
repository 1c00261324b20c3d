package kindergarten

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/psqlbuilder"
)

// Repository reads kindergarten (tenant) settings.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a kindergarten repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches one kindergarten.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Kindergarten, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"business_start_time",
		"business_end_time",
		"daily_pet_limit",
		"reservation_availability_option",
		"created_at",
		"updated_at",
	).
		From("kindergartens").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var k domain.Kindergarten
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&k.ID,
		&k.Name,
		&k.BusinessStartTime,
		&k.BusinessEndTime,
		&k.DailyPetLimit,
		&k.ReservationAvailabilityOption,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKindergartenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan kindergarten: %v", ErrScanRow, err)
	}

	k.CreatedAt = createdAt.Time
	k.UpdatedAt = updatedAt.Time

	return &k, nil
}
