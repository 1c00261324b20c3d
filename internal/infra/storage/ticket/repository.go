package ticket

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

var ticketColumns = []string{
	"id",
	"kindergarten_id",
	"ticket_type",
	"usage_time_hours",
	"usage_count",
	"usage_period_days",
	"price",
	"is_deleted",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository reads the kindergarten's ticket catalog.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a ticket repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a non-deleted ticket.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ticketColumns...).
		From("tickets").
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTicket(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan ticket: %v", ErrScanRow, err)
	}

	return t, nil
}

// ListByKindergarten fetches the kindergarten's non-deleted tickets.
func (r *Repository) ListByKindergarten(ctx context.Context, kindergartenID int64) ([]*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ticketColumns...).
		From("tickets").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID, "is_deleted": false}).
		OrderBy("ticket_type ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByKindergarten - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByKindergarten - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByKindergarten - scan row: %v", ErrScanRow, err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByKindergarten - rows error: %v", ErrScanRow, err)
	}

	return tickets, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.KindergartenID,
		&t.TicketType,
		&t.UsageTimeHours,
		&t.UsageCount,
		&t.UsagePeriodDays,
		&t.Price,
		&t.IsDeleted,
		&t.DeletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
