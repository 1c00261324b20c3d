package customerticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/psqlbuilder"
)

// Repository persists customer tickets, their balances and audit logs.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a customer-ticket repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a freshly registered customer ticket with a full balance.
func (r *Repository) Create(ctx context.Context, ct *domain.CustomerTicket) (*domain.CustomerTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_tickets").
		Columns(
			"customer_id",
			"ticket_id",
			"total_count",
			"used_count",
			"unused_count",
			"expires_at",
			"version",
		).
		Values(
			ct.CustomerID,
			ct.TicketID,
			ct.TotalCount,
			ct.UsedCount,
			ct.UnusedCount,
			ct.ExpiresAt,
			0,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ct.ID,
		&ct.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	ct.CreatedAt = createdAt.Time
	ct.UpdatedAt = updatedAt.Time

	return ct, nil
}

// GetByID fetches one customer ticket joined with its product definition.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CustomerTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithTicket().
		Where(squirrel.Eq{"ct.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	ct, err := scanCustomerTicket(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer ticket: %v", ErrScanRow, err)
	}

	return ct, nil
}

// ListUsable returns the customer's unexpired tickets with remaining balance,
// earliest-expiring first. The hotel strategy relies on this order when a
// multi-night stay spans several tickets.
func (r *Repository) ListUsable(ctx context.Context, filter UsableTicketsFilter) ([]*domain.CustomerTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectWithTicket().
		Where(squirrel.Eq{"ct.customer_id": filter.CustomerID}).
		Where(squirrel.Gt{"ct.unused_count": 0}).
		Where(squirrel.Gt{"ct.expires_at": filter.At}).
		OrderBy("ct.expires_at ASC, ct.id ASC")

	if filter.TicketType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"t.ticket_type": *filter.TicketType})
	}
	if filter.UsageTimeHours != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"t.usage_time_hours": *filter.UsageTimeHours})
	}

	// Inside the reservation transaction the rows are locked so two
	// concurrent requests cannot pick the same remaining unit unchecked.
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ct")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCustomerTickets(rows)
}

// ListByCustomer returns every customer ticket, joined with its product.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.CustomerTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithTicket().
		Where(squirrel.Eq{"ct.customer_id": customerID}).
		OrderBy("ct.expires_at ASC, ct.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCustomerTickets(rows)
}

// ConsumeUnits moves units from unused to used under the optimistic version
// check. The single conditional UPDATE is the compare-and-swap: if another
// transaction already bumped the version, or the remaining balance no longer
// covers the request, zero rows match and ErrVersionConflict is returned.
func (r *Repository) ConsumeUnits(ctx context.Context, id int64, expectedVersion int64, units int) error {
	return r.adjustBalance(ctx, "ConsumeUnits", id, expectedVersion, units)
}

// RefundUnits moves units back from used to unused (reservation cancellation),
// under the same version check as ConsumeUnits.
func (r *Repository) RefundUnits(ctx context.Context, id int64, expectedVersion int64, units int) error {
	return r.adjustBalance(ctx, "RefundUnits", id, expectedVersion, -units)
}

func (r *Repository) adjustBalance(ctx context.Context, op string, id int64, expectedVersion int64, units int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customer_tickets").
		Set("used_count", squirrel.Expr("used_count + ?", units)).
		Set("unused_count", squirrel.Expr("unused_count - ?", units)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Where(squirrel.Expr("unused_count - ? >= 0", units)).
		Where(squirrel.Expr("used_count + ? >= 0", units)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// CreateUsageLog appends one (customer ticket, reservation) usage record.
func (r *Repository) CreateUsageLog(ctx context.Context, log *domain.CustomerTicketUsageLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("customer_ticket_usage_logs").
		Columns("id", "customer_ticket_id", "reservation_id", "used_count").
		Values(log.ID, log.CustomerTicketID, log.ReservationID, log.UsedCount).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateUsageLog - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateUsageLog - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListUsageLogsByReservation returns the usage rows a reservation produced.
// Cancellation walks these to refund the right tickets.
func (r *Repository) ListUsageLogsByReservation(ctx context.Context, reservationID int64) ([]*domain.CustomerTicketUsageLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_ticket_id",
		"reservation_id",
		"used_count",
		"created_at",
	).
		From("customer_ticket_usage_logs").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUsageLogsByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsageLogsByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.CustomerTicketUsageLog, 0)
	for rows.Next() {
		var log domain.CustomerTicketUsageLog
		var createdAt sql.NullTime

		err := rows.Scan(
			&log.ID,
			&log.CustomerTicketID,
			&log.ReservationID,
			&log.UsedCount,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListUsageLogsByReservation - scan row: %v", ErrScanRow, err)
		}

		log.CreatedAt = createdAt.Time
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUsageLogsByReservation - rows error: %v", ErrScanRow, err)
	}

	return logs, nil
}

// CreateRegistrationLog appends one ticket registration record.
func (r *Repository) CreateRegistrationLog(ctx context.Context, log *domain.CustomerTicketRegistrationLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("customer_ticket_registration_logs").
		Columns("id", "customer_ticket_id", "registered_count").
		Values(log.ID, log.CustomerTicketID, log.RegisteredCount).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateRegistrationLog - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateRegistrationLog - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func selectWithTicket() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"ct.id",
		"ct.customer_id",
		"ct.ticket_id",
		"ct.total_count",
		"ct.used_count",
		"ct.unused_count",
		"ct.expires_at",
		"ct.version",
		"ct.created_at",
		"ct.updated_at",
		"t.id",
		"t.kindergarten_id",
		"t.ticket_type",
		"t.usage_time_hours",
		"t.usage_count",
		"t.usage_period_days",
		"t.price",
	).
		From("customer_tickets ct").
		Join("tickets t ON t.id = ct.ticket_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomerTicket(row rowScanner) (*domain.CustomerTicket, error) {
	var ct domain.CustomerTicket
	var t domain.Ticket
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&ct.ID,
		&ct.CustomerID,
		&ct.TicketID,
		&ct.TotalCount,
		&ct.UsedCount,
		&ct.UnusedCount,
		&ct.ExpiresAt,
		&ct.Version,
		&createdAt,
		&updatedAt,
		&t.ID,
		&t.KindergartenID,
		&t.TicketType,
		&t.UsageTimeHours,
		&t.UsageCount,
		&t.UsagePeriodDays,
		&t.Price,
	)
	if err != nil {
		return nil, err
	}

	ct.CreatedAt = createdAt.Time
	ct.UpdatedAt = updatedAt.Time
	ct.Ticket = &t

	return &ct, nil
}

func scanCustomerTickets(rows *sql.Rows) ([]*domain.CustomerTicket, error) {
	tickets := make([]*domain.CustomerTicket, 0)

	for rows.Next() {
		ct, err := scanCustomerTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCustomerTickets - scan row: %v", ErrScanRow, err)
		}
		tickets = append(tickets, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCustomerTickets - rows error: %v", ErrScanRow, err)
	}

	return tickets, nil
}
