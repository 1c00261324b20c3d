package create_reservation

import (
	"context"
	"time"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
)

// KindergartenRepository loads the tenant's configuration.
type KindergartenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kindergarten, error)
}

// CustomerRepository loads the customer together with their pets.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// TicketRepository loads ticket products.
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

// CustomerTicketRepository selects and consumes customer ticket balances.
type CustomerTicketRepository interface {
	ListUsable(ctx context.Context, filter customerticket.UsableTicketsFilter) ([]*domain.CustomerTicket, error)
	ConsumeUnits(ctx context.Context, id int64, expectedVersion int64, units int) error
	CreateUsageLog(ctx context.Context, log *domain.CustomerTicketUsageLog) error
}

// ReservationRepository persists reservation rows.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ExistsActiveOnDate(ctx context.Context, petID int64, date time.Time) (bool, error)
}

// DailyReservationRepository maintains per-date aggregate counters.
type DailyReservationRepository interface {
	IncrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType, limit int) error
}

// AvailabilityCalculator computes the bookable date set.
type AvailabilityCalculator interface {
	AvailableDates(ctx context.Context, q availability.Query) ([]time.Time, error)
}

// EventPublisher emits post-commit notification events. Publish failures must
// never fail the reservation.
type EventPublisher interface {
	PublishTicketLowBalance(ctx context.Context, customerID, customerTicketID int64, remainingCount int) error
}

// TransactionManager runs the admission sequence atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
