package get_available_dates

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

// TicketRepository loads ticket products.
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

// CustomerTicketRepository selects the customer's usable tickets.
type CustomerTicketRepository interface {
	ListUsable(ctx context.Context, filter customerticket.UsableTicketsFilter) ([]*domain.CustomerTicket, error)
}

// AvailabilityCalculator computes the bookable date set.
type AvailabilityCalculator interface {
	AvailableDates(ctx context.Context, q availability.Query) ([]time.Time, error)
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
