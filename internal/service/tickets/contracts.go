package tickets

import (
	"context"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// TicketRepository loads ticket products.
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListByKindergarten(ctx context.Context, kindergartenID int64) ([]*domain.Ticket, error)
}

// CustomerRepository scopes customers to their kindergarten.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// CustomerTicketRepository persists purchased tickets and their audit trail.
type CustomerTicketRepository interface {
	Create(ctx context.Context, ct *domain.CustomerTicket) (*domain.CustomerTicket, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.CustomerTicket, error)
	CreateRegistrationLog(ctx context.Context, log *domain.CustomerTicketRegistrationLog) error
}

// TransactionManager groups multi-row writes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service.
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
