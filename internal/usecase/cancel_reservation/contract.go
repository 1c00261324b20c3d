package cancel_reservation

import (
	"context"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// ReservationRepository reads and cancels reservation rows.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDescendants(ctx context.Context, rootID int64) ([]*domain.Reservation, error)
	CancelByIDs(ctx context.Context, ids []int64) error
}

// CustomerTicketRepository refunds consumed balances.
type CustomerTicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CustomerTicket, error)
	RefundUnits(ctx context.Context, id int64, expectedVersion int64, units int) error
	ListUsageLogsByReservation(ctx context.Context, reservationID int64) ([]*domain.CustomerTicketUsageLog, error)
}

// DailyReservationRepository releases aggregate capacity.
type DailyReservationRepository interface {
	DecrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType) error
}

// TransactionManager runs the cancellation atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
