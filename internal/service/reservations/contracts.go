package reservations

import (
	"context"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// ReservationRepository reads reservation rows and hotel chains.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDescendants(ctx context.Context, rootID int64) ([]*domain.Reservation, error)
	ListByCustomerWithFilter(ctx context.Context, filter domain.CustomerReservationsFilter) ([]*domain.Reservation, error)
	GetStayEndAts(ctx context.Context, rootIDs []int64) (map[int64]time.Time, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
