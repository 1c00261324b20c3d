package get_customer_reservations

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/reservations/models"
)

type ReservationService interface {
	ListByCustomer(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
