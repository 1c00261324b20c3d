package list_tickets

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/tickets/models"
)

type TicketService interface {
	ListProducts(ctx context.Context, kindergartenID int64) ([]models.TicketProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
