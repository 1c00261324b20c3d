package get_customer_tickets

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/tickets/models"
)

type TicketService interface {
	ListBalances(ctx context.Context, kindergartenID, customerID int64) (*models.CustomerTicketsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
