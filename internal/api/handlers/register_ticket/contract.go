package register_ticket

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/tickets/models"
)

type TicketService interface {
	Register(ctx context.Context, kindergartenID, customerID int64, req *models.RegisterTicketRequest) (*models.CustomerTicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
