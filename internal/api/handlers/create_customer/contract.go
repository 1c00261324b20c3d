package create_customer

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

type CustomerService interface {
	Create(ctx context.Context, kindergartenID int64, req *models.CreateCustomerRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
