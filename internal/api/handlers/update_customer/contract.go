package update_customer

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

type CustomerService interface {
	Update(ctx context.Context, kindergartenID, customerID int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
