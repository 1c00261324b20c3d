package import_customers

import (
	"context"
	"io"

	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

type CustomerService interface {
	ImportCSV(ctx context.Context, kindergartenID int64, r io.Reader) (*models.ImportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
