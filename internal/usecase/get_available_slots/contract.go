package get_available_slots

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// KindergartenRepository loads the tenant's business hours.
type KindergartenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kindergarten, error)
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
