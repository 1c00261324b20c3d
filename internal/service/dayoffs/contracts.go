package dayoffs

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// CalendarRepository persists kindergarten day-offs.
type CalendarRepository interface {
	CreateDayOff(ctx context.Context, dayOff *domain.DayOff) (*domain.DayOff, error)
	GetDayOffByID(ctx context.Context, id int64) (*domain.DayOff, error)
	DeleteDayOff(ctx context.Context, dayOff *domain.DayOff) error
}

// TransactionManager groups the audit snapshot with the delete.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
