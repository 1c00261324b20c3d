package create_day_off

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/service/dayoffs/models"
)

type DayOffService interface {
	Create(ctx context.Context, kindergartenID int64, req *models.CreateDayOffRequest) (*models.DayOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
