package delete_day_off

import "context"

type DayOffService interface {
	Delete(ctx context.Context, kindergartenID, dayOffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
