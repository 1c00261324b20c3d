package availability

import (
	"context"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// DailyReservationRepository supplies capacity-full dates.
type DailyReservationRepository interface {
	ListFullDates(ctx context.Context, kindergartenID int64, ticketType domain.TicketType, from, to time.Time, limit int) ([]time.Time, error)
}

// DayOffSource supplies the kindergarten's blocked dates.
type DayOffSource interface {
	ListDayOffDates(ctx context.Context, kindergartenID int64, from, to time.Time) ([]time.Time, error)
}

// HolidaySource supplies the shared holiday calendar (possibly via cache).
type HolidaySource interface {
	ListHolidayDates(ctx context.Context, from, to time.Time) ([]time.Time, error)
}
