// Package availability computes which dates and time slots a kindergarten
// can accept. Both the calendar read endpoints and the reservation
// admission checks go through this package, so the two can never disagree.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// Query describes one available-dates computation.
type Query struct {
	Kindergarten *domain.Kindergarten
	TicketType   domain.TicketType
	// From is the walk origin, normally the current time. Its date is the
	// first candidate.
	From time.Time
	// Until is the last candidate date, normally the ticket's expiry.
	Until time.Time
}

// Calculator derives bookable dates from the calendar and capacity state.
type Calculator struct {
	dailyRepo DailyReservationRepository
	dayOffs   DayOffSource
	holidays  HolidaySource
}

// NewCalculator creates an availability calculator.
func NewCalculator(dailyRepo DailyReservationRepository, dayOffs DayOffSource, holidays HolidaySource) *Calculator {
	return &Calculator{dailyRepo: dailyRepo, dayOffs: dayOffs, holidays: holidays}
}

// AvailableDates returns the sorted dates in [From, Until] on which a
// reservation of the query's ticket type may be created:
//
//  1. every calendar date of the range is a candidate;
//  2. the kindergarten's day-offs and the shared calendar's holidays are
//     subtracted;
//  3. dates whose per-type aggregate counter has reached the daily pet limit
//     are subtracted (an unlimited kindergarten skips this step);
//  4. the origin date itself is subtracted when the kindergarten does not
//     accept same-day reservations.
func (c *Calculator) AvailableDates(ctx context.Context, q Query) ([]time.Time, error) {
	start := DateOnly(q.From)
	end := DateOnly(q.Until)
	if end.Before(start) {
		return []time.Time{}, nil
	}

	blocked := make(map[time.Time]struct{})

	dayOffs, err := c.dayOffs.ListDayOffDates(ctx, q.Kindergarten.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("availability: list day offs: %w", err)
	}
	for _, d := range dayOffs {
		blocked[DateOnly(d)] = struct{}{}
	}

	holidays, err := c.holidays.ListHolidayDates(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("availability: list holidays: %w", err)
	}
	for _, d := range holidays {
		blocked[DateOnly(d)] = struct{}{}
	}

	if q.Kindergarten.HasDailyLimit() {
		fullDates, err := c.dailyRepo.ListFullDates(ctx, q.Kindergarten.ID, q.TicketType, start, end, q.Kindergarten.DailyPetLimit)
		if err != nil {
			return nil, fmt.Errorf("availability: list full dates: %w", err)
		}
		for _, d := range fullDates {
			blocked[DateOnly(d)] = struct{}{}
		}
	}

	if !q.Kindergarten.AllowsSameDayReservation() {
		blocked[start] = struct{}{}
	}

	dates := make([]time.Time, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := blocked[d]; !ok {
			dates = append(dates, d)
		}
	}

	return dates, nil
}

// Contains reports whether date is in the available set.
func Contains(dates []time.Time, date time.Time) bool {
	target := DateOnly(date)
	for _, d := range dates {
		if d.Equal(target) {
			return true
		}
	}
	return false
}

// DateOnly truncates t to a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
