package domain

import "time"

// DailyReservation is the per-kindergarten per-date aggregate used to enforce
// the daily pet cap without scanning individual reservations. The row is
// written in the same transaction as its reservations and acts as the
// serialization point for concurrent capacity checks.
type DailyReservation struct {
	ID             int64
	KindergartenID int64
	ReservedDate   time.Time
	TotalPetCount  int
	TimePetCount   int
	AllDayPetCount int
	HotelPetCount  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CountForType returns the aggregate counter for one ticket type.
func (d *DailyReservation) CountForType(t TicketType) int {
	switch t {
	case TicketTypeTime:
		return d.TimePetCount
	case TicketTypeAllDay:
		return d.AllDayPetCount
	case TicketTypeHotel:
		return d.HotelPetCount
	default:
		return 0
	}
}

// AtCapacity reports whether the total counter has reached limit.
// An unlimited limit never reports capacity.
func (d *DailyReservation) AtCapacity(limit int) bool {
	if limit == UnlimitedDailyPetLimit {
		return false
	}
	return d.TotalPetCount >= limit
}
