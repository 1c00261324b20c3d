package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketType is the closed set of purchasable package kinds.
type TicketType string

const (
	// TicketTypeTime is a fixed-duration daycare slot (parameterized by
	// UsageTimeHours, e.g. a 2-hour ticket).
	TicketTypeTime TicketType = "time"
	// TicketTypeAllDay covers a whole business day.
	TicketTypeAllDay TicketType = "all_day"
	// TicketTypeHotel covers overnight stays; one unit per night.
	TicketTypeHotel TicketType = "hotel"
)

// Valid reports whether t is one of the known ticket types.
func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeTime, TicketTypeAllDay, TicketTypeHotel:
		return true
	}
	return false
}

// Ticket is a purchasable product owned by a kindergarten.
type Ticket struct {
	ID             int64
	KindergartenID int64
	TicketType     TicketType
	// UsageTimeHours is set only for time-type tickets and names the slot
	// duration in hours.
	UsageTimeHours *int
	// UsageCount is the number of units a purchase grants.
	UsageCount int
	// UsagePeriodDays is the validity period; expiry is registration time
	// plus this many days.
	UsagePeriodDays int
	Price           decimal.Decimal
	IsDeleted       bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MatchesUsageTime returns true if the ticket is a time ticket of the given
// duration.
func (t *Ticket) MatchesUsageTime(hours int) bool {
	return t.TicketType == TicketTypeTime && t.UsageTimeHours != nil && *t.UsageTimeHours == hours
}
