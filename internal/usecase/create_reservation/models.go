package create_reservation

import (
	"time"

	"github.com/jw-park/petkinder-backend/pkg/types"
)

// Request describes a reservation attempt.
type Request struct {
	KindergartenID int64
	CustomerID     int64
	PetID          int64
	// TicketID names the ticket product; the use case picks the customer's
	// matching purchased tickets itself, earliest expiry first.
	TicketID   int64
	ReservedAt time.Time
	// EndAt is the checkout date, required for hotel stays only.
	EndAt *time.Time
	// AttendanceTime is the drop-off slot, required for time tickets only.
	AttendanceTime *types.TimeString
}

// Response is the created reservation (the root row for hotel stays).
type Response struct {
	ID             int64
	KindergartenID int64
	CustomerID     int64
	PetID          int64
	TicketType     string
	Status         string
	ReservedAt     time.Time
	EndAt          time.Time
	AttendanceTime *types.TimeString
	// ReservationIDs lists every created row, root first. Single-element for
	// non-hotel reservations.
	ReservationIDs []int64
	Nights         int
	Tickets        []ConsumedTicket
	CreatedAt      time.Time
}

// ConsumedTicket reports one customer ticket's share of the reservation.
type ConsumedTicket struct {
	CustomerTicketID int64
	UsedCount        int
	RemainingCount   int
}
