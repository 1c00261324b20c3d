package domain

import (
	"time"

	"github.com/jw-park/petkinder-backend/pkg/types"
)

// ReservationStatus represents the status of a reservation.
type ReservationStatus string

const (
	StatusCompleted ReservationStatus = "completed"
	StatusCanceled  ReservationStatus = "canceled"
	StatusModified  ReservationStatus = "modified"
)

// Reservation is one calendar entry. Hotel stays of N nights are stored as N
// chained rows: the root night at depth 0 and one child per later night,
// linked by ParentID with an incrementing depth. Non-hotel reservations are
// always single rows at depth 0.
type Reservation struct {
	ID               int64
	KindergartenID   int64
	CustomerID       int64
	PetID            int64
	CustomerTicketID int64
	TicketType       TicketType
	Status           ReservationStatus
	// ReservedAt is the calendar date the entry occupies (the night's start
	// date for hotel rows).
	ReservedAt time.Time
	// EndAt is the entry's end date: same day for time/all-day rows, the next
	// morning for hotel rows. The leaf row's EndAt is the stay's checkout.
	EndAt time.Time
	// AttendanceTime is set only for time-type reservations.
	AttendanceTime *types.TimeString
	IsAttended     *bool
	ParentID       *int64
	Depth          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCanceled returns true if the reservation has been canceled.
func (r *Reservation) IsCanceled() bool {
	return r.Status == StatusCanceled
}

// IsRoot returns true for the first row of a chain (and for every non-hotel
// reservation).
func (r *Reservation) IsRoot() bool {
	return r.ParentID == nil && r.Depth == 0
}

// IsHotelStayRoot returns true for the root night of a hotel chain.
func (r *Reservation) IsHotelStayRoot() bool {
	return r.TicketType == TicketTypeHotel && r.IsRoot()
}

// CustomerReservationsFilter narrows reservation list queries.
type CustomerReservationsFilter struct {
	CustomerID      int64
	Status          *ReservationStatus
	From            *time.Time
	To              *time.Time
	IncludeCanceled bool
	// RootsOnly keeps only depth-0 rows so a hotel stay appears once.
	RootsOnly bool
}

// StayNights returns the number of nightly rows a hotel stay spanning
// [start, end) occupies. The checkout date itself holds no row.
func StayNights(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours() / 24)
}
