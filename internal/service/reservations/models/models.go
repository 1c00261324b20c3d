package models

import (
	"errors"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// ErrInvalidStatus is returned for an unknown reservation status filter.
var ErrInvalidStatus = errors.New("invalid reservation status")

// Request models

// ListReservationsRequest filters a customer's reservation history.
type ListReservationsRequest struct {
	CustomerID      int64      `json:"customerId"`
	Status          *string    `json:"status,omitempty"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	IncludeCanceled bool       `json:"includeCanceled,omitempty"`
}

// ToDomainFilter converts the request into a repository filter. Hotel chains
// collapse to their root night so a stay lists once.
func (r *ListReservationsRequest) ToDomainFilter() (domain.CustomerReservationsFilter, error) {
	filter := domain.CustomerReservationsFilter{
		CustomerID:      r.CustomerID,
		From:            r.From,
		To:              r.To,
		IncludeCanceled: r.IncludeCanceled,
		RootsOnly:       true,
	}

	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		switch status {
		case domain.StatusCompleted, domain.StatusCanceled, domain.StatusModified:
			filter.Status = &status
		default:
			return filter, ErrInvalidStatus
		}
	}

	return filter, nil
}

// Response models

// ReservationResponse is one reservation. Hotel stays report the root night
// with the stay's checkout as EndAt and the chain rows in Nights.
type ReservationResponse struct {
	ID             int64             `json:"id"`
	PetID          int64             `json:"petId"`
	TicketType     string            `json:"ticketType"`
	Status         string            `json:"status"`
	ReservedAt     string            `json:"reservedAt"` // "2026-09-01"
	EndAt          string            `json:"endAt"`
	AttendanceTime *string           `json:"attendanceTime,omitempty"` // "13:00"
	IsAttended     *bool             `json:"isAttended,omitempty"`
	Nights         []NightResponse   `json:"nights,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NightResponse is one night of a hotel chain.
type NightResponse struct {
	ID         int64  `json:"id"`
	ReservedAt string `json:"reservedAt"`
	Status     string `json:"status"`
	Depth      int    `json:"depth"`
}

// ReservationListResponse is a customer's reservation history.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation converts a reservation row. endAt overrides the
// row's own end date when the caller resolved the stay checkout.
func FromDomainReservation(res *domain.Reservation, endAt *time.Time) ReservationResponse {
	end := res.EndAt
	if endAt != nil {
		end = *endAt
	}

	resp := ReservationResponse{
		ID:         res.ID,
		PetID:      res.PetID,
		TicketType: string(res.TicketType),
		Status:     string(res.Status),
		ReservedAt: res.ReservedAt.Format(domain.DateFormat),
		EndAt:      end.Format(domain.DateFormat),
		IsAttended: res.IsAttended,
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	}

	if res.AttendanceTime != nil {
		s := res.AttendanceTime.String()
		resp.AttendanceTime = &s
	}

	return resp
}
