package create_reservation

import (
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
	createReservation "github.com/jw-park/petkinder-backend/internal/usecase/create_reservation"
	"github.com/jw-park/petkinder-backend/pkg/types"
)

// CreateReservationRequest is the HTTP request model.
type CreateReservationRequest struct {
	CustomerID     int64   `json:"customerId"`
	PetID          int64   `json:"petId"`
	TicketID       int64   `json:"ticketId"`
	ReservedAt     string  `json:"reservedAt"`               // "2026-09-15"
	EndAt          *string `json:"endAt,omitempty"`          // hotel checkout
	AttendanceTime *string `json:"attendanceTime,omitempty"` // "13:00"
}

// ToUseCaseRequest parses the date and time fields.
func (r *CreateReservationRequest) ToUseCaseRequest(kindergartenID int64) (*createReservation.Request, error) {
	reservedAt, err := time.Parse(domain.DateFormat, r.ReservedAt)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		KindergartenID: kindergartenID,
		CustomerID:     r.CustomerID,
		PetID:          r.PetID,
		TicketID:       r.TicketID,
		ReservedAt:     reservedAt,
	}

	if r.EndAt != nil {
		endAt, err := time.Parse(domain.DateFormat, *r.EndAt)
		if err != nil {
			return nil, err
		}
		req.EndAt = &endAt
	}

	if r.AttendanceTime != nil {
		attendance, err := types.NewTimeStringFromString(*r.AttendanceTime)
		if err != nil {
			return nil, err
		}
		req.AttendanceTime = &attendance
	}

	return req, nil
}

// CreateReservationResponse is the HTTP response model.
type CreateReservationResponse struct {
	ID             int64                    `json:"id"`
	CustomerID     int64                    `json:"customerId"`
	PetID          int64                    `json:"petId"`
	TicketType     string                   `json:"ticketType"`
	Status         string                   `json:"status"`
	ReservedAt     string                   `json:"reservedAt"`
	EndAt          string                   `json:"endAt"`
	AttendanceTime *string                  `json:"attendanceTime,omitempty"`
	ReservationIDs []int64                  `json:"reservationIds"`
	Nights         int                      `json:"nights,omitempty"`
	Tickets        []ConsumedTicketResponse `json:"tickets"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// ConsumedTicketResponse is one consumed ticket's share.
type ConsumedTicketResponse struct {
	CustomerTicketID int64 `json:"customerTicketId"`
	UsedCount        int   `json:"usedCount"`
	RemainingCount   int   `json:"remainingCount"`
}

// FromUseCaseResponse converts the use case response.
func FromUseCaseResponse(res *createReservation.Response) *CreateReservationResponse {
	resp := &CreateReservationResponse{
		ID:             res.ID,
		CustomerID:     res.CustomerID,
		PetID:          res.PetID,
		TicketType:     res.TicketType,
		Status:         res.Status,
		ReservedAt:     res.ReservedAt.Format(domain.DateFormat),
		EndAt:          res.EndAt.Format(domain.DateFormat),
		ReservationIDs: res.ReservationIDs,
		Nights:         res.Nights,
		CreatedAt:      res.CreatedAt,
	}

	if res.AttendanceTime != nil {
		s := res.AttendanceTime.String()
		resp.AttendanceTime = &s
	}

	resp.Tickets = make([]ConsumedTicketResponse, len(res.Tickets))
	for i, t := range res.Tickets {
		resp.Tickets[i] = ConsumedTicketResponse{
			CustomerTicketID: t.CustomerTicketID,
			UsedCount:        t.UsedCount,
			RemainingCount:   t.RemainingCount,
		}
	}

	return resp
}
