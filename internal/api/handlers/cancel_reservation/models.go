package cancel_reservation

import (
	cancelReservation "github.com/jw-park/petkinder-backend/internal/usecase/cancel_reservation"
)

// CancelReservationRequest is the HTTP request model.
type CancelReservationRequest struct {
	CustomerID int64 `json:"customerId"`
}

// RefundedTicketResponse is one refunded ticket.
type RefundedTicketResponse struct {
	CustomerTicketID int64 `json:"customerTicketId"`
	RefundedCount    int   `json:"refundedCount"`
}

// CancelReservationResponse is the HTTP response model.
type CancelReservationResponse struct {
	CanceledIDs     []int64                  `json:"canceledIds"`
	RefundedTickets []RefundedTicketResponse `json:"refundedTickets"`
}

// FromUseCaseResponse converts the use case response.
func FromUseCaseResponse(res *cancelReservation.Response) *CancelReservationResponse {
	refunds := make([]RefundedTicketResponse, len(res.RefundedTickets))
	for i, t := range res.RefundedTickets {
		refunds[i] = RefundedTicketResponse{
			CustomerTicketID: t.CustomerTicketID,
			RefundedCount:    t.RefundedCount,
		}
	}

	return &CancelReservationResponse{
		CanceledIDs:     res.CanceledIDs,
		RefundedTickets: refunds,
	}
}
