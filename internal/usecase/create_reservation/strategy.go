package create_reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
)

// reservationStrategy encapsulates the per-ticket-type admission rules.
// validate runs before the transaction against a consistent-enough snapshot;
// plan runs inside the serializable transaction against tickets re-read with
// a row lock, and decides which rows to create and which balances to consume.
type reservationStrategy interface {
	validate(ctx context.Context, st *admissionState) error
	plan(st *admissionState) (*admissionPlan, error)
}

// admissionState carries the request context through validation and planning.
type admissionState struct {
	req          *Request
	now          time.Time
	kindergarten *domain.Kindergarten
	ticket       *domain.Ticket
	// tickets holds the customer's usable tickets for the requested product
	// type, ordered by expiry. Refreshed under lock before planning.
	tickets []*domain.CustomerTicket
}

// admissionPlan is the outcome of planning: the rows to insert (root first,
// children chained in order), the balances to consume, and the dates whose
// aggregate counters must be incremented.
type admissionPlan struct {
	rows        []*domain.Reservation
	consumption []ticketConsumption
	dates       []time.Time
}

// ticketConsumption maps one customer ticket to the plan rows it covers.
type ticketConsumption struct {
	ticket   *domain.CustomerTicket
	units    int
	rowIndex []int
}

func strategyFor(uc *UseCase, ticketType domain.TicketType) (reservationStrategy, error) {
	switch ticketType {
	case domain.TicketTypeTime:
		return &timeStrategy{uc: uc}, nil
	case domain.TicketTypeAllDay:
		return &allDayStrategy{uc: uc}, nil
	case domain.TicketTypeHotel:
		return &hotelStrategy{uc: uc}, nil
	default:
		return nil, fmt.Errorf("%w: unknown ticket type %q", ErrInvalidInput, ticketType)
	}
}

// latestExpiry returns the furthest expiry among the usable tickets. The
// bookable range ends there: a date past every ticket's expiry can never be
// admitted.
func latestExpiry(tickets []*domain.CustomerTicket) time.Time {
	var latest time.Time
	for _, t := range tickets {
		if t.ExpiresAt.After(latest) {
			latest = t.ExpiresAt
		}
	}
	return latest
}

// checkDateAvailable verifies the requested date against the shared
// availability set for the ticket type.
func (uc *UseCase) checkDateAvailable(ctx context.Context, st *admissionState, date time.Time) error {
	dates, err := uc.availability.AvailableDates(ctx, availability.Query{
		Kindergarten: st.kindergarten,
		TicketType:   st.ticket.TicketType,
		From:         st.now,
		Until:        latestExpiry(st.tickets),
	})
	if err != nil {
		return fmt.Errorf("%w: compute available dates: %v", ErrInternal, err)
	}

	if !availability.Contains(dates, date) {
		return ErrInvalidReservedAt
	}

	return nil
}

// checkNoActiveReservation rejects a second active reservation for the same
// pet on the same date.
func (uc *UseCase) checkNoActiveReservation(ctx context.Context, petID int64, date time.Time) error {
	exists, err := uc.reservationRepo.ExistsActiveOnDate(ctx, petID, date)
	if err != nil {
		return fmt.Errorf("%w: check existing reservation: %v", ErrInternal, err)
	}
	if exists {
		return ErrAlreadyReserved
	}
	return nil
}

// singleRowPlan builds the plan shared by time and all-day admissions: one
// reservation row consuming one unit of the earliest-expiring usable ticket.
// row arrives with only the strategy-specific fields set.
func singleRowPlan(st *admissionState, row *domain.Reservation) (*admissionPlan, error) {
	if len(st.tickets) == 0 {
		return nil, ErrNoUsableTicket
	}

	ticket := st.tickets[0]
	row.KindergartenID = st.kindergarten.ID
	row.CustomerID = st.req.CustomerID
	row.PetID = st.req.PetID
	row.CustomerTicketID = ticket.ID
	row.TicketType = st.ticket.TicketType
	row.Status = domain.StatusCompleted
	row.ReservedAt = availability.DateOnly(st.req.ReservedAt)
	row.EndAt = availability.DateOnly(st.req.ReservedAt)

	return &admissionPlan{
		rows: []*domain.Reservation{row},
		consumption: []ticketConsumption{
			{ticket: ticket, units: 1, rowIndex: []int{0}},
		},
		dates: []time.Time{row.ReservedAt},
	}, nil
}
