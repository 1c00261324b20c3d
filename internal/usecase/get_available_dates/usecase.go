package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
	customerticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	kindergartenRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/kindergarten"
	ticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/ticket"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
)

// UseCase lists the dates a customer can book with a ticket product. It runs
// the same availability computation the reservation admission uses, bounded
// by the customer's furthest usable-ticket expiry.
type UseCase struct {
	kindergartenRepo   KindergartenRepository
	ticketRepo         TicketRepository
	customerTicketRepo CustomerTicketRepository
	availability       AvailabilityCalculator
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	kindergartenRepository KindergartenRepository,
	ticketRepository TicketRepository,
	customerTicketRepository CustomerTicketRepository,
	availabilityCalc AvailabilityCalculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		kindergartenRepo:   kindergartenRepository,
		ticketRepo:         ticketRepository,
		customerTicketRepo: customerTicketRepository,
		availability:       availabilityCalc,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute computes the available dates.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.KindergartenID <= 0 || req.CustomerID <= 0 || req.TicketID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	kindergarten, err := uc.kindergartenRepo.GetByID(ctx, req.KindergartenID)
	if err != nil {
		if errors.Is(err, kindergartenRepo.ErrKindergartenNotFound) {
			return nil, ErrKindergartenNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get kindergarten id=%d: %v", req.KindergartenID, err)
		return nil, fmt.Errorf("%w: failed to get kindergarten: %v", ErrInternal, err)
	}

	ticket, err := uc.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get ticket id=%d: %v", req.TicketID, err)
		return nil, fmt.Errorf("%w: failed to get ticket: %v", ErrInternal, err)
	}

	if ticket.KindergartenID != req.KindergartenID {
		return nil, ErrTicketNotFound
	}

	filter := customerticketRepo.UsableTicketsFilter{
		CustomerID: req.CustomerID,
		TicketType: ptr.Ptr(ticket.TicketType),
		At:         now,
	}
	if ticket.TicketType == domain.TicketTypeTime {
		filter.UsageTimeHours = ticket.UsageTimeHours
	}

	tickets, err := uc.customerTicketRepo.ListUsable(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list usable tickets: %v", err)
		return nil, fmt.Errorf("%w: failed to list usable tickets: %v", ErrInternal, err)
	}

	// Nothing usable means nothing bookable, not an error.
	if len(tickets) == 0 {
		return &Response{TicketID: req.TicketID, Dates: []time.Time{}}, nil
	}

	var until time.Time
	for _, t := range tickets {
		if t.ExpiresAt.After(until) {
			until = t.ExpiresAt
		}
	}

	dates, err := uc.availability.AvailableDates(ctx, availability.Query{
		Kindergarten: kindergarten,
		TicketType:   ticket.TicketType,
		From:         now,
		Until:        until,
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to compute available dates: %v", err)
		return nil, fmt.Errorf("%w: failed to compute available dates: %v", ErrInternal, err)
	}

	return &Response{TicketID: req.TicketID, Dates: dates}, nil
}
