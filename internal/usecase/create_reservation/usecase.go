package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	customerticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	dailyRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/dailyreservation"
	kindergartenRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/kindergarten"
	ticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/ticket"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
)

// UseCase creates a reservation: it validates the request against the
// kindergarten's calendar and capacity, then admits the pet atomically: the
// aggregate increments, reservation rows and optimistic ticket decrements
// commit or roll back together.
type UseCase struct {
	kindergartenRepo   KindergartenRepository
	customerRepo       CustomerRepository
	ticketRepo         TicketRepository
	customerTicketRepo CustomerTicketRepository
	reservationRepo    ReservationRepository
	dailyRepo          DailyReservationRepository
	availability       AvailabilityCalculator
	publisher          EventPublisher
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	kindergartenRepository KindergartenRepository,
	customerRepository CustomerRepository,
	ticketRepository TicketRepository,
	customerTicketRepository CustomerTicketRepository,
	reservationRepository ReservationRepository,
	dailyRepository DailyReservationRepository,
	availabilityCalc AvailabilityCalculator,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		kindergartenRepo:   kindergartenRepository,
		customerRepo:       customerRepository,
		ticketRepo:         ticketRepository,
		customerTicketRepo: customerTicketRepository,
		reservationRepo:    reservationRepository,
		dailyRepo:          dailyRepository,
		availability:       availabilityCalc,
		publisher:          publisher,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute runs the admission sequence.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: kindergarten=%d, customer=%d, pet=%d, ticket=%d, date=%s",
		req.KindergartenID, req.CustomerID, req.PetID, req.TicketID, req.ReservedAt.Format(domain.DateFormat))

	// 1. Request shape.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Kindergarten, customer, pet ownership.
	kindergarten, err := uc.kindergartenRepo.GetByID(ctx, req.KindergartenID)
	if err != nil {
		if errors.Is(err, kindergartenRepo.ErrKindergartenNotFound) {
			uc.logger.Warn("CreateReservation: kindergarten id=%d not found", req.KindergartenID)
			return nil, ErrKindergartenNotFound
		}
		uc.logger.Error("CreateReservation: failed to get kindergarten id=%d: %v", req.KindergartenID, err)
		return nil, fmt.Errorf("%w: failed to get kindergarten: %v", ErrInternal, err)
	}

	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateReservation: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateReservation: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	if customer.KindergartenID != req.KindergartenID {
		uc.logger.Warn("CreateReservation: customer id=%d belongs to another kindergarten", req.CustomerID)
		return nil, ErrCustomerNotFound
	}

	if !customer.OwnsPet(req.PetID) {
		uc.logger.Warn("CreateReservation: pet id=%d is not owned by customer id=%d", req.PetID, req.CustomerID)
		return nil, ErrPetNotFound
	}

	// 3. Ticket product; its type selects the admission strategy.
	ticket, err := uc.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			uc.logger.Warn("CreateReservation: ticket id=%d not found", req.TicketID)
			return nil, ErrTicketNotFound
		}
		uc.logger.Error("CreateReservation: failed to get ticket id=%d: %v", req.TicketID, err)
		return nil, fmt.Errorf("%w: failed to get ticket: %v", ErrInternal, err)
	}

	if ticket.KindergartenID != req.KindergartenID {
		uc.logger.Warn("CreateReservation: ticket id=%d belongs to another kindergarten", req.TicketID)
		return nil, ErrTicketNotFound
	}

	strategy, err := strategyFor(uc, ticket.TicketType)
	if err != nil {
		return nil, err
	}

	state := &admissionState{
		req:          req,
		now:          now,
		kindergarten: kindergarten,
		ticket:       ticket,
	}

	// 4. Pre-transaction validation against a snapshot of the customer's
	// usable tickets. Cheap rejection for the common failure cases; the
	// transaction below re-checks everything that can race.
	state.tickets, err = uc.listUsableTickets(ctx, state)
	if err != nil {
		return nil, err
	}

	if err := strategy.validate(ctx, state); err != nil {
		uc.logger.Warn("CreateReservation: admission validation failed: %v", err)
		return nil, err
	}

	// 5. Atomic admission.
	var plan *admissionPlan

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Re-read with row locks; balances may have moved since validation.
		state.tickets, err = uc.listUsableTickets(txCtx, state)
		if err != nil {
			return err
		}

		plan, err = strategy.plan(state)
		if err != nil {
			return err
		}

		// Aggregate counters first: a full date aborts before any row exists.
		for _, date := range plan.dates {
			err := uc.dailyRepo.IncrementForDate(txCtx, kindergarten.ID, date, ticket.TicketType, kindergarten.DailyPetLimit)
			if errors.Is(err, dailyRepo.ErrDailyLimitExceeded) {
				uc.logger.Warn("CreateReservation: daily limit reached on %s", date.Format(domain.DateFormat))
				return ErrDailyLimitExceeded
			}
			if err != nil {
				uc.logger.Error("CreateReservation: failed to increment daily aggregate: %v", err)
				return fmt.Errorf("%w: failed to increment daily aggregate: %v", ErrInternal, err)
			}
		}

		// Reservation rows, root first, children chained to their
		// predecessor.
		var parentID *int64
		for i, row := range plan.rows {
			row.ParentID = parentID

			created, err := uc.reservationRepo.Create(txCtx, row)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to create reservation row: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}

			plan.rows[i] = created
			parentID = ptr.Ptr(created.ID)
		}

		// Optimistic balance decrements plus their audit trail.
		for _, c := range plan.consumption {
			err := uc.customerTicketRepo.ConsumeUnits(txCtx, c.ticket.ID, c.ticket.Version, c.units)
			if errors.Is(err, customerticketRepo.ErrVersionConflict) {
				uc.logger.Warn("CreateReservation: balance conflict on customer ticket id=%d", c.ticket.ID)
				return ErrTicketConflict
			}
			if err != nil {
				uc.logger.Error("CreateReservation: failed to consume ticket units: %v", err)
				return fmt.Errorf("%w: failed to consume ticket units: %v", ErrInternal, err)
			}

			for _, idx := range c.rowIndex {
				log := &domain.CustomerTicketUsageLog{
					CustomerTicketID: c.ticket.ID,
					ReservationID:    plan.rows[idx].ID,
					UsedCount:        1,
				}
				if err := uc.customerTicketRepo.CreateUsageLog(txCtx, log); err != nil {
					uc.logger.Error("CreateReservation: failed to create usage log: %v", err)
					return fmt.Errorf("%w: failed to create usage log: %v", ErrInternal, err)
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	root := plan.rows[0]
	uc.logger.Info("CreateReservation: successfully created reservation id=%d (%d rows)", root.ID, len(plan.rows))

	// 6. Post-commit notifications; failures only log.
	uc.notifyLowBalances(ctx, req.CustomerID, plan.consumption)

	return buildResponse(plan), nil
}

func (uc *UseCase) listUsableTickets(ctx context.Context, st *admissionState) ([]*domain.CustomerTicket, error) {
	filter := customerticketRepo.UsableTicketsFilter{
		CustomerID: st.req.CustomerID,
		TicketType: ptr.Ptr(st.ticket.TicketType),
		At:         st.now,
	}
	if st.ticket.TicketType == domain.TicketTypeTime {
		filter.UsageTimeHours = st.ticket.UsageTimeHours
	}

	tickets, err := uc.customerTicketRepo.ListUsable(ctx, filter)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list usable tickets: %v", err)
		return nil, fmt.Errorf("%w: failed to list usable tickets: %v", ErrInternal, err)
	}

	return tickets, nil
}

func (uc *UseCase) notifyLowBalances(ctx context.Context, customerID int64, consumption []ticketConsumption) {
	for _, c := range consumption {
		remaining := c.ticket.UnusedCount - c.units
		if remaining > domain.LowBalanceThreshold {
			continue
		}

		if err := uc.publisher.PublishTicketLowBalance(ctx, customerID, c.ticket.ID, remaining); err != nil {
			uc.logger.Warn("CreateReservation: failed to publish low balance event for ticket id=%d: %v",
				c.ticket.ID, err)
		}
	}
}

func buildResponse(plan *admissionPlan) *Response {
	root := plan.rows[0]
	leaf := plan.rows[len(plan.rows)-1]

	ids := make([]int64, len(plan.rows))
	for i, row := range plan.rows {
		ids[i] = row.ID
	}

	consumed := make([]ConsumedTicket, len(plan.consumption))
	for i, c := range plan.consumption {
		consumed[i] = ConsumedTicket{
			CustomerTicketID: c.ticket.ID,
			UsedCount:        c.units,
			RemainingCount:   c.ticket.UnusedCount - c.units,
		}
	}

	nights := 0
	if root.TicketType == domain.TicketTypeHotel {
		nights = len(plan.rows)
	}

	return &Response{
		ID:             root.ID,
		KindergartenID: root.KindergartenID,
		CustomerID:     root.CustomerID,
		PetID:          root.PetID,
		TicketType:     string(root.TicketType),
		Status:         string(root.Status),
		ReservedAt:     root.ReservedAt,
		EndAt:          leaf.EndAt,
		AttendanceTime: root.AttendanceTime,
		ReservationIDs: ids,
		Nights:         nights,
		Tickets:        consumed,
		CreatedAt:      root.CreatedAt,
	}
}
