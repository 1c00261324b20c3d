package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	reservationRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/reservation"
)

// UseCase cancels a reservation. Hotel chains cancel as a unit: the request
// addresses the root night and the cascade covers every non-canceled
// descendant. Consumed ticket units flow back through the same optimistic
// CAS path that consumed them, and each touched date's aggregate counters
// are released.
type UseCase struct {
	reservationRepo    ReservationRepository
	customerTicketRepo CustomerTicketRepository
	dailyRepo          DailyReservationRepository
	txManager          TransactionManager
	logger             Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepository ReservationRepository,
	customerTicketRepository CustomerTicketRepository,
	dailyRepository DailyReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:    reservationRepository,
		customerTicketRepo: customerTicketRepository,
		dailyRepo:          dailyRepository,
		txManager:          txManager,
		logger:             logger,
	}
}

// Execute runs the cancellation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: customer=%d, reservation=%d", req.CustomerID, req.ReservationID)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		root, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if root.CustomerID != req.CustomerID {
			uc.logger.Warn("CancelReservation: reservation id=%d belongs to another customer", req.ReservationID)
			return ErrReservationNotFound
		}

		if root.IsCanceled() {
			return ErrAlreadyCanceled
		}

		if !root.IsRoot() {
			uc.logger.Warn("CancelReservation: reservation id=%d is a chain child (depth=%d)", root.ID, root.Depth)
			return ErrNotChainRoot
		}

		rows, err := uc.collectRows(txCtx, root)
		if err != nil {
			return err
		}

		ids := make([]int64, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}

		if err := uc.reservationRepo.CancelByIDs(txCtx, ids); err != nil {
			uc.logger.Error("CancelReservation: failed to cancel rows %v: %v", ids, err)
			return fmt.Errorf("%w: failed to cancel reservations: %v", ErrInternal, err)
		}

		refunds, err := uc.refundTickets(txCtx, rows)
		if err != nil {
			return err
		}

		for _, row := range rows {
			err := uc.dailyRepo.DecrementForDate(txCtx, row.KindergartenID, row.ReservedAt, row.TicketType)
			if err != nil {
				uc.logger.Error("CancelReservation: failed to decrement aggregate for %s: %v",
					row.ReservedAt.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to decrement daily aggregate: %v", ErrInternal, err)
			}
		}

		response = &Response{CanceledIDs: ids, RefundedTickets: refunds}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: successfully canceled %d row(s) for reservation id=%d",
		len(response.CanceledIDs), req.ReservationID)

	return response, nil
}

// collectRows returns the rows the cancellation covers: the root plus, for
// hotel stays, every non-canceled descendant night.
func (uc *UseCase) collectRows(ctx context.Context, root *domain.Reservation) ([]*domain.Reservation, error) {
	if root.TicketType != domain.TicketTypeHotel {
		return []*domain.Reservation{root}, nil
	}

	chain, err := uc.reservationRepo.GetDescendants(ctx, root.ID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to get chain for root id=%d: %v", root.ID, err)
		return nil, fmt.Errorf("%w: failed to get reservation chain: %v", ErrInternal, err)
	}

	rows := make([]*domain.Reservation, 0, len(chain)+1)
	rows = append(rows, root)
	for _, row := range chain {
		if !row.IsCanceled() {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// refundTickets walks the canceled rows' usage logs and returns the consumed
// units to their tickets, one CAS refund per ticket.
func (uc *UseCase) refundTickets(ctx context.Context, rows []*domain.Reservation) ([]RefundedTicket, error) {
	unitsByTicket := make(map[int64]int)
	order := make([]int64, 0)

	for _, row := range rows {
		logs, err := uc.customerTicketRepo.ListUsageLogsByReservation(ctx, row.ID)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to list usage logs for reservation id=%d: %v", row.ID, err)
			return nil, fmt.Errorf("%w: failed to list usage logs: %v", ErrInternal, err)
		}

		for _, log := range logs {
			if _, seen := unitsByTicket[log.CustomerTicketID]; !seen {
				order = append(order, log.CustomerTicketID)
			}
			unitsByTicket[log.CustomerTicketID] += log.UsedCount
		}
	}

	refunds := make([]RefundedTicket, 0, len(order))
	for _, ticketID := range order {
		ticket, err := uc.customerTicketRepo.GetByID(ctx, ticketID)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to get customer ticket id=%d: %v", ticketID, err)
			return nil, fmt.Errorf("%w: failed to get customer ticket: %v", ErrInternal, err)
		}

		units := unitsByTicket[ticketID]
		err = uc.customerTicketRepo.RefundUnits(ctx, ticketID, ticket.Version, units)
		if errors.Is(err, customerticketRepo.ErrVersionConflict) {
			uc.logger.Warn("CancelReservation: balance conflict on customer ticket id=%d", ticketID)
			return nil, ErrTicketConflict
		}
		if err != nil {
			uc.logger.Error("CancelReservation: failed to refund ticket id=%d: %v", ticketID, err)
			return nil, fmt.Errorf("%w: failed to refund ticket units: %v", ErrInternal, err)
		}

		refunds = append(refunds, RefundedTicket{CustomerTicketID: ticketID, RefundedCount: units})
	}

	return refunds, nil
}
