package create_reservation

import (
	"context"
	"fmt"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
)

// timeStrategy admits fixed-duration daycare reservations. The attendance
// time must land on one of the slots the ticket's duration generates within
// business hours.
type timeStrategy struct {
	uc *UseCase
}

func (s *timeStrategy) validate(ctx context.Context, st *admissionState) error {
	if st.ticket.UsageTimeHours == nil {
		return fmt.Errorf("%w: time ticket id=%d has no usage duration", ErrInternal, st.ticket.ID)
	}

	if st.req.AttendanceTime == nil {
		return fmt.Errorf("%w: attendanceTime is required for time tickets", ErrInvalidInput)
	}

	if err := s.uc.checkNoActiveReservation(ctx, st.req.PetID, st.req.ReservedAt); err != nil {
		return err
	}

	if len(st.tickets) == 0 {
		return ErrNoUsableTicket
	}

	if err := s.uc.checkDateAvailable(ctx, st, st.req.ReservedAt); err != nil {
		return err
	}

	slots, err := availability.Timeslots(
		st.kindergarten.BusinessStartTime,
		st.kindergarten.BusinessEndTime,
		*st.ticket.UsageTimeHours,
	)
	if err != nil {
		return fmt.Errorf("%w: generate slots: %v", ErrInternal, err)
	}

	if !availability.ContainsSlot(slots, *st.req.AttendanceTime) {
		return ErrInvalidAttendanceTime
	}

	return nil
}

func (s *timeStrategy) plan(st *admissionState) (*admissionPlan, error) {
	return singleRowPlan(st, &domain.Reservation{
		AttendanceTime: st.req.AttendanceTime,
	})
}
