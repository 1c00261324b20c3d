package create_reservation

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// allDayStrategy admits whole-day daycare reservations. No attendance slot is
// involved: the pet is covered for the business day.
type allDayStrategy struct {
	uc *UseCase
}

func (s *allDayStrategy) validate(ctx context.Context, st *admissionState) error {
	if err := s.uc.checkNoActiveReservation(ctx, st.req.PetID, st.req.ReservedAt); err != nil {
		return err
	}

	if len(st.tickets) == 0 {
		return ErrNoUsableTicket
	}

	return s.uc.checkDateAvailable(ctx, st, st.req.ReservedAt)
}

func (s *allDayStrategy) plan(st *admissionState) (*admissionPlan, error) {
	return singleRowPlan(st, &domain.Reservation{})
}
