package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
)

// hotelStrategy admits overnight stays. A stay of N nights becomes N chained
// reservation rows, one per night, and consumes N units spread across the
// customer's hotel tickets, earliest expiry first. The checkout date itself
// holds no row and takes no capacity.
type hotelStrategy struct {
	uc *UseCase
}

func (s *hotelStrategy) validate(ctx context.Context, st *admissionState) error {
	if st.req.EndAt == nil {
		return fmt.Errorf("%w: endAt is required for hotel tickets", ErrInvalidInput)
	}

	start := availability.DateOnly(st.req.ReservedAt)
	end := availability.DateOnly(*st.req.EndAt)

	if !end.After(start) {
		return ErrInvalidEndAt
	}

	nights := domain.StayNights(start, end)
	if nights > domain.MaxHotelStayNights {
		return fmt.Errorf("%w: stay of %d nights exceeds the %d night maximum",
			ErrInvalidEndAt, nights, domain.MaxHotelStayNights)
	}

	if len(st.tickets) == 0 {
		return ErrNoUsableTicket
	}

	if totalUnused(st.tickets) < nights {
		return ErrNoUsableTicket
	}

	if err := s.uc.checkDateAvailable(ctx, st, start); err != nil {
		return err
	}

	// The checkout must still fall inside the bookable window; intermediate
	// nights are guarded by the in-transaction aggregate increments.
	if end.After(availability.DateOnly(latestExpiry(st.tickets))) {
		return ErrInvalidEndAt
	}

	// The checkout date itself must be open: picking up a pet on a day-off,
	// holiday or full date is not admissible.
	if err := s.uc.checkDateAvailable(ctx, st, end); err != nil {
		if errors.Is(err, ErrInvalidReservedAt) {
			return ErrInvalidEndAt
		}
		return err
	}

	return nil
}

func (s *hotelStrategy) plan(st *admissionState) (*admissionPlan, error) {
	start := availability.DateOnly(st.req.ReservedAt)
	end := availability.DateOnly(*st.req.EndAt)
	nights := domain.StayNights(start, end)

	if totalUnused(st.tickets) < nights {
		return nil, ErrNoUsableTicket
	}

	rows := make([]*domain.Reservation, 0, nights)
	dates := make([]time.Time, 0, nights)
	consumption := make([]ticketConsumption, 0, 1)

	ticketIdx := 0
	remaining := st.tickets[ticketIdx].UnusedCount

	for night := 0; night < nights; night++ {
		for remaining == 0 {
			ticketIdx++
			remaining = st.tickets[ticketIdx].UnusedCount
		}

		nightStart := start.AddDate(0, 0, night)
		nightEnd := nightStart.AddDate(0, 0, 1)

		rows = append(rows, &domain.Reservation{
			KindergartenID:   st.kindergarten.ID,
			CustomerID:       st.req.CustomerID,
			PetID:            st.req.PetID,
			CustomerTicketID: st.tickets[ticketIdx].ID,
			TicketType:       domain.TicketTypeHotel,
			Status:           domain.StatusCompleted,
			ReservedAt:       nightStart,
			EndAt:            nightEnd,
			Depth:            night,
		})
		dates = append(dates, nightStart)

		if len(consumption) == 0 || consumption[len(consumption)-1].ticket != st.tickets[ticketIdx] {
			consumption = append(consumption, ticketConsumption{ticket: st.tickets[ticketIdx]})
		}
		last := &consumption[len(consumption)-1]
		last.units++
		last.rowIndex = append(last.rowIndex, night)
		remaining--
	}

	return &admissionPlan{rows: rows, consumption: consumption, dates: dates}, nil
}

func totalUnused(tickets []*domain.CustomerTicket) int {
	total := 0
	for _, t := range tickets {
		total += t.UnusedCount
	}
	return total
}
