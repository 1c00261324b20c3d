package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	reservationRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/reservation"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	byID        map[int64]*domain.Reservation
	descendants []*domain.Reservation
	canceledIDs []int64
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) GetDescendants(ctx context.Context, rootID int64) ([]*domain.Reservation, error) {
	return f.descendants, nil
}

func (f *fakeReservationRepo) CancelByIDs(ctx context.Context, ids []int64) error {
	f.canceledIDs = ids
	return nil
}

type refundCall struct {
	id      int64
	version int64
	units   int
}

type fakeCustomerTicketRepo struct {
	tickets       map[int64]*domain.CustomerTicket
	logsByResID   map[int64][]*domain.CustomerTicketUsageLog
	refundErr     error
	refunds       []refundCall
}

func (f *fakeCustomerTicketRepo) GetByID(ctx context.Context, id int64) (*domain.CustomerTicket, error) {
	return f.tickets[id], nil
}

func (f *fakeCustomerTicketRepo) RefundUnits(ctx context.Context, id int64, expectedVersion int64, units int) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds = append(f.refunds, refundCall{id: id, version: expectedVersion, units: units})
	return nil
}

func (f *fakeCustomerTicketRepo) ListUsageLogsByReservation(ctx context.Context, reservationID int64) ([]*domain.CustomerTicketUsageLog, error) {
	return f.logsByResID[reservationID], nil
}

type decrementCall struct {
	date       time.Time
	ticketType domain.TicketType
}

type fakeDailyRepo struct {
	decrements []decrementCall
}

func (f *fakeDailyRepo) DecrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType) error {
	f.decrements = append(f.decrements, decrementCall{date: date, ticketType: ticketType})
	return nil
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func usageLog(ticketID, resID int64) *domain.CustomerTicketUsageLog {
	return &domain.CustomerTicketUsageLog{
		ID:               uuid.New(),
		CustomerTicketID: ticketID,
		ReservationID:    resID,
		UsedCount:        1,
	}
}

func reservation(id int64, ticketType domain.TicketType, d int) *domain.Reservation {
	return &domain.Reservation{
		ID:             id,
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketType:     ticketType,
		Status:         domain.StatusCompleted,
		ReservedAt:     day(d),
		EndAt:          day(d),
	}
}

func newUseCaseUnderTest(res *fakeReservationRepo, tickets *fakeCustomerTicketRepo, daily *fakeDailyRepo) *UseCase {
	return NewUseCase(res, tickets, daily, fakeTxManager{}, noopLogger{})
}

func TestExecute_SingleReservation(t *testing.T) {
	res := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: reservation(1, domain.TicketTypeAllDay, 2),
	}}
	tickets := &fakeCustomerTicketRepo{
		tickets: map[int64]*domain.CustomerTicket{
			10: {ID: 10, Version: 4},
		},
		logsByResID: map[int64][]*domain.CustomerTicketUsageLog{
			1: {usageLog(10, 1)},
		},
	}
	daily := &fakeDailyRepo{}

	resp, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
		CustomerID:    2,
		ReservationID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.CanceledIDs)
	assert.Equal(t, []RefundedTicket{{CustomerTicketID: 10, RefundedCount: 1}}, resp.RefundedTickets)

	assert.Equal(t, []int64{1}, res.canceledIDs)
	assert.Equal(t, []refundCall{{id: 10, version: 4, units: 1}}, tickets.refunds)
	assert.Equal(t, []decrementCall{{date: day(2), ticketType: domain.TicketTypeAllDay}}, daily.decrements)
}

func TestExecute_HotelChainCascade(t *testing.T) {
	root := reservation(1, domain.TicketTypeHotel, 2)
	night2 := reservation(2, domain.TicketTypeHotel, 3)
	night2.ParentID = ptr.Ptr(int64(1))
	night2.Depth = 1
	night3 := reservation(3, domain.TicketTypeHotel, 4)
	night3.ParentID = ptr.Ptr(int64(2))
	night3.Depth = 2

	res := &fakeReservationRepo{
		byID:        map[int64]*domain.Reservation{1: root},
		descendants: []*domain.Reservation{night2, night3},
	}
	tickets := &fakeCustomerTicketRepo{
		tickets: map[int64]*domain.CustomerTicket{
			20: {ID: 20, Version: 9},
			21: {ID: 21, Version: 2},
		},
		logsByResID: map[int64][]*domain.CustomerTicketUsageLog{
			1: {usageLog(20, 1)},
			2: {usageLog(20, 2)},
			3: {usageLog(21, 3)},
		},
	}
	daily := &fakeDailyRepo{}

	resp, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
		CustomerID:    2,
		ReservationID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, resp.CanceledIDs)

	// Refunds aggregate per ticket, one CAS call each.
	assert.Equal(t, []refundCall{
		{id: 20, version: 9, units: 2},
		{id: 21, version: 2, units: 1},
	}, tickets.refunds)
	assert.Equal(t, []RefundedTicket{
		{CustomerTicketID: 20, RefundedCount: 2},
		{CustomerTicketID: 21, RefundedCount: 1},
	}, resp.RefundedTickets)

	require.Len(t, daily.decrements, 3)
	assert.Equal(t, day(2), daily.decrements[0].date)
	assert.Equal(t, day(3), daily.decrements[1].date)
	assert.Equal(t, day(4), daily.decrements[2].date)
}

func TestExecute_HotelChain_SkipsCanceledNights(t *testing.T) {
	root := reservation(1, domain.TicketTypeHotel, 2)
	canceledNight := reservation(2, domain.TicketTypeHotel, 3)
	canceledNight.Status = domain.StatusCanceled
	liveNight := reservation(3, domain.TicketTypeHotel, 4)

	res := &fakeReservationRepo{
		byID:        map[int64]*domain.Reservation{1: root},
		descendants: []*domain.Reservation{canceledNight, liveNight},
	}
	tickets := &fakeCustomerTicketRepo{
		tickets: map[int64]*domain.CustomerTicket{20: {ID: 20, Version: 1}},
		logsByResID: map[int64][]*domain.CustomerTicketUsageLog{
			1: {usageLog(20, 1)},
			3: {usageLog(20, 3)},
		},
	}
	daily := &fakeDailyRepo{}

	resp, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
		CustomerID:    2,
		ReservationID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, resp.CanceledIDs)
	assert.Equal(t, []refundCall{{id: 20, version: 1, units: 2}}, tickets.refunds)
	assert.Len(t, daily.decrements, 2)
}

func TestExecute_Errors(t *testing.T) {
	base := func() (*fakeReservationRepo, *fakeCustomerTicketRepo, *fakeDailyRepo) {
		return &fakeReservationRepo{byID: map[int64]*domain.Reservation{
				1: reservation(1, domain.TicketTypeAllDay, 2),
			}},
			&fakeCustomerTicketRepo{
				tickets:     map[int64]*domain.CustomerTicket{10: {ID: 10}},
				logsByResID: map[int64][]*domain.CustomerTicketUsageLog{1: {usageLog(10, 1)}},
			},
			&fakeDailyRepo{}
	}

	t.Run("not found", func(t *testing.T) {
		res, tickets, daily := base()
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    2,
			ReservationID: 99,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("other customer's reservation reads as not found", func(t *testing.T) {
		res, tickets, daily := base()
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    42,
			ReservationID: 1,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("already canceled", func(t *testing.T) {
		res, tickets, daily := base()
		res.byID[1].Status = domain.StatusCanceled
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    2,
			ReservationID: 1,
		})
		assert.ErrorIs(t, err, ErrAlreadyCanceled)
	})

	t.Run("chain child is not cancelable", func(t *testing.T) {
		res, tickets, daily := base()
		res.byID[1].ParentID = ptr.Ptr(int64(7))
		res.byID[1].Depth = 1
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    2,
			ReservationID: 1,
		})
		assert.ErrorIs(t, err, ErrNotChainRoot)
	})

	t.Run("refund version conflict", func(t *testing.T) {
		res, tickets, daily := base()
		tickets.refundErr = customerticketRepo.ErrVersionConflict
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    2,
			ReservationID: 1,
		})
		assert.ErrorIs(t, err, ErrTicketConflict)
	})

	t.Run("invalid input", func(t *testing.T) {
		res, tickets, daily := base()
		_, err := newUseCaseUnderTest(res, tickets, daily).Execute(context.Background(), &Request{
			CustomerID:    0,
			ReservationID: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
