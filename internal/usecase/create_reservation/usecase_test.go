package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	dailyRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/dailyreservation"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
	"github.com/jw-park/petkinder-backend/pkg/types"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeKindergartenRepo struct {
	kindergarten *domain.Kindergarten
	err          error
}

func (f *fakeKindergartenRepo) GetByID(ctx context.Context, id int64) (*domain.Kindergarten, error) {
	return f.kindergarten, f.err
}

type fakeCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return f.customer, f.err
}

type fakeTicketRepo struct {
	ticket *domain.Ticket
	err    error
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return f.ticket, f.err
}

type consumeCall struct {
	id      int64
	version int64
	units   int
}

type fakeCustomerTicketRepo struct {
	tickets    []*domain.CustomerTicket
	consumeErr error
	consumed   []consumeCall
	usageLogs  []*domain.CustomerTicketUsageLog
}

func (f *fakeCustomerTicketRepo) ListUsable(ctx context.Context, filter customerticket.UsableTicketsFilter) ([]*domain.CustomerTicket, error) {
	return f.tickets, nil
}

func (f *fakeCustomerTicketRepo) ConsumeUnits(ctx context.Context, id int64, expectedVersion int64, units int) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed = append(f.consumed, consumeCall{id: id, version: expectedVersion, units: units})
	return nil
}

func (f *fakeCustomerTicketRepo) CreateUsageLog(ctx context.Context, log *domain.CustomerTicketUsageLog) error {
	f.usageLogs = append(f.usageLogs, log)
	return nil
}

type fakeReservationRepo struct {
	nextID  int64
	created []*domain.Reservation
	exists  bool
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = testNow
	f.created = append(f.created, res)
	return res, nil
}

func (f *fakeReservationRepo) ExistsActiveOnDate(ctx context.Context, petID int64, date time.Time) (bool, error) {
	return f.exists, nil
}

type fakeDailyRepo struct {
	err        error
	increments []time.Time
}

func (f *fakeDailyRepo) IncrementForDate(ctx context.Context, kindergartenID int64, date time.Time, ticketType domain.TicketType, limit int) error {
	if f.err != nil {
		return f.err
	}
	f.increments = append(f.increments, date)
	return nil
}

type fakeAvailability struct {
	dates []time.Time
	err   error
}

func (f *fakeAvailability) AvailableDates(ctx context.Context, q availability.Query) ([]time.Time, error) {
	return f.dates, f.err
}

type publishedEvent struct {
	customerID       int64
	customerTicketID int64
	remainingCount   int
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishTicketLowBalance(ctx context.Context, customerID, customerTicketID int64, remainingCount int) error {
	f.events = append(f.events, publishedEvent{customerID, customerTicketID, remainingCount})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc           *UseCase
	kindergarten *fakeKindergartenRepo
	customers    *fakeCustomerRepo
	tickets      *fakeTicketRepo
	balances     *fakeCustomerTicketRepo
	reservations *fakeReservationRepo
	daily        *fakeDailyRepo
	avail        *fakeAvailability
	publisher    *fakePublisher
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(ticket *domain.Ticket, balances []*domain.CustomerTicket, availableDates []time.Time) *fixture {
	f := &fixture{
		kindergarten: &fakeKindergartenRepo{kindergarten: &domain.Kindergarten{
			ID:                            1,
			Name:                          "Happy Paws",
			BusinessStartTime:             "09:00",
			BusinessEndTime:               "18:00",
			DailyPetLimit:                 domain.UnlimitedDailyPetLimit,
			ReservationAvailabilityOption: domain.AvailabilitySameDay,
		}},
		customers: &fakeCustomerRepo{customer: &domain.Customer{
			ID:             2,
			KindergartenID: 1,
			Name:           "Jiwoo",
			Pets:           []*domain.CustomerPet{{ID: 3, CustomerID: 2, Name: "Bori"}},
		}},
		tickets:      &fakeTicketRepo{ticket: ticket},
		balances:     &fakeCustomerTicketRepo{tickets: balances},
		reservations: &fakeReservationRepo{},
		daily:        &fakeDailyRepo{},
		avail:        &fakeAvailability{dates: availableDates},
		publisher:    &fakePublisher{},
	}

	f.uc = NewUseCase(
		f.kindergarten,
		f.customers,
		f.tickets,
		f.balances,
		f.reservations,
		f.daily,
		f.avail,
		f.publisher,
		fakeTxManager{},
		noopLogger{},
	)
	f.uc.timeProvider = &fixedTime{t: testNow}

	return f
}

func timeTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:             5,
		KindergartenID: 1,
		TicketType:     domain.TicketTypeTime,
		UsageTimeHours: ptr.Ptr(2),
		UsageCount:     10,
	}
}

func hotelTicket() *domain.Ticket {
	return &domain.Ticket{ID: 6, KindergartenID: 1, TicketType: domain.TicketTypeHotel, UsageCount: 10}
}

func balance(id int64, unused int, version int64, expires time.Time) *domain.CustomerTicket {
	return &domain.CustomerTicket{
		ID:          id,
		CustomerID:  2,
		TicketID:    5,
		TotalCount:  10,
		UsedCount:   10 - unused,
		UnusedCount: unused,
		ExpiresAt:   expires,
		Version:     version,
	}
}

func TestExecute_TimeTicket(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2), day(3)})

	resp, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("11:00")),
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.ReservationIDs)
	assert.Equal(t, "time", resp.TicketType)
	assert.Equal(t, day(2), resp.ReservedAt)
	assert.Equal(t, 0, resp.Nights)

	require.Len(t, f.reservations.created, 1)
	row := f.reservations.created[0]
	assert.Equal(t, domain.StatusCompleted, row.Status)
	assert.Equal(t, types.TimeString("11:00"), *row.AttendanceTime)
	assert.Nil(t, row.ParentID)
	assert.Equal(t, 0, row.Depth)

	assert.Equal(t, []consumeCall{{id: 10, version: 3, units: 1}}, f.balances.consumed)
	require.Len(t, f.balances.usageLogs, 1)
	assert.Equal(t, int64(1), f.balances.usageLogs[0].ReservationID)

	assert.Equal(t, []time.Time{day(2)}, f.daily.increments)
	assert.Empty(t, f.publisher.events, "balance of 4 remaining should not alert")
}

func TestExecute_TimeTicket_AttendanceOffGrid(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("10:00")),
	})

	assert.ErrorIs(t, err, ErrInvalidAttendanceTime)
	assert.Empty(t, f.reservations.created)
}

func TestExecute_TimeTicket_AttendanceRequired(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AllDayTicket(t *testing.T) {
	ticket := &domain.Ticket{ID: 5, KindergartenID: 1, TicketType: domain.TicketTypeAllDay, UsageCount: 10}
	f := newFixture(ticket, []*domain.CustomerTicket{
		balance(10, 2, 1, day(30)),
	}, []time.Time{day(2)})

	resp, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
	})

	require.NoError(t, err)
	assert.Equal(t, "all_day", resp.TicketType)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, 1, resp.Tickets[0].RemainingCount)

	// Remaining balance of 1 hits the alert threshold.
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, publishedEvent{customerID: 2, customerTicketID: 10, remainingCount: 1}, f.publisher.events[0])
}

func TestExecute_DateNotAvailable(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(3)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrInvalidReservedAt)
}

func TestExecute_AlreadyReserved(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})
	f.reservations.exists = true

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrAlreadyReserved)
}

func TestExecute_NoUsableTicket(t *testing.T) {
	f := newFixture(timeTicket(), nil, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrNoUsableTicket)
}

func TestExecute_TenantScoping(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})
	f.customers.customer.KindergartenID = 99

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_PetNotOwned(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          77,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestExecute_DailyLimitExceeded(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})
	f.daily.err = dailyRepo.ErrDailyLimitExceeded

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
}

func TestExecute_BalanceConflict(t *testing.T) {
	f := newFixture(timeTicket(), []*domain.CustomerTicket{
		balance(10, 5, 3, day(30)),
	}, []time.Time{day(2)})
	f.balances.consumeErr = customerticket.ErrVersionConflict

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       5,
		ReservedAt:     day(2),
		AttendanceTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrTicketConflict)
}

func TestExecute_HotelStay(t *testing.T) {
	// Three nights, covered by a nearly-spent ticket plus a fresh one.
	first := balance(20, 2, 7, day(10))
	second := balance(21, 5, 1, day(30))
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{first, second},
		[]time.Time{day(2), day(3), day(4), day(5)})

	resp, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(2),
		EndAt:          ptr.Ptr(day(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, []int64{1, 2, 3}, resp.ReservationIDs)
	assert.Equal(t, day(2), resp.ReservedAt)
	assert.Equal(t, day(5), resp.EndAt, "checkout is the leaf row's end date")

	require.Len(t, f.reservations.created, 3)
	for i, row := range f.reservations.created {
		assert.Equal(t, day(2+i), row.ReservedAt)
		assert.Equal(t, day(3+i), row.EndAt)
		assert.Equal(t, i, row.Depth)
		if i == 0 {
			assert.Nil(t, row.ParentID)
		} else {
			require.NotNil(t, row.ParentID)
			assert.Equal(t, f.reservations.created[i-1].ID, *row.ParentID)
		}
	}

	// Earliest-expiring ticket drains first.
	assert.Equal(t, int64(20), f.reservations.created[0].CustomerTicketID)
	assert.Equal(t, int64(20), f.reservations.created[1].CustomerTicketID)
	assert.Equal(t, int64(21), f.reservations.created[2].CustomerTicketID)

	assert.Equal(t, []consumeCall{
		{id: 20, version: 7, units: 2},
		{id: 21, version: 1, units: 1},
	}, f.balances.consumed)
	assert.Len(t, f.balances.usageLogs, 3)

	assert.Equal(t, []time.Time{day(2), day(3), day(4)}, f.daily.increments,
		"the checkout date takes no capacity")

	// The drained ticket alerts, the fresh one does not.
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, publishedEvent{customerID: 2, customerTicketID: 20, remainingCount: 0}, f.publisher.events[0])
}

func TestExecute_HotelStay_EndBeforeStart(t *testing.T) {
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{
		balance(20, 5, 1, day(30)),
	}, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(5),
		EndAt:          ptr.Ptr(day(5)),
	})

	assert.ErrorIs(t, err, ErrInvalidEndAt)
}

func TestExecute_HotelStay_EndAtRequired(t *testing.T) {
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{
		balance(20, 5, 1, day(30)),
	}, []time.Time{day(2)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(2),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_HotelStay_InsufficientBalance(t *testing.T) {
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{
		balance(20, 2, 1, day(30)),
	}, []time.Time{day(2), day(3), day(4), day(5)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(2),
		EndAt:          ptr.Ptr(day(5)),
	})

	assert.ErrorIs(t, err, ErrNoUsableTicket)
	assert.Empty(t, f.reservations.created)
}

func TestExecute_HotelStay_BlockedCheckoutDate(t *testing.T) {
	// Nights 2-4 are open but the checkout date itself is blocked (day off,
	// holiday or full): pickup would be impossible, so admission fails.
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{
		balance(20, 10, 1, day(30)),
	}, []time.Time{day(2), day(3), day(4)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(2),
		EndAt:          ptr.Ptr(day(5)),
	})

	assert.ErrorIs(t, err, ErrInvalidEndAt)
	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.daily.increments)
}

func TestExecute_HotelStay_CheckoutPastExpiry(t *testing.T) {
	f := newFixture(hotelTicket(), []*domain.CustomerTicket{
		balance(20, 10, 1, day(4)),
	}, []time.Time{day(2), day(3)})

	_, err := f.uc.Execute(context.Background(), &Request{
		KindergartenID: 1,
		CustomerID:     2,
		PetID:          3,
		TicketID:       6,
		ReservedAt:     day(2),
		EndAt:          ptr.Ptr(day(6)),
	})

	assert.ErrorIs(t, err, ErrInvalidEndAt)
}
