package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
)

type fakeDailyRepo struct {
	fullDates []time.Time
	err       error
	called    bool
}

func (f *fakeDailyRepo) ListFullDates(ctx context.Context, kindergartenID int64, ticketType domain.TicketType, from, to time.Time, limit int) ([]time.Time, error) {
	f.called = true
	return f.fullDates, f.err
}

type fakeDayOffSource struct {
	dates []time.Time
	err   error
}

func (f *fakeDayOffSource) ListDayOffDates(ctx context.Context, kindergartenID int64, from, to time.Time) ([]time.Time, error) {
	return f.dates, f.err
}

type fakeHolidaySource struct {
	dates []time.Time
	err   error
}

func (f *fakeHolidaySource) ListHolidayDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	return f.dates, f.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testKindergarten(limit int, option domain.ReservationAvailabilityOption) *domain.Kindergarten {
	return &domain.Kindergarten{
		ID:                            1,
		Name:                          "Happy Paws",
		BusinessStartTime:             "09:00",
		BusinessEndTime:               "18:00",
		DailyPetLimit:                 limit,
		ReservationAvailabilityOption: option,
	}
}

func TestCalculator_AvailableDates(t *testing.T) {
	from := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	until := date(2026, 9, 5)

	tests := []struct {
		name     string
		kg       *domain.Kindergarten
		dayOffs  []time.Time
		holidays []time.Time
		full     []time.Time
		want     []time.Time
	}{
		{
			name: "open range with same day allowed",
			kg:   testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilitySameDay),
			want: []time.Time{
				date(2026, 9, 1), date(2026, 9, 2), date(2026, 9, 3),
				date(2026, 9, 4), date(2026, 9, 5),
			},
		},
		{
			name: "next day option drops the origin date",
			kg:   testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilityNextDay),
			want: []time.Time{
				date(2026, 9, 2), date(2026, 9, 3), date(2026, 9, 4), date(2026, 9, 5),
			},
		},
		{
			name:     "day offs and holidays are subtracted",
			kg:       testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilitySameDay),
			dayOffs:  []time.Time{date(2026, 9, 2)},
			holidays: []time.Time{date(2026, 9, 4)},
			want:     []time.Time{date(2026, 9, 1), date(2026, 9, 3), date(2026, 9, 5)},
		},
		{
			name: "capacity-full dates are subtracted when limited",
			kg:   testKindergarten(10, domain.AvailabilitySameDay),
			full: []time.Time{date(2026, 9, 3)},
			want: []time.Time{
				date(2026, 9, 1), date(2026, 9, 2), date(2026, 9, 4), date(2026, 9, 5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := availability.NewCalculator(
				&fakeDailyRepo{fullDates: tt.full},
				&fakeDayOffSource{dates: tt.dayOffs},
				&fakeHolidaySource{dates: tt.holidays},
			)

			got, err := calc.AvailableDates(context.Background(), availability.Query{
				Kindergarten: tt.kg,
				TicketType:   domain.TicketTypeAllDay,
				From:         from,
				Until:        until,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculator_AvailableDates_UnlimitedSkipsCapacityQuery(t *testing.T) {
	daily := &fakeDailyRepo{fullDates: []time.Time{date(2026, 9, 2)}}
	calc := availability.NewCalculator(daily, &fakeDayOffSource{}, &fakeHolidaySource{})

	got, err := calc.AvailableDates(context.Background(), availability.Query{
		Kindergarten: testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilitySameDay),
		TicketType:   domain.TicketTypeTime,
		From:         date(2026, 9, 1),
		Until:        date(2026, 9, 3),
	})

	require.NoError(t, err)
	assert.False(t, daily.called)
	assert.Len(t, got, 3)
}

func TestCalculator_AvailableDates_EmptyRange(t *testing.T) {
	calc := availability.NewCalculator(&fakeDailyRepo{}, &fakeDayOffSource{}, &fakeHolidaySource{})

	got, err := calc.AvailableDates(context.Background(), availability.Query{
		Kindergarten: testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilitySameDay),
		TicketType:   domain.TicketTypeHotel,
		From:         date(2026, 9, 10),
		Until:        date(2026, 9, 5),
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalculator_AvailableDates_SourceError(t *testing.T) {
	wantErr := errors.New("boom")
	calc := availability.NewCalculator(&fakeDailyRepo{}, &fakeDayOffSource{err: wantErr}, &fakeHolidaySource{})

	_, err := calc.AvailableDates(context.Background(), availability.Query{
		Kindergarten: testKindergarten(domain.UnlimitedDailyPetLimit, domain.AvailabilitySameDay),
		TicketType:   domain.TicketTypeTime,
		From:         date(2026, 9, 1),
		Until:        date(2026, 9, 2),
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestContains(t *testing.T) {
	dates := []time.Time{date(2026, 9, 1), date(2026, 9, 3)}

	assert.True(t, availability.Contains(dates, time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)))
	assert.False(t, availability.Contains(dates, date(2026, 9, 2)))
}
