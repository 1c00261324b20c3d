package dayoffs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/domain"
	calendarRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/calendar"
	"github.com/jw-park/petkinder-backend/internal/service/dayoffs/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCalendarRepo struct {
	byID      map[int64]*domain.DayOff
	nextID    int64
	createErr error
	deleted   []int64
}

func (f *fakeCalendarRepo) CreateDayOff(ctx context.Context, dayOff *domain.DayOff) (*domain.DayOff, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	dayOff.ID = f.nextID
	if f.byID == nil {
		f.byID = make(map[int64]*domain.DayOff)
	}
	f.byID[dayOff.ID] = dayOff
	return dayOff, nil
}

func (f *fakeCalendarRepo) GetDayOffByID(ctx context.Context, id int64) (*domain.DayOff, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, calendarRepo.ErrDayOffNotFound
	}
	return d, nil
}

func (f *fakeCalendarRepo) DeleteDayOff(ctx context.Context, dayOff *domain.DayOff) error {
	f.deleted = append(f.deleted, dayOff.ID)
	delete(f.byID, dayOff.ID)
	return nil
}

func newServiceUnderTest(repo *fakeCalendarRepo) *Service {
	return NewService(repo, passthroughTx{}, noopLogger{})
}

func TestCreate(t *testing.T) {
	repo := &fakeCalendarRepo{}
	svc := newServiceUnderTest(repo)

	resp, err := svc.Create(context.Background(), 1, &models.CreateDayOffRequest{DayOffAt: "2026-09-15"})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", resp.DayOffAt)

	stored := repo.byID[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, int64(1), stored.KindergartenID)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), stored.DayOffAt)
}

func TestCreate_Errors(t *testing.T) {
	t.Run("malformed date", func(t *testing.T) {
		svc := newServiceUnderTest(&fakeCalendarRepo{})
		_, err := svc.Create(context.Background(), 1, &models.CreateDayOffRequest{DayOffAt: "15/09/2026"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date already blocked", func(t *testing.T) {
		svc := newServiceUnderTest(&fakeCalendarRepo{createErr: calendarRepo.ErrDuplicateDayOff})
		_, err := svc.Create(context.Background(), 1, &models.CreateDayOffRequest{DayOffAt: "2026-09-15"})
		assert.ErrorIs(t, err, ErrDuplicateDayOff)
	})
}

func TestDelete(t *testing.T) {
	repo := &fakeCalendarRepo{}
	svc := newServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), 1, &models.CreateDayOffRequest{DayOffAt: "2026-09-15"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))
	assert.Equal(t, []int64{created.ID}, repo.deleted)
}

func TestDelete_Errors(t *testing.T) {
	repo := &fakeCalendarRepo{}
	svc := newServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), 1, &models.CreateDayOffRequest{DayOffAt: "2026-09-15"})
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), 1, 99), ErrDayOffNotFound)
	})

	t.Run("other kindergarten's day off reads as not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), 42, created.ID), ErrDayOffNotFound)
		assert.Empty(t, repo.deleted)
	})
}
