package get_available_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/domain"
	kindergartenRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/kindergarten"
	"github.com/jw-park/petkinder-backend/pkg/types"
)

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

func TestExecute_GeneratesSlots(t *testing.T) {
	uc := NewUseCase(&fakeKindergartenRepo{kindergarten: &domain.Kindergarten{
		ID:                1,
		BusinessStartTime: "09:00",
		BusinessEndTime:   "18:00",
	}}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{KindergartenID: 1, UsageTimeHours: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.UsageTimeHours)
	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00", "15:00", "17:00"}, resp.Slots)
}

func TestExecute_UsageTimeBounds(t *testing.T) {
	uc := NewUseCase(&fakeKindergartenRepo{kindergarten: &domain.Kindergarten{ID: 1}}, noopLogger{})

	for _, hours := range []int{0, -1, domain.MaxUsageTimeHours + 1} {
		_, err := uc.Execute(context.Background(), &Request{KindergartenID: 1, UsageTimeHours: hours})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_KindergartenNotFound(t *testing.T) {
	uc := NewUseCase(&fakeKindergartenRepo{err: kindergartenRepo.ErrKindergartenNotFound}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{KindergartenID: 1, UsageTimeHours: 2})
	assert.ErrorIs(t, err, ErrKindergartenNotFound)
}
