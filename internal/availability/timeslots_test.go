package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/pkg/types"
)

func TestTimeslots(t *testing.T) {
	tests := []struct {
		name       string
		open       types.TimeString
		close      types.TimeString
		usageHours int
		want       []types.TimeString
	}{
		{
			name:       "two hour slots across a business day",
			open:       "09:00",
			close:      "18:00",
			usageHours: 2,
			want:       []types.TimeString{"09:00", "11:00", "13:00", "15:00", "17:00"},
		},
		{
			name:       "slots that divide the day evenly",
			open:       "09:00",
			close:      "18:00",
			usageHours: 3,
			want:       []types.TimeString{"09:00", "12:00", "15:00"},
		},
		{
			name:       "single slot longer than the day",
			open:       "10:00",
			close:      "14:00",
			usageHours: 8,
			want:       []types.TimeString{"10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := availability.Timeslots(tt.open, tt.close, tt.usageHours)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeslots_Invalid(t *testing.T) {
	_, err := availability.Timeslots("09:00", "18:00", 0)
	assert.Error(t, err)

	_, err = availability.Timeslots("18:00", "09:00", 2)
	assert.Error(t, err)

	_, err = availability.Timeslots("09:00", "09:00", 2)
	assert.Error(t, err)
}

func TestContainsSlot(t *testing.T) {
	slots := []types.TimeString{"09:00", "11:00"}

	assert.True(t, availability.ContainsSlot(slots, "11:00"))
	assert.False(t, availability.ContainsSlot(slots, "10:00"))
}
