package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid end of day boundary", input: "24:00"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:61", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := types.NewTimeStringFromString("09:30")
	require.NoError(t, err)

	got, err := ts.AddMinutes(150)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.String())

	_, err = ts.AddMinutes(15 * 60)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestTimeString_Comparisons(t *testing.T) {
	a := types.TimeString("09:00")
	b := types.TimeString("18:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestNewTimeString(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, "14:05", types.NewTimeString(now).String())
}
