package availability

import (
	"fmt"

	"github.com/jw-park/petkinder-backend/pkg/types"
)

// Timeslots returns the attendance slots a time ticket of usageHours can
// start at, given the kindergarten's business hours. Slots step by the usage
// duration from the opening time and are generated while the slot's start is
// strictly before the closing time, so the last slot may run past close.
// A pet arriving at 17:00 with a 2-hour ticket is still admitted at a
// kindergarten closing at 18:00.
func Timeslots(open, close types.TimeString, usageHours int) ([]types.TimeString, error) {
	if usageHours <= 0 {
		return nil, fmt.Errorf("availability: usage hours must be positive, got %d", usageHours)
	}
	if !open.IsBefore(close) {
		return nil, fmt.Errorf("availability: business start %s is not before end %s", open, close)
	}

	step := usageHours * 60
	slots := make([]types.TimeString, 0)
	for slot := open; slot.IsBefore(close); {
		slots = append(slots, slot)
		next, err := slot.AddMinutes(step)
		if err != nil {
			break
		}
		slot = next
	}

	return slots, nil
}

// ContainsSlot reports whether t is one of the generated slots.
func ContainsSlot(slots []types.TimeString, t types.TimeString) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
