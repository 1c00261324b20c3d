package get_available_slots

import "github.com/jw-park/petkinder-backend/pkg/types"

// Request asks for the attendance slots a time ticket of the given duration
// generates within the kindergarten's business hours.
type Request struct {
	KindergartenID int64
	UsageTimeHours int
}

// Response carries the slot start times, ascending.
type Response struct {
	UsageTimeHours int
	Slots          []types.TimeString
}
