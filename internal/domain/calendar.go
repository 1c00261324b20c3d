package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DayOff is a kindergarten-specific closed date.
type DayOff struct {
	ID             int64
	KindergartenID int64
	DayOffAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SpecialDay is a row of the shared national holiday calendar, independent of
// any kindergarten. Only rows with IsHoliday set block reservations.
type SpecialDay struct {
	ID           int64
	Name         string
	SpecialDayAt time.Time
	IsHoliday    bool
}

// DeletedRecord is the audit snapshot written when a soft-deletable row
// (currently day-offs) is removed.
type DeletedRecord struct {
	ID        uuid.UUID
	TableName string
	RecordID  int64
	Snapshot  json.RawMessage
	DeletedAt time.Time
}
