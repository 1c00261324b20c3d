package models

import (
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// CreateDayOffRequest blocks one date.
type CreateDayOffRequest struct {
	DayOffAt string `json:"dayOffAt"` // "2026-09-15"
}

// DayOffResponse is one blocked date.
type DayOffResponse struct {
	ID        int64     `json:"id"`
	DayOffAt  string    `json:"dayOffAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainDayOff converts a day-off.
func FromDomainDayOff(d *domain.DayOff) *DayOffResponse {
	return &DayOffResponse{
		ID:        d.ID,
		DayOffAt:  d.DayOffAt.Format(domain.DateFormat),
		CreatedAt: d.CreatedAt,
	}
}
