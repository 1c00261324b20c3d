package domain

import (
	"time"

	"github.com/jw-park/petkinder-backend/pkg/types"
)

// ReservationAvailabilityOption controls how soon a reservation may start.
type ReservationAvailabilityOption string

const (
	// AvailabilitySameDay allows reservations starting today.
	AvailabilitySameDay ReservationAvailabilityOption = "same_day"
	// AvailabilityNextDay excludes today from the bookable range.
	AvailabilityNextDay ReservationAvailabilityOption = "next_day"
)

// Kindergarten is a tenant business offering pet daycare services.
type Kindergarten struct {
	ID                int64
	Name              string
	BusinessStartTime types.TimeString
	BusinessEndTime   types.TimeString
	// DailyPetLimit caps the number of pets across all reservation types on
	// one calendar date. UnlimitedDailyPetLimit (-1) disables the cap.
	DailyPetLimit                 int
	ReservationAvailabilityOption ReservationAvailabilityOption
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

// HasDailyLimit returns true if the kindergarten enforces a daily pet cap.
func (k *Kindergarten) HasDailyLimit() bool {
	return k.DailyPetLimit != UnlimitedDailyPetLimit
}

// AllowsSameDayReservation returns true if reservations may start today.
func (k *Kindergarten) AllowsSameDayReservation() bool {
	return k.ReservationAvailabilityOption != AvailabilityNextDay
}
