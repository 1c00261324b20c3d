package domain

import (
	"time"

	"github.com/google/uuid"
)

// CustomerTicketUsageLog links a customer ticket to the reservation that
// consumed (or, on cancellation, refunded) units from it. Append-only.
type CustomerTicketUsageLog struct {
	ID               uuid.UUID
	CustomerTicketID int64
	ReservationID    int64
	UsedCount        int
	CreatedAt        time.Time
}

// CustomerTicketRegistrationLog records a ticket being registered to a
// customer. Append-only.
type CustomerTicketRegistrationLog struct {
	ID               uuid.UUID
	CustomerTicketID int64
	RegisteredCount  int
	CreatedAt        time.Time
}
