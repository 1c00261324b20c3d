package queue

import "time"

// QueueTicketLowBalance is the durable queue carrying low-balance events.
const QueueTicketLowBalance = "ticket.low_balance"

// TicketLowBalanceEvent is published after a reservation commit drops a
// customer ticket's unused balance to the notification threshold.
type TicketLowBalanceEvent struct {
	CustomerID       int64     `json:"customerId"`
	CustomerTicketID int64     `json:"customerTicketId"`
	RemainingCount   int       `json:"remainingCount"`
	OccurredAt       time.Time `json:"occurredAt"`
}
