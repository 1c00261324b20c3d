package domain

import "time"

// CustomerTicket is a customer's purchased instance of a Ticket.
//
// Balance invariant: TotalCount = UsedCount + UnusedCount at all times.
// Version is an optimistic-concurrency counter; every balance mutation is a
// conditional update on the expected version, so two concurrent decrements of
// the same remaining unit resolve into one success and one conflict.
type CustomerTicket struct {
	ID          int64
	CustomerID  int64
	TicketID    int64
	TotalCount  int
	UsedCount   int
	UnusedCount int
	ExpiresAt   time.Time
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Ticket carries the product definition when loaded with a join.
	Ticket *Ticket
}

// IsExpired reports whether the ticket can no longer be used at the given time.
func (ct *CustomerTicket) IsExpired(at time.Time) bool {
	return !at.Before(ct.ExpiresAt)
}

// HasBalance reports whether at least one unused unit remains.
func (ct *CustomerTicket) HasBalance() bool {
	return ct.UnusedCount > 0
}

// IsUsable reports whether the ticket is unexpired and has balance left.
func (ct *CustomerTicket) IsUsable(at time.Time) bool {
	return !ct.IsExpired(at) && ct.HasBalance()
}

// BalanceConsistent verifies the total = used + unused invariant.
func (ct *CustomerTicket) BalanceConsistent() bool {
	return ct.TotalCount == ct.UsedCount+ct.UnusedCount
}
