package cancel_reservation

// Request identifies the reservation to cancel. Canceling a hotel stay
// addresses its root night and cascades over the whole chain.
type Request struct {
	CustomerID    int64
	ReservationID int64
}

// Response reports what the cancellation touched.
type Response struct {
	// CanceledIDs lists every canceled row, root first.
	CanceledIDs []int64
	// RefundedTickets lists the balance refunds, one entry per customer
	// ticket.
	RefundedTickets []RefundedTicket
}

// RefundedTicket is one customer ticket's returned units.
type RefundedTicket struct {
	CustomerTicketID int64
	RefundedCount    int
}
