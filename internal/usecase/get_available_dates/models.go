package get_available_dates

import "time"

// Request asks for the dates a customer can book with a ticket product.
type Request struct {
	KindergartenID int64
	CustomerID     int64
	TicketID       int64
}

// Response carries the bookable dates, ascending. Empty when the customer
// holds no usable ticket of the product's type.
type Response struct {
	TicketID int64
	Dates    []time.Time
}
