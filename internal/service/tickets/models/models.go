package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// Request models

// RegisterTicketRequest registers a ticket product to a customer.
type RegisterTicketRequest struct {
	TicketID int64 `json:"ticketId"`
}

// Response models

// TicketProductResponse is one purchasable product.
type TicketProductResponse struct {
	ID              int64           `json:"id"`
	TicketType      string          `json:"ticketType"`
	UsageTimeHours  *int            `json:"usageTimeHours,omitempty"`
	UsageCount      int             `json:"usageCount"`
	UsagePeriodDays int             `json:"usagePeriodDays"`
	Price           decimal.Decimal `json:"price"`
}

// CustomerTicketResponse is one purchased ticket's balance.
type CustomerTicketResponse struct {
	ID             int64     `json:"id"`
	TicketID       int64     `json:"ticketId"`
	TicketType     string    `json:"ticketType"`
	UsageTimeHours *int      `json:"usageTimeHours,omitempty"`
	TotalCount     int       `json:"totalCount"`
	UsedCount      int       `json:"usedCount"`
	UnusedCount    int       `json:"unusedCount"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CustomerTicketsResponse groups a customer's usable tickets by type.
type CustomerTicketsResponse struct {
	TimeTickets   []CustomerTicketResponse `json:"timeTickets"`
	AllDayTickets []CustomerTicketResponse `json:"allDayTickets"`
	HotelTickets  []CustomerTicketResponse `json:"hotelTickets"`
}

// FromDomainTicket converts a ticket product.
func FromDomainTicket(t *domain.Ticket) TicketProductResponse {
	return TicketProductResponse{
		ID:              t.ID,
		TicketType:      string(t.TicketType),
		UsageTimeHours:  t.UsageTimeHours,
		UsageCount:      t.UsageCount,
		UsagePeriodDays: t.UsagePeriodDays,
		Price:           t.Price,
	}
}

// FromDomainCustomerTicket converts a purchased ticket. The joined product
// must be loaded.
func FromDomainCustomerTicket(ct *domain.CustomerTicket) CustomerTicketResponse {
	resp := CustomerTicketResponse{
		ID:          ct.ID,
		TicketID:    ct.TicketID,
		TotalCount:  ct.TotalCount,
		UsedCount:   ct.UsedCount,
		UnusedCount: ct.UnusedCount,
		ExpiresAt:   ct.ExpiresAt,
		CreatedAt:   ct.CreatedAt,
	}
	if ct.Ticket != nil {
		resp.TicketType = string(ct.Ticket.TicketType)
		resp.UsageTimeHours = ct.Ticket.UsageTimeHours
	}
	return resp
}

// GroupByType builds the grouped balances response.
func GroupByType(tickets []*domain.CustomerTicket) *CustomerTicketsResponse {
	resp := &CustomerTicketsResponse{
		TimeTickets:   []CustomerTicketResponse{},
		AllDayTickets: []CustomerTicketResponse{},
		HotelTickets:  []CustomerTicketResponse{},
	}

	for _, ct := range tickets {
		if ct.Ticket == nil {
			continue
		}
		entry := FromDomainCustomerTicket(ct)
		switch ct.Ticket.TicketType {
		case domain.TicketTypeTime:
			resp.TimeTickets = append(resp.TimeTickets, entry)
		case domain.TicketTypeAllDay:
			resp.AllDayTickets = append(resp.AllDayTickets, entry)
		case domain.TicketTypeHotel:
			resp.HotelTickets = append(resp.HotelTickets, entry)
		}
	}

	return resp
}
