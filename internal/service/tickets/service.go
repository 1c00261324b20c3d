package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	ticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/ticket"
	"github.com/jw-park/petkinder-backend/internal/service/tickets/models"
)

// Service registers tickets to customers and reports their balances.
type Service struct {
	ticketRepo         TicketRepository
	customerRepo       CustomerRepository
	customerTicketRepo CustomerTicketRepository
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewService creates a ticket service.
func NewService(
	ticketRepository TicketRepository,
	customerRepository CustomerRepository,
	customerTicketRepository CustomerTicketRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ticketRepo:         ticketRepository,
		customerRepo:       customerRepository,
		customerTicketRepo: customerTicketRepository,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Register grants a customer a ticket product: the full usage count lands in
// the unused balance, expiry runs from now over the product's usage period,
// and a registration log row commits alongside.
func (s *Service) Register(ctx context.Context, kindergartenID, customerID int64, req *models.RegisterTicketRequest) (*models.CustomerTicketResponse, error) {
	s.logger.Info("RegisterTicket: kindergarten=%d, customer=%d, ticket=%d",
		kindergartenID, customerID, req.TicketID)

	if req.TicketID <= 0 {
		return nil, fmt.Errorf("%w: ticketId must be positive", ErrInvalidInput)
	}

	if _, err := s.getScopedCustomer(ctx, kindergartenID, customerID); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("RegisterTicket: failed to get ticket id=%d: %v", req.TicketID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	if ticket.KindergartenID != kindergartenID {
		return nil, ErrTicketNotFound
	}

	now := s.timeProvider.Now()

	var created *domain.CustomerTicket

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.customerTicketRepo.Create(txCtx, &domain.CustomerTicket{
			CustomerID:  customerID,
			TicketID:    ticket.ID,
			TotalCount:  ticket.UsageCount,
			UsedCount:   0,
			UnusedCount: ticket.UsageCount,
			ExpiresAt:   now.Add(time.Duration(ticket.UsagePeriodDays) * 24 * time.Hour),
		})
		if err != nil {
			s.logger.Error("RegisterTicket: failed to create customer ticket: %v", err)
			return fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}

		if err := s.customerTicketRepo.CreateRegistrationLog(txCtx, &domain.CustomerTicketRegistrationLog{
			CustomerTicketID: created.ID,
			RegisteredCount:  ticket.UsageCount,
		}); err != nil {
			s.logger.Error("RegisterTicket: failed to create registration log: %v", err)
			return fmt.Errorf("%w: Register - registration log error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	created.Ticket = ticket
	s.logger.Info("RegisterTicket: successfully registered customer ticket id=%d (%d units)",
		created.ID, created.TotalCount)

	resp := models.FromDomainCustomerTicket(created)
	return &resp, nil
}

// ListBalances returns the customer's unexpired tickets with balance left,
// grouped by type.
func (s *Service) ListBalances(ctx context.Context, kindergartenID, customerID int64) (*models.CustomerTicketsResponse, error) {
	if _, err := s.getScopedCustomer(ctx, kindergartenID, customerID); err != nil {
		return nil, err
	}

	tickets, err := s.customerTicketRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("ListBalances: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: ListBalances - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	usable := make([]*domain.CustomerTicket, 0, len(tickets))
	for _, ct := range tickets {
		if ct.IsUsable(now) {
			usable = append(usable, ct)
		}
	}

	return models.GroupByType(usable), nil
}

// ListProducts returns the kindergarten's purchasable ticket products.
func (s *Service) ListProducts(ctx context.Context, kindergartenID int64) ([]models.TicketProductResponse, error) {
	tickets, err := s.ticketRepo.ListByKindergarten(ctx, kindergartenID)
	if err != nil {
		s.logger.Error("ListProducts: repository error for kindergarten=%d: %v", kindergartenID, err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	out := make([]models.TicketProductResponse, len(tickets))
	for i, t := range tickets {
		out[i] = models.FromDomainTicket(t)
	}

	return out, nil
}

func (s *Service) getScopedCustomer(ctx context.Context, kindergartenID, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomer: repository error for id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: customer repository error: %v", ErrInternal, err)
	}

	if customer.KindergartenID != kindergartenID {
		return nil, ErrCustomerNotFound
	}

	return customer, nil
}
