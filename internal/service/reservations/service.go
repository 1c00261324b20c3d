package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
	reservationRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/reservation"
	"github.com/jw-park/petkinder-backend/internal/service/reservations/models"
)

// Service serves reservation read paths.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService creates a reservation read service.
func NewService(reservationRepository ReservationRepository, logger Logger) *Service {
	return &Service{reservationRepo: reservationRepository, logger: logger}
}

// GetByID fetches one reservation for the customer. A hotel root resolves its
// chain: the nights are listed and EndAt becomes the stay's checkout.
func (s *Service) GetByID(ctx context.Context, customerID, reservationID int64) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: repository error for id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.CustomerID != customerID {
		s.logger.Warn("GetReservation: reservation id=%d belongs to another customer", reservationID)
		return nil, ErrReservationNotFound
	}

	if !res.IsHotelStayRoot() {
		resp := models.FromDomainReservation(res, nil)
		return &resp, nil
	}

	chain, err := s.reservationRepo.GetDescendants(ctx, res.ID)
	if err != nil {
		s.logger.Error("GetReservation: failed to get chain for root id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: GetByID - chain lookup error: %v", ErrInternal, err)
	}

	leafEnd := res.EndAt
	nights := make([]models.NightResponse, 0, len(chain))
	for _, row := range chain {
		nights = append(nights, models.NightResponse{
			ID:         row.ID,
			ReservedAt: row.ReservedAt.Format(domain.DateFormat),
			Status:     string(row.Status),
			Depth:      row.Depth,
		})
		if !row.IsCanceled() && row.EndAt.After(leafEnd) {
			leafEnd = row.EndAt
		}
	}

	resp := models.FromDomainReservation(res, &leafEnd)
	resp.Nights = nights
	return &resp, nil
}

// ListByCustomer returns the customer's reservation history, hotel stays
// collapsed to one entry with the checkout date resolved through the chain.
func (s *Service) ListByCustomer(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.reservationRepo.ListByCustomerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: ListByCustomer - repository error: %v", ErrInternal, err)
	}

	hotelRoots := make([]int64, 0)
	for _, row := range rows {
		if row.IsHotelStayRoot() {
			hotelRoots = append(hotelRoots, row.ID)
		}
	}

	endAts := make(map[int64]time.Time)
	if len(hotelRoots) > 0 {
		endAts, err = s.reservationRepo.GetStayEndAts(ctx, hotelRoots)
		if err != nil {
			s.logger.Error("ListReservations: failed to resolve stay checkouts: %v", err)
			return nil, fmt.Errorf("%w: ListByCustomer - checkout lookup error: %v", ErrInternal, err)
		}
	}

	out := make([]models.ReservationResponse, len(rows))
	for i, row := range rows {
		var end *time.Time
		if checkout, ok := endAts[row.ID]; ok {
			end = &checkout
		}
		out[i] = models.FromDomainReservation(row, end)
	}

	s.logger.Info("ListReservations: fetched %d reservation(s) for customer=%d", len(out), req.CustomerID)
	return &models.ReservationListResponse{Reservations: out}, nil
}
