package dayoffs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
	calendarRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/calendar"
	"github.com/jw-park/petkinder-backend/internal/service/dayoffs/models"
)

// Service manages kindergarten day-offs.
type Service struct {
	calendarRepo CalendarRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a day-off service.
func NewService(calendarRepository CalendarRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepository,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create blocks a date for the kindergarten.
func (s *Service) Create(ctx context.Context, kindergartenID int64, req *models.CreateDayOffRequest) (*models.DayOffResponse, error) {
	s.logger.Info("CreateDayOff: kindergarten=%d, date=%s", kindergartenID, req.DayOffAt)

	date, err := time.Parse(domain.DateFormat, req.DayOffAt)
	if err != nil {
		return nil, fmt.Errorf("%w: dayOffAt must be a YYYY-MM-DD date", ErrInvalidInput)
	}

	created, err := s.calendarRepo.CreateDayOff(ctx, &domain.DayOff{
		KindergartenID: kindergartenID,
		DayOffAt:       date,
	})
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicateDayOff) {
			return nil, ErrDuplicateDayOff
		}
		s.logger.Error("CreateDayOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateDayOff: successfully created day off id=%d", created.ID)
	return models.FromDomainDayOff(created), nil
}

// Delete unblocks a date. The pre-delete snapshot lands in the audit table
// inside the same transaction as the delete.
func (s *Service) Delete(ctx context.Context, kindergartenID, dayOffID int64) error {
	s.logger.Info("DeleteDayOff: kindergarten=%d, dayOff=%d", kindergartenID, dayOffID)

	dayOff, err := s.calendarRepo.GetDayOffByID(ctx, dayOffID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDayOffNotFound) {
			return ErrDayOffNotFound
		}
		s.logger.Error("DeleteDayOff: repository error for id=%d: %v", dayOffID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if dayOff.KindergartenID != kindergartenID {
		s.logger.Warn("DeleteDayOff: day off id=%d belongs to another kindergarten", dayOffID)
		return ErrDayOffNotFound
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.calendarRepo.DeleteDayOff(txCtx, dayOff); err != nil {
			if errors.Is(err, calendarRepo.ErrDayOffNotFound) {
				return ErrDayOffNotFound
			}
			s.logger.Error("DeleteDayOff: failed to delete id=%d: %v", dayOffID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("DeleteDayOff: successfully deleted day off id=%d", dayOffID)
	return nil
}
