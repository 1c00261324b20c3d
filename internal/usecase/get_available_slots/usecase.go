package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/domain"
	kindergartenRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/kindergarten"
)

// UseCase lists the attendance slots for a ticket duration. The same slot
// generation backs the attendance-time validation on reservation creation.
type UseCase struct {
	kindergartenRepo KindergartenRepository
	logger           Logger
}

// NewUseCase creates the use case.
func NewUseCase(kindergartenRepository KindergartenRepository, logger Logger) *UseCase {
	return &UseCase{
		kindergartenRepo: kindergartenRepository,
		logger:           logger,
	}
}

// Execute generates the slots.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.KindergartenID <= 0 {
		return nil, fmt.Errorf("%w: kindergartenID must be positive", ErrInvalidInput)
	}
	if req.UsageTimeHours < domain.MinUsageTimeHours || req.UsageTimeHours > domain.MaxUsageTimeHours {
		return nil, fmt.Errorf("%w: usageTime must be between %d and %d hours",
			ErrInvalidInput, domain.MinUsageTimeHours, domain.MaxUsageTimeHours)
	}

	kindergarten, err := uc.kindergartenRepo.GetByID(ctx, req.KindergartenID)
	if err != nil {
		if errors.Is(err, kindergartenRepo.ErrKindergartenNotFound) {
			return nil, ErrKindergartenNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get kindergarten id=%d: %v", req.KindergartenID, err)
		return nil, fmt.Errorf("%w: failed to get kindergarten: %v", ErrInternal, err)
	}

	slots, err := availability.Timeslots(
		kindergarten.BusinessStartTime,
		kindergarten.BusinessEndTime,
		req.UsageTimeHours,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	return &Response{UsageTimeHours: req.UsageTimeHours, Slots: slots}, nil
}
