package create_reservation

import "fmt"

// validateRequest checks the request shape before any repository access.
// Type-specific rules live in the strategies.
func validateRequest(req *Request) error {
	if req.KindergartenID <= 0 {
		return fmt.Errorf("%w: kindergartenID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}

	if req.TicketID <= 0 {
		return fmt.Errorf("%w: ticketID must be positive", ErrInvalidInput)
	}

	if req.ReservedAt.IsZero() {
		return fmt.Errorf("%w: reservedAt is required", ErrInvalidInput)
	}

	if req.AttendanceTime != nil {
		if err := req.AttendanceTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid attendanceTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.EndAt != nil && req.EndAt.IsZero() {
		return fmt.Errorf("%w: endAt must be a valid date", ErrInvalidInput)
	}

	return nil
}
