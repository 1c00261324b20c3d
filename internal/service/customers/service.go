package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

// phonePattern matches Korean mobile numbers after normalization (digits
// only, e.g. 01012345678).
var phonePattern = regexp.MustCompile(`^01[016789]\d{7,8}$`)

// Service manages customers and their pet rosters.
type Service struct {
	customerRepo CustomerRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a customer service.
func NewService(customerRepository CustomerRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepository,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create registers a customer with their initial pets. The customer row and
// pet rows commit together.
func (s *Service) Create(ctx context.Context, kindergartenID int64, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("CreateCustomer: kindergarten=%d, name=%s", kindergartenID, req.Name)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	petNames, err := validatePetNames(req.PetNames)
	if err != nil {
		return nil, err
	}

	var created *domain.Customer

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.Create(txCtx, &domain.Customer{
			KindergartenID: kindergartenID,
			Name:           name,
			PhoneNumber:    phone,
			IsActive:       true,
		})
		if err != nil {
			if errors.Is(err, customerRepo.ErrDuplicatePhoneNumber) {
				return ErrDuplicatePhoneNumber
			}
			s.logger.Error("CreateCustomer: failed to create customer: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		for _, petName := range petNames {
			pet, err := s.customerRepo.CreatePet(txCtx, &domain.CustomerPet{
				CustomerID: customer.ID,
				Name:       petName,
			})
			if err != nil {
				if errors.Is(err, customerRepo.ErrDuplicatePetName) {
					return ErrDuplicatePetName
				}
				s.logger.Error("CreateCustomer: failed to create pet %s: %v", petName, err)
				return fmt.Errorf("%w: Create - pet repository error: %v", ErrInternal, err)
			}
			customer.Pets = append(customer.Pets, pet)
		}

		created = customer
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateCustomer: successfully created customer id=%d with %d pet(s)",
		created.ID, len(created.Pets))

	return models.FromDomainCustomer(created), nil
}

// GetByID fetches a customer with their active pets, scoped to the
// kindergarten.
func (s *Service) GetByID(ctx context.Context, kindergartenID, customerID int64) (*models.CustomerResponse, error) {
	customer, err := s.getScoped(ctx, kindergartenID, customerID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCustomer(customer), nil
}

// Update changes the customer's profile and pet roster: added pets are
// created, removed pets are soft-deleted so history keeps its references.
func (s *Service) Update(ctx context.Context, kindergartenID, customerID int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("UpdateCustomer: kindergarten=%d, customer=%d", kindergartenID, customerID)

	customer, err := s.getScoped(ctx, kindergartenID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		customer.Name = name
	}

	if req.PhoneNumber != nil {
		phone, err := NormalizePhone(*req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		customer.PhoneNumber = phone
	}

	addPets, err := validatePetNames(req.AddPets)
	if err != nil {
		return nil, err
	}

	for _, petID := range req.RemovePetIDs {
		if !customer.OwnsPet(petID) {
			return nil, ErrPetNotFound
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.Update(txCtx, customer); err != nil {
			if errors.Is(err, customerRepo.ErrDuplicatePhoneNumber) {
				return ErrDuplicatePhoneNumber
			}
			s.logger.Error("UpdateCustomer: failed to update customer id=%d: %v", customerID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		for _, petName := range addPets {
			if _, err := s.customerRepo.CreatePet(txCtx, &domain.CustomerPet{
				CustomerID: customer.ID,
				Name:       petName,
			}); err != nil {
				if errors.Is(err, customerRepo.ErrDuplicatePetName) {
					return ErrDuplicatePetName
				}
				s.logger.Error("UpdateCustomer: failed to create pet %s: %v", petName, err)
				return fmt.Errorf("%w: Update - pet repository error: %v", ErrInternal, err)
			}
		}

		for _, petID := range req.RemovePetIDs {
			if err := s.customerRepo.SoftDeletePet(txCtx, petID); err != nil {
				if errors.Is(err, customerRepo.ErrPetNotFound) {
					return ErrPetNotFound
				}
				s.logger.Error("UpdateCustomer: failed to delete pet id=%d: %v", petID, err)
				return fmt.Errorf("%w: Update - pet repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	updated, err := s.getScoped(ctx, kindergartenID, customerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateCustomer: successfully updated customer id=%d", customerID)
	return models.FromDomainCustomer(updated), nil
}

func (s *Service) getScoped(ctx context.Context, kindergartenID, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomer: repository error for id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if customer.KindergartenID != kindergartenID {
		s.logger.Warn("GetCustomer: customer id=%d belongs to another kindergarten", customerID)
		return nil, ErrCustomerNotFound
	}

	return customer, nil
}

// NormalizePhone strips separators from a phone number and validates the
// result against the mobile number pattern.
func NormalizePhone(raw string) (string, error) {
	phone := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if !phonePattern.MatchString(phone) {
		return "", fmt.Errorf("%w: invalid phone number %q", ErrInvalidInput, raw)
	}

	return phone, nil
}

func validatePetNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: pet name must not be empty", ErrInvalidInput)
		}
		if len([]rune(name)) > domain.MaxPetNameLength {
			return nil, fmt.Errorf("%w: pet name %q is too long", ErrInvalidInput, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate pet name %q", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out, nil
}
