package customers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

// petNameSeparator splits the pet column of an import row.
const petNameSeparator = ";"

// ImportCSV bulk-registers customers from a CSV stream with columns
// name,phone_number,pet_names (pets separated by ";"). A header row is
// detected and skipped. Rows are validated and deduplicated, both within the
// file and against the kindergarten's existing phone numbers, then imported
// one customer per transaction, so a bad row skips without aborting the
// batch.
func (s *Service) ImportCSV(ctx context.Context, kindergartenID int64, r io.Reader) (*models.ImportResponse, error) {
	batchID := uuid.New()
	s.logger.Info("ImportCustomers: kindergarten=%d, batch=%s", kindergartenID, batchID)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		s.logger.Warn("ImportCustomers: malformed CSV: %v", err)
		return nil, fmt.Errorf("%w: malformed CSV: %v", ErrInvalidInput, err)
	}

	records = skipHeader(records)
	if len(records) == 0 {
		return nil, ErrEmptyImport
	}

	existingPhones, err := s.customerRepo.ListPhonesByKindergarten(ctx, kindergartenID)
	if err != nil {
		s.logger.Error("ImportCustomers: failed to list existing phones: %v", err)
		return nil, fmt.Errorf("%w: ImportCSV - repository error: %v", ErrInternal, err)
	}

	response := &models.ImportResponse{BatchID: batchID.String()}
	seenPhones := make(map[string]struct{})

	for i, record := range records {
		line := i + 1

		row, err := parseImportRow(record)
		if err != nil {
			response.Skipped++
			response.Errors = append(response.Errors, models.ImportRowError{Line: line, Reason: err.Error()})
			continue
		}

		if _, dup := seenPhones[row.phone]; dup {
			response.Skipped++
			response.Errors = append(response.Errors, models.ImportRowError{
				Line: line, Reason: fmt.Sprintf("duplicate phone number %s in file", row.phone),
			})
			continue
		}
		seenPhones[row.phone] = struct{}{}

		if _, exists := existingPhones[row.phone]; exists {
			response.Skipped++
			response.Errors = append(response.Errors, models.ImportRowError{
				Line: line, Reason: fmt.Sprintf("phone number %s already registered", row.phone),
			})
			continue
		}

		if err := s.importRow(ctx, kindergartenID, row); err != nil {
			s.logger.Warn("ImportCustomers: batch=%s line=%d failed: %v", batchID, line, err)
			response.Skipped++
			response.Errors = append(response.Errors, models.ImportRowError{Line: line, Reason: err.Error()})
			continue
		}

		response.Imported++
	}

	s.logger.Info("ImportCustomers: batch=%s imported=%d skipped=%d",
		batchID, response.Imported, response.Skipped)

	return response, nil
}

type importRow struct {
	name     string
	phone    string
	petNames []string
}

func parseImportRow(record []string) (*importRow, error) {
	if len(record) < 2 {
		return nil, errors.New("row needs at least name and phone number columns")
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return nil, errors.New("name is required")
	}

	phone, err := NormalizePhone(record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid phone number %q", record[1])
	}

	var petNames []string
	if len(record) >= 3 && strings.TrimSpace(record[2]) != "" {
		petNames, err = validatePetNames(strings.Split(record[2], petNameSeparator))
		if err != nil {
			return nil, err
		}
	}

	return &importRow{name: name, phone: phone, petNames: petNames}, nil
}

func (s *Service) importRow(ctx context.Context, kindergartenID int64, row *importRow) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.Create(txCtx, &domain.Customer{
			KindergartenID: kindergartenID,
			Name:           row.name,
			PhoneNumber:    row.phone,
			IsActive:       true,
		})
		if err != nil {
			if errors.Is(err, customerRepo.ErrDuplicatePhoneNumber) {
				return fmt.Errorf("phone number %s already registered", row.phone)
			}
			return fmt.Errorf("create customer: %v", err)
		}

		for _, petName := range row.petNames {
			if _, err := s.customerRepo.CreatePet(txCtx, &domain.CustomerPet{
				CustomerID: customer.ID,
				Name:       petName,
			}); err != nil {
				return fmt.Errorf("create pet %q: %v", petName, err)
			}
		}

		return nil
	})
}

// skipHeader drops a leading header row. The heuristic: a first row whose
// phone column does not normalize to a valid number is a header.
func skipHeader(records [][]string) [][]string {
	if len(records) == 0 || len(records[0]) < 2 {
		return records
	}
	if _, err := NormalizePhone(records[0][1]); err != nil {
		return records[1:]
	}
	return records
}
