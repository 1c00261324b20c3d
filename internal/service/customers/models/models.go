package models

import (
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// Request models

// CreateCustomerRequest creates a customer with optional initial pets.
type CreateCustomerRequest struct {
	Name        string   `json:"name"`
	PhoneNumber string   `json:"phoneNumber"`
	PetNames    []string `json:"petNames,omitempty"`
}

// UpdateCustomerRequest updates a customer's profile and pet roster. Pets in
// AddPets are created; ids in RemovePetIDs are soft-deleted.
type UpdateCustomerRequest struct {
	Name         *string  `json:"name,omitempty"`
	PhoneNumber  *string  `json:"phoneNumber,omitempty"`
	AddPets      []string `json:"addPets,omitempty"`
	RemovePetIDs []int64  `json:"removePetIds,omitempty"`
}

// Response models

// PetResponse is one active pet.
type PetResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CustomerResponse is a customer with their active pets.
type CustomerResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	PhoneNumber string        `json:"phoneNumber"`
	Pets        []PetResponse `json:"pets"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ImportRowError is one rejected CSV row.
type ImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResponse summarizes a CSV import.
type ImportResponse struct {
	BatchID  string           `json:"batchId"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// FromDomainCustomer converts a domain customer.
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	active := c.ActivePets()
	pets := make([]PetResponse, len(active))
	for i, p := range active {
		pets[i] = PetResponse{ID: p.ID, Name: p.Name}
	}

	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Pets:        pets,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
