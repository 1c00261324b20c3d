package domain

import "time"

// Customer belongs to one kindergarten and owns pets and tickets.
// Phone numbers are unique within a kindergarten.
type Customer struct {
	ID             int64
	KindergartenID int64
	Name           string
	PhoneNumber    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Pets []*CustomerPet
}

// ActivePets returns the customer's non-deleted pets.
func (c *Customer) ActivePets() []*CustomerPet {
	pets := make([]*CustomerPet, 0, len(c.Pets))
	for _, p := range c.Pets {
		if !p.IsDeleted {
			pets = append(pets, p)
		}
	}
	return pets
}

// OwnsPet returns true if petID is one of the customer's non-deleted pets.
func (c *Customer) OwnsPet(petID int64) bool {
	for _, p := range c.Pets {
		if p.ID == petID && !p.IsDeleted {
			return true
		}
	}
	return false
}

// CustomerPet is a customer's pet. Pets are soft-deleted so historical
// reservations keep their reference; a name must be unique among the
// customer's non-deleted pets.
type CustomerPet struct {
	ID         int64
	CustomerID int64
	Name       string
	IsDeleted  bool
	DeletedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
