package customers

import (
	"context"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// CustomerRepository persists customers and their pets.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	ListPhonesByKindergarten(ctx context.Context, kindergartenID int64) (map[string]struct{}, error)
	Update(ctx context.Context, customer *domain.Customer) error
	CreatePet(ctx context.Context, pet *domain.CustomerPet) (*domain.CustomerPet, error)
	SoftDeletePet(ctx context.Context, petID int64) error
}

// TransactionManager groups multi-row writes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
