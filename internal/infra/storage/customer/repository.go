package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/psqlbuilder"
)

// Unique constraint names from the schema; violations are translated into
// sentinel errors so services can map them to stable API codes.
const (
	constraintCustomerPhone = "customers_kindergarten_phone_key"
	constraintPetName       = "customer_pets_active_name_key"
)

// Repository persists customers and their pets.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a customer repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a customer. Phone numbers are unique per kindergarten.
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"kindergarten_id",
			"name",
			"phone_number",
			"is_active",
		).
		Values(
			customer.KindergartenID,
			customer.Name,
			customer.PhoneNumber,
			customer.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err, constraintCustomerPhone) {
		return nil, ErrDuplicatePhoneNumber
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return customer, nil
}

// GetByID fetches a customer together with all of its pets (including
// soft-deleted ones; callers filter through domain helpers).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"kindergarten_id",
		"name",
		"phone_number",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var customer domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.KindergartenID,
		&customer.Name,
		&customer.PhoneNumber,
		&customer.IsActive,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	pets, err := r.getPets(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	customer.Pets = pets

	return &customer, nil
}

// GetByPhone fetches a customer of a kindergarten by exact phone number.
func (r *Repository) GetByPhone(ctx context.Context, kindergartenID int64, phone string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("customers").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID, "phone_number": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan customer id: %v", ErrScanRow, err)
	}

	return r.GetByID(ctx, id)
}

// ListPhonesByKindergarten returns every phone number already registered to
// the kindergarten. Used by the CSV import to de-duplicate in one round trip.
func (r *Repository) ListPhonesByKindergarten(ctx context.Context, kindergartenID int64) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("phone_number").
		From("customers").
		Where(squirrel.Eq{"kindergarten_id": kindergartenID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPhonesByKindergarten - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPhonesByKindergarten - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	phones := make(map[string]struct{})
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("%w: ListPhonesByKindergarten - scan phone: %v", ErrScanRow, err)
		}
		phones[phone] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPhonesByKindergarten - rows error: %v", ErrScanRow, err)
	}

	return phones, nil
}

// Update rewrites the customer's mutable fields.
func (r *Repository) Update(ctx context.Context, customer *domain.Customer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("name", customer.Name).
		Set("phone_number", customer.PhoneNumber).
		Set("is_active", customer.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": customer.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isUniqueViolation(err, constraintCustomerPhone) {
		return ErrDuplicatePhoneNumber
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// CreatePet inserts a pet. A partial unique index enforces name uniqueness
// among the customer's non-deleted pets.
func (r *Repository) CreatePet(ctx context.Context, pet *domain.CustomerPet) (*domain.CustomerPet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_pets").
		Columns(
			"customer_id",
			"name",
			"is_deleted",
		).
		Values(
			pet.CustomerID,
			pet.Name,
			false,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePet - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pet.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err, constraintPetName) {
		return nil, ErrDuplicatePetName
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePet - execute insert: %v", ErrExecQuery, err)
	}

	pet.CreatedAt = createdAt.Time
	pet.UpdatedAt = updatedAt.Time

	return pet, nil
}

// SoftDeletePet marks a pet deleted, freeing its name for reuse.
func (r *Repository) SoftDeletePet(ctx context.Context, petID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customer_pets").
		Set("is_deleted", true).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": petID, "is_deleted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDeletePet - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDeletePet - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDeletePet - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// getPets loads every pet row of a customer ordered by creation.
func (r *Repository) getPets(ctx context.Context, executor DBExecutor, customerID int64) ([]*domain.CustomerPet, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"name",
		"is_deleted",
		"deleted_at",
		"created_at",
		"updated_at",
	).
		From("customer_pets").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPets - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPets - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pets := make([]*domain.CustomerPet, 0)
	for rows.Next() {
		var pet domain.CustomerPet
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&pet.ID,
			&pet.CustomerID,
			&pet.Name,
			&pet.IsDeleted,
			&pet.DeletedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getPets - scan row: %v", ErrScanRow, err)
		}

		pet.CreatedAt = createdAt.Time
		pet.UpdatedAt = updatedAt.Time
		pets = append(pets, &pet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPets - rows error: %v", ErrScanRow, err)
	}

	return pets, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
