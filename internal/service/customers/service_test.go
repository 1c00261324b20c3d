package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/domain"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCustomerRepo struct {
	customers   map[int64]*domain.Customer
	nextID      int64
	nextPetID   int64
	phones      map[string]struct{}
	createErr   error
	petErr      error
	deletedPets []int64
	updated     *domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[int64]*domain.Customer),
		phones:    make(map[string]struct{}),
	}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, dup := f.phones[customer.PhoneNumber]; dup {
		return nil, customerRepo.ErrDuplicatePhoneNumber
	}
	f.nextID++
	customer.ID = f.nextID
	f.phones[customer.PhoneNumber] = struct{}{}
	stored := *customer
	f.customers[customer.ID] = &stored
	return customer, nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) ListPhonesByKindergarten(ctx context.Context, kindergartenID int64) (map[string]struct{}, error) {
	return f.phones, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	f.updated = customer
	return nil
}

func (f *fakeCustomerRepo) CreatePet(ctx context.Context, pet *domain.CustomerPet) (*domain.CustomerPet, error) {
	if f.petErr != nil {
		return nil, f.petErr
	}
	f.nextPetID++
	pet.ID = f.nextPetID
	if owner, ok := f.customers[pet.CustomerID]; ok {
		owner.Pets = append(owner.Pets, pet)
	}
	return pet, nil
}

func (f *fakeCustomerRepo) SoftDeletePet(ctx context.Context, petID int64) error {
	f.deletedPets = append(f.deletedPets, petID)
	return nil
}

func newServiceUnderTest(repo *fakeCustomerRepo) *Service {
	return NewService(repo, passthroughTx{}, noopLogger{})
}

func TestCreate(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	resp, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name:        " Jiwoo ",
		PhoneNumber: "010-1234-5678",
		PetNames:    []string{"Bori", "Choco"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Jiwoo", resp.Name)
	assert.Equal(t, "01012345678", resp.PhoneNumber, "phone is stored normalized")
	require.Len(t, resp.Pets, 2)
	assert.Equal(t, "Bori", resp.Pets[0].Name)
}

func TestCreate_Validation(t *testing.T) {
	svc := newServiceUnderTest(newFakeCustomerRepo())

	tests := []struct {
		name string
		req  *models.CreateCustomerRequest
	}{
		{"empty name", &models.CreateCustomerRequest{Name: "  ", PhoneNumber: "01012345678"}},
		{"bad phone", &models.CreateCustomerRequest{Name: "Jiwoo", PhoneNumber: "02-123-4567"}},
		{"empty pet name", &models.CreateCustomerRequest{Name: "Jiwoo", PhoneNumber: "01012345678", PetNames: []string{" "}}},
		{"duplicate pet names", &models.CreateCustomerRequest{Name: "Jiwoo", PhoneNumber: "01012345678", PetNames: []string{"Bori", "Bori"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicatePhone(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	_, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Jiwoo", PhoneNumber: "01012345678",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Minji", PhoneNumber: "010 1234 5678",
	})
	assert.ErrorIs(t, err, ErrDuplicatePhoneNumber)
}

func TestUpdate(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Jiwoo", PhoneNumber: "01012345678", PetNames: []string{"Bori"},
	})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), 1, created.ID, &models.UpdateCustomerRequest{
		Name:         ptr.Ptr("Minji"),
		AddPets:      []string{"Choco"},
		RemovePetIDs: []int64{created.Pets[0].ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "Minji", resp.Name)
	assert.Equal(t, []int64{created.Pets[0].ID}, repo.deletedPets)
	require.NotNil(t, repo.updated)
}

func TestUpdate_RemoveUnknownPet(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Jiwoo", PhoneNumber: "01012345678",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 1, created.ID, &models.UpdateCustomerRequest{
		RemovePetIDs: []int64{999},
	})
	assert.ErrorIs(t, err, ErrPetNotFound)
	assert.Empty(t, repo.deletedPets)
}

func TestGetByID_TenantScoping(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Jiwoo", PhoneNumber: "01012345678",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "010-1234-5678", want: "01012345678"},
		{input: "010 1234 5678", want: "01012345678"},
		{input: "01098765432", want: "01098765432"},
		{input: "0101234567", want: "0101234567"}, // 10-digit legacy numbers
		{input: "02-123-4567", wantErr: true},
		{input: "010-12-34", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
