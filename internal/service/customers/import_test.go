package customers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

func TestImportCSV(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	csvBody := strings.Join([]string{
		"name,phone_number,pet_names",
		"Jiwoo,010-1234-5678,Bori;Choco",
		"Minji,01098765432,",
		"NoPhone,,",
		"Jiwoo Again,010-1234-5678,Mong", // duplicate within the file
	}, "\n")

	resp, err := svc.ImportCSV(context.Background(), 1, strings.NewReader(csvBody))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 2, resp.Skipped)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, 3, resp.Errors[0].Line)
	assert.Equal(t, 4, resp.Errors[1].Line)
	assert.Contains(t, resp.Errors[1].Reason, "duplicate phone number")

	// The first customer got both pets.
	first := repo.customers[1]
	require.NotNil(t, first)
	assert.Equal(t, "Jiwoo", first.Name)
	assert.Len(t, first.Pets, 2)
}

func TestImportCSV_SkipsAlreadyRegisteredPhones(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	_, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		Name: "Jiwoo", PhoneNumber: "01012345678",
	})
	require.NoError(t, err)

	resp, err := svc.ImportCSV(context.Background(), 1, strings.NewReader("Jiwoo,010-1234-5678,Bori\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Reason, "already registered")
}

func TestImportCSV_NoHeader(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newServiceUnderTest(repo)

	resp, err := svc.ImportCSV(context.Background(), 1, strings.NewReader("Jiwoo,01012345678,Bori\n"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)
}

func TestImportCSV_Empty(t *testing.T) {
	svc := newServiceUnderTest(newFakeCustomerRepo())

	_, err := svc.ImportCSV(context.Background(), 1, strings.NewReader("name,phone_number\n"))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = svc.ImportCSV(context.Background(), 1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImport)
}
