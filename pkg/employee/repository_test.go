package employee

import (
	"context"
	"testing"

	"github.com/SabNK/client-1c-timesheet/internal/test_utils"
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orgA = odata.Ref("a2edb898-b4db-11eb-7297-000c298d5e5b")
	orgB = odata.Ref("b2edb898-b4db-11eb-7297-000c298d5e5b")
)

func seedEmployees(t *testing.T, repo Repository) {
	t.Helper()
	require.NoError(t, repo.ReplaceAll(context.Background(), []Employee{
		{Ref: odata.Ref("emp-1"), Name: "Боширов Сергей Сергеевич", Person: odata.Ref("per-1"), Organization: orgA},
		{Ref: odata.Ref("emp-2"), Name: "Петров Александр Евгеньевич", Person: odata.Ref("per-2"), Organization: orgA},
		{Ref: odata.Ref("emp-3"), Name: "Иванова Мария Павловна", Person: odata.Ref("per-3"), Organization: orgB},
	}))
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	seedEmployees(t, repo)

	employees, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 3)
	// ordered by name
	assert.Equal(t, "Боширов Сергей Сергеевич", employees[0].Name)
	assert.Equal(t, orgA, employees[0].Organization)
	assert.Equal(t, odata.Ref("per-1"), employees[0].Person)
}

func TestRepositoryImpl_GetByOrganization(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	seedEmployees(t, repo)

	employees, err := repo.GetByOrganization(context.Background(), orgB)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Иванова Мария Павловна", employees[0].Name)
}

func TestRepositoryImpl_FindByRef(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	seedEmployees(t, repo)

	employee, err := repo.FindByRef(context.Background(), odata.Ref("emp-2"))
	require.NoError(t, err)
	assert.Equal(t, "Петров Александр Евгеньевич", employee.Name)

	_, err = repo.FindByRef(context.Background(), odata.Ref("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
