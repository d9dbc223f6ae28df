package timegroup

import (
	"context"
	"testing"

	"github.com/SabNK/client-1c-timesheet/internal/test_utils"
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryImpl_ReplaceAllAndGetAll(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := repo.ReplaceAll(ctx, []TimeGroup{
		{Ref: odata.Ref("ref-2"), Name: "Отпуск", Letter: "ОТ", Digit: "09"},
		{Ref: odata.Ref("ref-1"), Name: "Рабочее время", Letter: "Я", Digit: "01"},
	})
	require.NoError(t, err)

	timeGroups, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, timeGroups, 2)
	// ordered by name
	assert.Equal(t, "Отпуск", timeGroups[0].Name)
	assert.Equal(t, "Рабочее время", timeGroups[1].Name)

	// a second replace drops the previous content
	err = repo.ReplaceAll(ctx, []TimeGroup{
		{Ref: odata.Ref("ref-3"), Name: "Командировка", Letter: "К", Digit: "06"},
	})
	require.NoError(t, err)

	timeGroups, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, timeGroups, 1)
	assert.Equal(t, odata.Ref("ref-3"), timeGroups[0].Ref)
}

func TestRepositoryImpl_FindByRef(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []TimeGroup{
		{Ref: odata.Ref("ref-1"), Name: "Рабочее время", Letter: "Я", Digit: "01"},
	}))

	timeGroup, err := repo.FindByRef(ctx, odata.Ref("ref-1"))
	require.NoError(t, err)
	assert.Equal(t, "Рабочее время", timeGroup.Name)

	_, err = repo.FindByRef(ctx, odata.Ref("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
