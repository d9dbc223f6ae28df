package timegroup

import (
	"context"
	"errors"
	"testing"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh_ReplacesCache(t *testing.T) {
	repo := NewStubRepository()
	client := onec.NewClientStub()
	service := NewService(repo, client)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []TimeGroup{
		{Ref: odata.Ref("stale-ref"), Name: "Устаревшая запись"},
	}))

	client.SetTimeGroups([]onec.TimeGroup{
		{Ref: odata.Ref("ref-1"), Name: "Рабочее время", Letter: "Я", Digit: "01"},
		{Ref: odata.Ref("ref-2"), Name: "Отпуск", Letter: "ОТ", Digit: "09"},
	})

	count, err := service.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	cached, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)

	workTime, err := repo.FindByRef(ctx, odata.Ref("ref-1"))
	require.NoError(t, err)
	assert.Equal(t, "Я", workTime.Letter)
	assert.Equal(t, "01", workTime.Digit)

	_, err = repo.FindByRef(ctx, odata.Ref("stale-ref"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefresh_KeepsCacheWhen1CFails(t *testing.T) {
	repo := NewStubRepository()
	client := onec.NewClientStub()
	service := NewService(repo, client)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []TimeGroup{
		{Ref: odata.Ref("ref-1"), Name: "Рабочее время"},
	}))
	client.SetError(errors.New("1C is down"))

	_, err := service.Refresh(ctx)
	require.Error(t, err)

	cached, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}
