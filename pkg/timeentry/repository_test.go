package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/SabNK/client-1c-timesheet/internal/test_utils"
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryImpl_StoreAndFind(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2021, time.June, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	id, err := repo.Store(ctx, TimeEntry{
		Employee:    odata.Ref("emp-1"),
		Description: "монтаж оптики",
		Start:       start,
		End:         &end,
		TimeGroup:   odata.Ref("tg-1"),
	})
	require.NoError(t, err)

	entry, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, odata.Ref("emp-1"), entry.Employee)
	assert.Equal(t, "монтаж оптики", entry.Description)
	assert.True(t, entry.Start.Equal(start))
	require.NotNil(t, entry.End)
	assert.True(t, entry.End.Equal(end))
	assert.Equal(t, odata.Ref("tg-1"), entry.TimeGroup)
}

func TestRepositoryImpl_RunningEntryHasNoEnd(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, TimeEntry{
		Employee: odata.Ref("emp-1"),
		Start:    time.Date(2021, time.June, 14, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	entry, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, entry.IsRunning())
}

func TestRepositoryImpl_GetFinishedBetween(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	end := time.Date(2021, time.June, 14, 18, 0, 0, 0, time.UTC)
	store := func(start time.Time, finished bool) {
		entry := TimeEntry{Employee: odata.Ref("emp-1"), Start: start}
		if finished {
			entry.End = &end
		}
		_, err := repo.Store(ctx, entry)
		require.NoError(t, err)
	}
	store(time.Date(2021, time.May, 31, 9, 0, 0, 0, time.UTC), true)  // before range
	store(time.Date(2021, time.June, 14, 9, 0, 0, 0, time.UTC), true) // in range
	store(time.Date(2021, time.June, 20, 9, 0, 0, 0, time.UTC), false)
	store(time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC), true) // range end is exclusive

	entries, err := repo.GetFinishedBetween(ctx,
		time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 14, entries[0].Start.Day())
}

func TestRepositoryImpl_UpdateAndDelete(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, TimeEntry{
		Employee: odata.Ref("emp-1"),
		Start:    time.Date(2021, time.June, 14, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	entry, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	entry.Description = "сварка муфт"
	ok, err := repo.Update(ctx, entry)
	require.NoError(t, err)
	assert.True(t, ok)

	updated, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "сварка муфт", updated.Description)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
