package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/SabNK/client-1c-timesheet/internal/utils"
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRef = odata.Ref("11e58c0f-b4db-11eb-7297-000c298d5e5b")

func setupServiceTest() (*ServiceImpl, *StubRepository, *utils.MockClock) {
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2021, time.June, 15, 14, 0, 0, 0, time.Local)}
	return NewService(repo, clock), repo, clock
}

func TestCreate(t *testing.T) {
	t.Run("stores a finished entry", func(t *testing.T) {
		service, _, clock := setupServiceTest()
		start := clock.Now().Add(-2 * time.Hour)
		end := clock.Now()

		created, err := service.Create(context.Background(), TimeEntry{
			Employee:    employeeRef,
			Description: "монтаж оптики",
			Start:       start,
			End:         &end,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 2*time.Hour, created.Duration())

		stored, err := service.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("starts a running entry at the current time when start is omitted", func(t *testing.T) {
		service, _, clock := setupServiceTest()

		created, err := service.Create(context.Background(), TimeEntry{Employee: employeeRef})
		require.NoError(t, err)
		assert.Equal(t, clock.Now(), created.Start)
		assert.True(t, created.IsRunning())
	})

	t.Run("rejects an entry without employee", func(t *testing.T) {
		service, _, _ := setupServiceTest()

		_, err := service.Create(context.Background(), TimeEntry{Description: "без сотрудника"})
		assert.ErrorIs(t, err, ErrEmployeeRequired)
	})

	t.Run("rejects an entry ending before it starts", func(t *testing.T) {
		service, _, clock := setupServiceTest()
		end := clock.Now().Add(-1 * time.Hour)

		_, err := service.Create(context.Background(), TimeEntry{
			Employee: employeeRef,
			Start:    clock.Now(),
			End:      &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestStop(t *testing.T) {
	t.Run("finishes a running entry at the current time", func(t *testing.T) {
		service, _, clock := setupServiceTest()
		created, err := service.Create(context.Background(), TimeEntry{Employee: employeeRef})
		require.NoError(t, err)

		clock.SetNow(clock.Now().Add(90 * time.Minute))
		stopped, err := service.Stop(context.Background(), created.ID)
		require.NoError(t, err)
		assert.False(t, stopped.IsRunning())
		assert.Equal(t, 90*time.Minute, stopped.Duration())
	})

	t.Run("refuses to stop a finished entry", func(t *testing.T) {
		service, _, clock := setupServiceTest()
		end := clock.Now()
		created, err := service.Create(context.Background(), TimeEntry{
			Employee: employeeRef,
			Start:    clock.Now().Add(-1 * time.Hour),
			End:      &end,
		})
		require.NoError(t, err)

		_, err = service.Stop(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrAlreadyFinished)
	})

	t.Run("unknown entry", func(t *testing.T) {
		service, _, _ := setupServiceTest()
		_, err := service.Stop(context.Background(), 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListFinishedBetween(t *testing.T) {
	service, repo, clock := setupServiceTest()
	monthStart := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.Local)
	monthEnd := time.Date(2021, time.July, 1, 0, 0, 0, 0, time.Local)

	finished := clock.Now()
	mustStore := func(entry TimeEntry) {
		_, err := repo.Store(context.Background(), entry)
		require.NoError(t, err)
	}
	mustStore(TimeEntry{Employee: employeeRef, Start: time.Date(2021, time.June, 14, 9, 0, 0, 0, time.Local), End: &finished})
	mustStore(TimeEntry{Employee: employeeRef, Start: time.Date(2021, time.May, 31, 9, 0, 0, 0, time.Local), End: &finished})
	mustStore(TimeEntry{Employee: employeeRef, Start: time.Date(2021, time.June, 20, 9, 0, 0, 0, time.Local)}) // running

	entries, err := service.ListFinishedBetween(context.Background(), monthStart, monthEnd)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 14, entries[0].Start.Day())
}
