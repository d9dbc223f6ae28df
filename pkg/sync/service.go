package sync

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/SabNK/client-1c-timesheet/internal/event_bus"
	"github.com/SabNK/client-1c-timesheet/internal/utils"
	"github.com/SabNK/client-1c-timesheet/pkg/employee"
	"github.com/SabNK/client-1c-timesheet/pkg/organization"
	"github.com/SabNK/client-1c-timesheet/pkg/timegroup"
)

type Service interface {
	// Sync refreshes all catalog caches from 1C and records the run.
	Sync(ctx context.Context) (Run, error)
	// LastRun returns the most recent recorded run.
	LastRun(ctx context.Context) (Run, error)
}

type ServiceImpl struct {
	repo          Repository
	timeGroups    timegroup.Service
	organizations organization.Service
	employees     employee.Service
	bus           *event_bus.EventBus
	clock         utils.Clock
}

func NewService(
	repo Repository,
	timeGroups timegroup.Service,
	organizations organization.Service,
	employees employee.Service,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:          repo,
		timeGroups:    timeGroups,
		organizations: organizations,
		employees:     employees,
		bus:           bus,
		clock:         clock,
	}
}

// Sync refreshes catalogs one by one. The first 1C failure aborts the run,
// caches refreshed before the failure keep their new content. The run is
// recorded either way.
func (s *ServiceImpl) Sync(ctx context.Context) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: s.clock.Now(),
		Status:    RunStatusOK,
	}
	log.Infof("Starting catalog sync %s", run.ID)

	var err error
	if run.TimeGroups, err = s.timeGroups.Refresh(ctx); err == nil {
		if run.Organizations, err = s.organizations.Refresh(ctx); err == nil {
			run.Employees, err = s.employees.Refresh(ctx)
		}
	}
	run.FinishedAt = s.clock.Now()
	if err != nil {
		run.Status = RunStatusFailed
		run.Error = err.Error()
	}

	if storeErr := s.repo.StoreRun(ctx, run); storeErr != nil {
		log.Warnf("Failed to record sync run %s: %v", run.ID, storeErr)
	}
	if err != nil {
		log.Errorf("Catalog sync %s failed: %v", run.ID, err)
		return run, err
	}

	log.Infof("Catalog sync %s done: %d time groups, %d organizations, %d employees",
		run.ID, run.TimeGroups, run.Organizations, run.Employees)
	s.publishSynced(ctx, run)
	return run, nil
}

func (s *ServiceImpl) LastRun(ctx context.Context) (Run, error) {
	return s.repo.LastRun(ctx)
}

func (s *ServiceImpl) publishSynced(ctx context.Context, run Run) {
	event := event_bus.NewEvent(ctx, event_bus.CatalogSyncedEvent, event_bus.CatalogSynced{
		RunID:         run.ID,
		TimeGroups:    run.TimeGroups,
		Organizations: run.Organizations,
		Employees:     run.Employees,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("Failed to publish catalog synced event: %v", err)
	}
}
