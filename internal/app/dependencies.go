package app

import (
	"database/sql"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SabNK/client-1c-timesheet/internal/config"
	"github.com/SabNK/client-1c-timesheet/internal/event_bus"
	"github.com/SabNK/client-1c-timesheet/internal/utils"
	"github.com/SabNK/client-1c-timesheet/pkg/employee"
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	"github.com/SabNK/client-1c-timesheet/pkg/organization"
	"github.com/SabNK/client-1c-timesheet/pkg/sync"
	"github.com/SabNK/client-1c-timesheet/pkg/timeentry"
	"github.com/SabNK/client-1c-timesheet/pkg/timegroup"
	"github.com/SabNK/client-1c-timesheet/pkg/timesheet"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	OneCClient onec.Client

	TimeGroupRepo    timegroup.Repository
	TimeGroupService timegroup.Service
	TimeGroupHandler *timegroup.Handler

	OrganizationRepo    organization.Repository
	OrganizationService organization.Service
	OrganizationHandler *organization.Handler

	EmployeeRepo    employee.Repository
	EmployeeService employee.Service
	EmployeeHandler *employee.Handler

	TimeEntryRepo    timeentry.Repository
	TimeEntryService timeentry.Service
	TimeEntryHandler *timeentry.Handler

	TimeSheetRepo    timesheet.Repository
	TimeSheetService timesheet.Service
	TimeSheetHandler *timesheet.Handler

	SyncRepo    sync.Repository
	SyncService sync.Service
	SyncHandler *sync.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	api := odata.NewClient(cfg.OneC.URL, cfg.OneC.Username, cfg.OneC.Password).
		WithRateLimit(cfg.OneC.RateLimit).
		WithTimeout(time.Duration(cfg.OneC.Timeout) * time.Second)
	deps.OneCClient = onec.NewClient(api)

	deps.TimeGroupRepo = timegroup.NewRepository(db)
	deps.TimeGroupService = timegroup.NewService(deps.TimeGroupRepo, deps.OneCClient)
	deps.TimeGroupHandler = timegroup.NewHandler(deps.TimeGroupService)

	deps.OrganizationRepo = organization.NewRepository(db)
	deps.OrganizationService = organization.NewService(deps.OrganizationRepo, deps.OneCClient)
	deps.OrganizationHandler = organization.NewHandler(deps.OrganizationService)

	deps.EmployeeRepo = employee.NewRepository(db)
	deps.EmployeeService = employee.NewService(deps.EmployeeRepo, deps.OneCClient)
	deps.EmployeeHandler = employee.NewHandler(deps.EmployeeService)

	deps.TimeEntryRepo = timeentry.NewRepository(db)
	deps.TimeEntryService = timeentry.NewService(deps.TimeEntryRepo, deps.Clock)
	deps.TimeEntryHandler = timeentry.NewHandler(deps.TimeEntryService)

	deps.TimeSheetRepo = timesheet.NewRepository(db)
	deps.TimeSheetService = timesheet.NewService(deps.TimeSheetRepo, deps.TimeEntryService,
		deps.OneCClient, deps.EventBus, deps.Clock)
	deps.TimeSheetHandler = timesheet.NewHandler(deps.TimeSheetService)

	deps.SyncRepo = sync.NewRepository(db)
	deps.SyncService = sync.NewService(deps.SyncRepo, deps.TimeGroupService,
		deps.OrganizationService, deps.EmployeeService, deps.EventBus, deps.Clock)
	deps.SyncHandler = sync.NewHandler(deps.SyncService)

	subscribeEventLog(deps.EventBus)

	return deps
}

// subscribeEventLog logs domain events for operators tailing the server log.
func subscribeEventLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.CatalogSynced](bus, event_bus.CatalogSyncedEvent,
		func(e event_bus.EventT[event_bus.CatalogSynced]) error {
			log.Infof("Catalogs synced (run %s): %d time groups, %d organizations, %d employees",
				e.Data.RunID, e.Data.TimeGroups, e.Data.Organizations, e.Data.Employees)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.TimeSheetSubmitted](bus, event_bus.TimeSheetSubmittedEvent,
		func(e event_bus.EventT[event_bus.TimeSheetSubmitted]) error {
			log.Infof("Timesheet draft %s registered in 1C as %s", e.Data.DraftID, e.Data.Number)
			return nil
		})
}
