package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Catalogs cached from 1C
	r.HandleFunc("/api/timegroup", deps.TimeGroupHandler.List).Methods("GET")
	r.HandleFunc("/api/organization", deps.OrganizationHandler.List).Methods("GET")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.List).Methods("GET")

	// Catalog synchronization
	r.HandleFunc("/api/sync", deps.SyncHandler.Sync).Methods("POST")
	r.HandleFunc("/api/sync/last", deps.SyncHandler.LastRun).Methods("GET")

	// Time entries
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.Create).Methods("POST")
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.List).Methods("GET")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/timeentry/{entryId}/stop", deps.TimeEntryHandler.Stop).Methods("POST")

	// Timesheet drafts
	r.HandleFunc("/api/timesheet", deps.TimeSheetHandler.Create).Methods("POST")
	r.HandleFunc("/api/timesheet", deps.TimeSheetHandler.List).Methods("GET")
	r.HandleFunc("/api/timesheet/{sheetId}", deps.TimeSheetHandler.Get).Methods("GET")
	r.HandleFunc("/api/timesheet/{sheetId}", deps.TimeSheetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/timesheet/{sheetId}/submit", deps.TimeSheetHandler.Submit).Methods("POST")
}
