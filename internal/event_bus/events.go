package event_bus

const (
	CatalogSyncedEvent      EventType = "catalog.synced"
	TimeSheetSubmittedEvent EventType = "timesheet.submitted"
)

// CatalogSynced is published after a catalog refresh run against 1C,
// with the number of records pulled per catalog.
type CatalogSynced struct {
	RunID         string
	TimeGroups    int
	Organizations int
	Employees     int
}

// TimeSheetSubmitted is published when a draft is accepted by 1C.
type TimeSheetSubmitted struct {
	DraftID string
	Ref     string
	Number  string
}
