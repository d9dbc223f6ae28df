package sync

import "time"

type RunStatus string

const (
	RunStatusOK     RunStatus = "ok"
	RunStatusFailed RunStatus = "failed"
)

// Run records one catalog refresh against 1C.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Status        RunStatus
	TimeGroups    int
	Organizations int
	Employees     int
	// Error holds the failure message when Status is failed.
	Error string
}
