package timeentry

import (
	"time"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

// TimeEntry is one tracked interval of work, recorded locally before being
// aggregated into a 1C timesheet document. An entry without an end time is
// still running.
type TimeEntry struct {
	ID          int64
	Employee    odata.Ref
	Description string
	Start       time.Time
	End         *time.Time
	// TimeGroup optionally overrides the default kind of working time for
	// this entry (vacation, business trip, ...).
	TimeGroup odata.Ref
}

func (e TimeEntry) IsRunning() bool {
	return e.End == nil
}

// Duration is the tracked length; zero while the entry is running.
func (e TimeEntry) Duration() time.Duration {
	if e.End == nil {
		return 0
	}
	return e.End.Sub(e.Start)
}
