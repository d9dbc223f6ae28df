package timesheet

import (
	"time"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
)

type Status string

const (
	// StatusDraft marks a timesheet built locally and not yet sent to 1C.
	StatusDraft Status = "draft"
	// StatusSubmitted marks a timesheet accepted by 1C.
	StatusSubmitted Status = "submitted"
)

// Draft is a locally stored timesheet document. After submission it keeps
// the reference and number assigned by 1C.
type Draft struct {
	ID          string
	Status      Status
	CreatedAt   time.Time
	SubmittedAt *time.Time
	Ref         odata.Ref
	Number      string
	Sheet       onec.TimeSheet
}
