package organization

import (
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

// Organization is a legal entity from the 1C catalog, cached locally.
type Organization struct {
	Ref  odata.Ref
	Name string
}
