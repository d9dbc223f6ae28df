package employee

import (
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

// Employee is a staffing record from the 1C catalog, cached locally. Person
// points to the individual (ФизическоеЛицо), Organization to the employing
// legal entity.
type Employee struct {
	Ref          odata.Ref
	Name         string
	Person       odata.Ref
	Organization odata.Ref
}
