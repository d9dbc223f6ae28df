package timegroup

import (
	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

// TimeGroup is a kind of working time usage from the 1C catalog, cached
// locally. Letter and digit are the Т-13 form codes ("Я"/"01" for regular
// working time, "ОТ"/"09" for vacation, ...).
type TimeGroup struct {
	Ref    odata.Ref
	Name   string
	Letter string
	Digit  string
}
