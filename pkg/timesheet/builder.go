package timesheet

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	"github.com/SabNK/client-1c-timesheet/pkg/timeentry"
)

var (
	ErrOrganizationRequired = errors.New("organization is required")
	ErrTimeGroupRequired    = errors.New("default time group is required")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
)

// BuildInput describes the timesheet to assemble: the reporting month,
// the organization the document belongs to and the time group recorded
// for days whose entries carry no group of their own.
type BuildInput struct {
	Year             int
	Month            time.Month
	Organization     odata.Ref
	DefaultTimeGroup odata.Ref
}

func (in BuildInput) validate() error {
	if in.Organization.IsEmpty() {
		return ErrOrganizationRequired
	}
	if in.DefaultTimeGroup.IsEmpty() {
		return ErrTimeGroupRequired
	}
	if in.Month < time.January || in.Month > time.December {
		return ErrInvalidMonth
	}
	return nil
}

// monthBounds returns the half-open interval [start, end) of the month
// in local time.
func (in BuildInput) monthBounds() (time.Time, time.Time) {
	start := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

type dayTotal struct {
	duration  time.Duration
	timeGroup odata.Ref
}

// BuildSheet aggregates finished time entries into a 1C timesheet document:
// one line per employee with hours summed per calendar day. Entries crossing
// midnight are split across days, parts outside the month are cut off, and
// running entries are skipped. Hours are recorded in tenths, rounding down.
func BuildSheet(in BuildInput, entries []timeentry.TimeEntry) (onec.TimeSheet, error) {
	if err := in.validate(); err != nil {
		return onec.TimeSheet{}, err
	}
	monthStart, monthEnd := in.monthBounds()

	totals := map[odata.Ref]map[int]*dayTotal{}
	for _, entry := range entries {
		if entry.IsRunning() {
			continue
		}
		if entry.Employee.IsEmpty() {
			return onec.TimeSheet{}, fmt.Errorf("time entry %d has no employee", entry.ID)
		}
		perDay := totals[entry.Employee]
		if perDay == nil {
			perDay = map[int]*dayTotal{}
			totals[entry.Employee] = perDay
		}
		addEntry(perDay, entry, monthStart, monthEnd)
	}

	employees := make([]odata.Ref, 0, len(totals))
	for employee, perDay := range totals {
		if len(perDay) == 0 {
			continue
		}
		employees = append(employees, employee)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i] < employees[j] })

	lines := make([]onec.TimeSheetLine, 0, len(employees))
	for i, employee := range employees {
		line := onec.NewTimeSheetLine(fmt.Sprintf("%d", i+1), employee)
		for day, total := range totals[employee] {
			record := &line.Records[day-1]
			record.HoursTenths = int(total.duration / (6 * time.Minute))
			record.TimeGroup = total.timeGroup
			if record.TimeGroup.IsEmpty() {
				record.TimeGroup = in.DefaultTimeGroup
			}
		}
		lines = append(lines, line)
	}

	return onec.TimeSheet{
		Period:       odata.NewDateTime(monthStart),
		Organization: in.Organization,
		StartDate:    odata.NewDateTime(monthStart),
		EndDate:      odata.NewDateTime(monthEnd.AddDate(0, 0, -1)),
		Lines:        lines,
	}, nil
}

// addEntry splits the entry at local midnights and accumulates each part
// into the day it falls on. The time group of the first entry touching a
// day wins for that day.
func addEntry(perDay map[int]*dayTotal, entry timeentry.TimeEntry, monthStart, monthEnd time.Time) {
	cursor := entry.Start.In(time.Local)
	if cursor.Before(monthStart) {
		cursor = monthStart
	}
	end := entry.End.In(time.Local)
	if end.After(monthEnd) {
		end = monthEnd
	}
	for cursor.Before(end) {
		nextDay := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
		segmentEnd := end
		if nextDay.Before(segmentEnd) {
			segmentEnd = nextDay
		}
		day := cursor.Day()
		total := perDay[day]
		if total == nil {
			total = &dayTotal{timeGroup: entry.TimeGroup}
			perDay[day] = total
		}
		total.duration += segmentEnd.Sub(cursor)
		cursor = segmentEnd
	}
}
