package onec

import (
	"encoding/json"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

// Entity sets of the standard 1C HR configuration this client talks to.
const (
	timeGroupsEntitySet    = "Catalog_ВидыИспользованияРабочегоВремени"
	organizationsEntitySet = "Catalog_Организации"
	employeesEntitySet     = "Catalog_Сотрудники"
	timeSheetsEntitySet    = "Document_ТабельУчетаРабочегоВремени"
)

// daysInLine is the number of day slots carried by every timesheet line,
// one per possible calendar day, regardless of the month length.
const daysInLine = 31

// TimeGroup is a kind of working time usage (Catalog
// ВидыИспользованияРабочегоВремени): "Рабочее время", "Отпуск", ...
// Letter and digit are the official shorthand codes printed on the Т-13 form.
type TimeGroup struct {
	Ref    odata.Ref `json:"Ref_Key"`
	Name   string    `json:"Description"`
	Letter string    `json:"БуквенныйКод,omitempty"`
	Digit  string    `json:"ЦифровойКод,omitempty"`
}

// Organization is a legal entity (Catalog Организации).
type Organization struct {
	Ref  odata.Ref `json:"Ref_Key"`
	Name string    `json:"Description"`
}

// Employee links a person to an organization (Catalog Сотрудники).
type Employee struct {
	Ref          odata.Ref `json:"Ref_Key"`
	Name         string    `json:"Description"`
	Person       odata.Ref `json:"ФизическоеЛицо_Key"`
	Organization odata.Ref `json:"ГоловнаяОрганизация_Key"`
}

// TimeSheet is the Т-13 timesheet document
// (Document ТабельУчетаРабочегоВремени). Period is the first day of the
// reported month; StartDate and EndDate bound the reported interval within
// that month.
type TimeSheet struct {
	Ref          odata.Ref       `json:"Ref_Key,omitempty"`
	Number       string          `json:"Number,omitempty"`
	Date         odata.DateTime  `json:"Date,omitzero"`
	Period       odata.DateTime  `json:"ПериодРегистрации"`
	Organization odata.Ref       `json:"Организация_Key"`
	OrgUnit      odata.Ref       `json:"Подразделение_Key,omitempty"`
	StartDate    odata.DateTime  `json:"ДатаНачалаПериода"`
	EndDate      odata.DateTime  `json:"ДатаОкончанияПериода"`
	Lines        []TimeSheetLine `json:"ДанныеОВремени"`
}

// TimeSheetRecord is the reported time of one employee on one calendar day.
// Hours are kept as tenths of an hour, the precision 1C stores.
type TimeSheetRecord struct {
	Day               int
	HoursTenths       int
	TimeGroup         odata.Ref
	Territory         odata.Ref
	WorkingConditions odata.Ref
	CarryOverShift    bool
}

// Hours returns the reported hours as a decimal value.
func (r TimeSheetRecord) Hours() float64 {
	return float64(r.HoursTenths) / 10
}

// SetHours stores hours with tenths precision, truncating anything finer.
func (r *TimeSheetRecord) SetHours(hours float64) {
	r.HoursTenths = int(hours * 10)
}

// TimeSheetLine is one row of the timesheet: an employee and 31 day records.
// On the wire the records are flattened into day-indexed columns
// (Часов1..Часов31, ВидВремени1_Key..ВидВремени31_Key, ...), which is why
// the line carries its own JSON codec.
type TimeSheetLine struct {
	Ref      odata.Ref
	Number   string
	Employee odata.Ref
	Records  []TimeSheetRecord
}

// NewTimeSheetLine creates a line with all 31 day slots zeroed.
func NewTimeSheetLine(number string, employee odata.Ref) TimeSheetLine {
	records := make([]TimeSheetRecord, daysInLine)
	for i := range records {
		records[i].Day = i + 1
	}
	return TimeSheetLine{Number: number, Employee: employee, Records: records}
}

func (l TimeSheetLine) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, 3+5*daysInLine)
	if !l.Ref.IsEmpty() {
		fields["Ref_Key"] = l.Ref
	}
	fields["LineNumber"] = l.Number
	fields["Сотрудник_Key"] = refOrNull(l.Employee)
	for _, record := range l.Records {
		day := record.Day
		fields[fmt.Sprintf("Часов%d", day)] = record.Hours()
		fields[fmt.Sprintf("ВидВремени%d_Key", day)] = refOrNull(record.TimeGroup)
		fields[fmt.Sprintf("Территория%d_Key", day)] = refOrNull(record.Territory)
		fields[fmt.Sprintf("УсловияТруда%d_Key", day)] = refOrNull(record.WorkingConditions)
		fields[fmt.Sprintf("ПереходящаяЧастьСмены%d", day)] = record.CarryOverShift
	}
	return json.Marshal(fields)
}

func (l *TimeSheetLine) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	line := TimeSheetLine{}
	if ref, ok := fields["Ref_Key"]; ok {
		if err := json.Unmarshal(ref, &line.Ref); err != nil {
			return fmt.Errorf("invalid Ref_Key: %w", err)
		}
	}
	if err := unmarshalField(fields, "LineNumber", &line.Number); err != nil {
		return err
	}
	if err := unmarshalField(fields, "Сотрудник_Key", &line.Employee); err != nil {
		return err
	}

	line.Records = make([]TimeSheetRecord, daysInLine)
	for i := range line.Records {
		record := &line.Records[i]
		record.Day = i + 1

		var hours float64
		if err := unmarshalField(fields, fmt.Sprintf("Часов%d", record.Day), &hours); err != nil {
			return err
		}
		record.SetHours(hours)

		if err := unmarshalField(fields, fmt.Sprintf("ВидВремени%d_Key", record.Day), &record.TimeGroup); err != nil {
			return err
		}
		if err := unmarshalField(fields, fmt.Sprintf("Территория%d_Key", record.Day), &record.Territory); err != nil {
			return err
		}
		if err := unmarshalField(fields, fmt.Sprintf("УсловияТруда%d_Key", record.Day), &record.WorkingConditions); err != nil {
			return err
		}
		if err := unmarshalField(fields, fmt.Sprintf("ПереходящаяЧастьСмены%d", record.Day), &record.CarryOverShift); err != nil {
			return err
		}
	}

	*l = line
	return nil
}

func unmarshalField(fields map[string]json.RawMessage, key string, out any) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("timesheet line field %q is missing", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid timesheet line field %q: %w", key, err)
	}
	return nil
}

// refOrNull substitutes the null GUID for unset references: 1C rejects
// reference columns that are absent or empty strings.
func refOrNull(ref odata.Ref) odata.Ref {
	if ref.IsEmpty() {
		return odata.EmptyRef
	}
	return ref
}
