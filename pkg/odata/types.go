package odata

import (
	"fmt"
	"strings"
	"time"
)

// EmptyRef is the null reference 1C uses in place of a missing link.
const EmptyRef Ref = "00000000-0000-0000-0000-000000000000"

// Ref is the GUID of a 1C object (the Ref_Key field).
type Ref string

// IsEmpty reports whether the reference points to nothing, either because it
// was never set or because 1C filled in the null GUID.
func (r Ref) IsEmpty() bool {
	return r == "" || r == EmptyRef
}

// dateTimeLayout is the timestamp format used by 1C OData: ISO 8601 without
// a zone suffix. Values are interpreted in the 1C server's local time.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime wraps time.Time with the JSON encoding 1C expects.
type DateTime struct {
	time.Time
}

// NewDateTime creates a DateTime, dropping sub-second precision, which 1C
// does not store.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Second)}
}

// Date creates a DateTime at midnight of the given day. 1C models plain
// dates as timestamps with a zero time part.
func Date(year int, month time.Month, day int) DateTime {
	return DateTime{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

func (d DateTime) String() string {
	return d.Format(dateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(dateTimeLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("invalid 1C datetime %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}
