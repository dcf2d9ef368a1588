package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a time of day without date or zone. Stored as TIME ("15:04:05").
type Tod struct{ time.Time }

// From keeps only HH:mm:ss of t.
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse accepts "HH:mm" or "HH:mm:ss".
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

func MustParse(s string) Tod {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds since midnight.
func (t Tod) Seconds() int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (t Tod) Before(o Tod) bool { return t.Seconds() < o.Seconds() }

func (t Tod) String() string { return t.Format("15:04:05") }

// HM renders "15:04", the form used in exports.
func (t Tod) HM() string { return t.Format("15:04") }

func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	// some drivers hand back "0000-01-01T09:00:00Z" or "09:00:00.000000"
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if len(s) == 5 {
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("invalid time of day %q (want HH:mm or HH:mm:ss)", s)
	}
	t.Time = time.Date(0, 1, 1, tt.Hour(), tt.Minute(), tt.Second(), 0, time.UTC)
	return nil
}

func (t Tod) Value() (driver.Value, error) {
	return t.Format("15:04:05"), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.HM())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
