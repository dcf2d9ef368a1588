package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "YYYY-MM-DD" or an RFC3339 timestamp and returns UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

func Today() time.Time { return DateOnly(time.Now().UTC()) }
