package dbtime

import (
	"strings"
	"sync"
	"time"
)

var locations sync.Map // name -> *time.Location

// Location resolves an IANA zone name such as "Asia/Jakarta". Unknown or
// empty names fall back to UTC.
func Location(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC
	}
	if v, ok := locations.Load(name); ok {
		return v.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	locations.Store(name, loc)
	return loc
}

// TodayIn is the calendar date a school in tz sees at now, stored the same
// way as every DATE column (UTC midnight).
func TodayIn(now time.Time, tz string) time.Time {
	return DateOnly(now.In(Location(tz)))
}
