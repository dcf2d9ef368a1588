package dbtime

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestTodayIn(t *testing.T) {
	// 20:00 UTC is already the next day in Jakarta (UTC+7)
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), TodayIn(now, "UTC"))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), TodayIn(now, "Asia/Jakarta"))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), TodayIn(now, "Not/AZone"))
}

func TestLocationCaches(t *testing.T) {
	a := Location("Asia/Jakarta")
	b := Location("Asia/Jakarta")
	assert.Same(t, a, b)
	assert.Equal(t, time.UTC, Location(""))
}
