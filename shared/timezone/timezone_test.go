package timezone_test

import (
	"homestay/config"
	"homestay/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		expected string
	}{
		{name: "empty falls back to UTC", timezone: "", expected: "UTC"},
		{name: "standard location", timezone: "Asia/Ho_Chi_Minh", expected: "Asia/Ho_Chi_Minh"},
		{name: "unknown location falls back to UTC", timezone: "Mars/Olympus", expected: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Timezone = tt.timezone

			clock := timezone.New(cfg)

			assert.Equal(t, tt.expected, clock.Location().String())
			assert.False(t, clock.Now().IsZero())
		})
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, 1, 10, 23, 30, 0, 0, time.UTC)
	clock := timezone.NewFixed(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), clock.Today())

	clock.Advance(time.Hour)

	assert.Equal(t, start.Add(time.Hour), clock.Now())
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), clock.Today())
}

func TestCalendarDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	local := time.Date(2025, 3, 1, 1, 15, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), timezone.CalendarDate(local))
}

func TestFormatAndParse(t *testing.T) {
	clock := timezone.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	formatted := timezone.Format(clock, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "2006-01-02 15:04:05")
	assert.Equal(t, "2024-01-01 12:00:00", formatted)

	parsed, err := timezone.Parse(clock, "2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed)
}
