package timezone

import (
	"homestay/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock is the source of "now" for every component that stamps or compares times.
type Clock interface {
	Now() time.Time
	Today() time.Time
	Location() *time.Location
}

type appClock struct {
	location *time.Location
}

func New(cfg *config.Config) Clock {
	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Ho_Chi_Minh', 'UTC', 'America/New_York'")

		return &appClock{location: time.UTC}
	}

	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")

	return &appClock{location: loc}
}

// Now returns the current time in the application timezone
func (c *appClock) Now() time.Time {
	return time.Now().In(c.location)
}

// Today returns the current calendar date in the application timezone, as midnight UTC.
func (c *appClock) Today() time.Time {
	return CalendarDate(c.Now())
}

func (c *appClock) Location() *time.Location {
	return c.location
}

// FixedClock is a Clock frozen at a settable instant.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FixedClock) Today() time.Time {
	return CalendarDate(c.Now())
}

func (c *FixedClock) Location() *time.Location {
	return c.Now().Location()
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// CalendarDate drops the time of day, keeping the wall-clock date of t.
func CalendarDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToAppTime converts a time to the clock's timezone
func ToAppTime(clock Clock, t time.Time) time.Time {
	return t.In(clock.Location())
}

// Parse parses a time string in the clock's timezone
func Parse(clock Clock, layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, clock.Location()) //nolint:wrapcheck
}

// Format formats a time in the clock's timezone
func Format(clock Clock, t time.Time, layout string) string {
	return ToAppTime(clock, t).Format(layout)
}
