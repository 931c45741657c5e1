package dates

import (
	"sync"
	"time"
)

// Layout is the local calendar date format used in every persisted record
const Layout = "2006-01-02"

// Clock is the single source of "now"
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location (time.Local when unset)
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// LocalDateISO formats the calendar fields of t as YYYY-MM-DD.
// No UTC conversion happens: the date is whatever t's own location says.
func LocalDateISO(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the local calendar date of clock.Now()
func Today(clock Clock) string {
	return LocalDateISO(clock.Now())
}

// Shifted returns the local date `days` calendar days away from today.
// AddDate works on calendar fields, so DST transitions never skip a date.
func Shifted(clock Clock, days int) string {
	return LocalDateISO(clock.Now().AddDate(0, 0, days))
}

// Yesterday is Shifted(clock, -1)
func Yesterday(clock Clock) string {
	return Shifted(clock, -1)
}

// NowRFC3339 returns the clock time for timestamps such as lastActionAt
func NowRFC3339(clock Clock) string {
	return clock.Now().UTC().Format(time.RFC3339Nano)
}

// FixedClock is a settable clock for tests and simulated dates
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock starts a fixed clock at t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the current simulated time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AddDays moves the clock by whole calendar days
func (c *FixedClock) AddDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}
