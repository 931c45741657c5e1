package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateISOUsesLocationCalendar(t *testing.T) {
	kyiv := time.FixedZone("UTC+3", 3*60*60)

	// 22:30 UTC is already the next day at UTC+3
	utc := time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", LocalDateISO(utc))
	assert.Equal(t, "2024-03-10", LocalDateISO(utc.In(kyiv)))
}

func TestLocalDateISOPadsFields(t *testing.T) {
	d := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-05", LocalDateISO(d))
}

func TestShifted(t *testing.T) {
	clock := NewFixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-03-01", Today(clock))
	assert.Equal(t, "2024-02-29", Yesterday(clock))
	assert.Equal(t, "2024-02-28", Shifted(clock, -2))
	assert.Equal(t, "2024-03-02", Shifted(clock, 1))
}

func TestShiftedAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// DST starts on 2024-03-31 in Kyiv; the day before must still be 03-30
	clock := NewFixedClock(time.Date(2024, 3, 31, 0, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-30", Yesterday(clock))
}

func TestFixedClockMoves(t *testing.T) {
	start := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	clock.Advance(2 * time.Hour)
	require.Equal(t, "2025-01-01", Today(clock))

	clock.AddDays(-1)
	assert.Equal(t, "2024-12-31", Today(clock))

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}
