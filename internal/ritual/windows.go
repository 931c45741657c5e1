package ritual

import "time"

// IsMorningWindow is true from 04:00 to 13:59
func IsMorningWindow(hour int) bool {
	return hour >= 4 && hour <= 13
}

// IsEveningWindow is true from 18:00 to 03:59
func IsEveningWindow(hour int) bool {
	return hour >= 18 || hour <= 3
}

// Window names the ritual slot a moment falls into
type Window string

const (
	WindowMorning Window = "morning"
	WindowDay     Window = "day"
	WindowEvening Window = "evening"
)

// WindowAt classifies t by its local hour
func WindowAt(t time.Time) Window {
	switch h := t.Hour(); {
	case IsMorningWindow(h):
		return WindowMorning
	case IsEveningWindow(h):
		return WindowEvening
	}
	return WindowDay
}

// Gate tells which ritual entries are open right now
type Gate struct {
	Window      Window `json:"window" yaml:"window"`
	ShowMorning bool   `json:"showMorning" yaml:"showMorning"`
	ShowEvening bool   `json:"showEvening" yaml:"showEvening"`
	// EveningLocked is the evening window of a day with no action yet
	EveningLocked bool `json:"eveningLocked" yaml:"eveningLocked"`
	ShowHardDay   bool `json:"showHardDay" yaml:"showHardDay"`
}

// ComputeGate opens the morning entry in the morning window until it is done.
// The evening close needs the evening window and at least one action today;
// without an action the evening stays locked and only the hard-day close is offered.
func ComputeGate(now time.Time, morningDone, eveningDone, hasAnyAction bool) Gate {
	w := WindowAt(now)
	inEvening := w == WindowEvening

	g := Gate{
		Window:        w,
		ShowMorning:   !morningDone && w == WindowMorning,
		ShowEvening:   !eveningDone && inEvening && hasAnyAction,
		EveningLocked: !eveningDone && inEvening && !hasAnyAction,
	}
	g.ShowHardDay = g.EveningLocked
	return g
}
