package models

// XPState is the lifetime progression ledger
type XPState struct {
	XP              int    `json:"xp" yaml:"xp"`
	Level           int    `json:"level" yaml:"level"`
	Streak          int    `json:"streak" yaml:"streak"`
	LastSuccessDate string `json:"lastSuccessDate,omitempty" yaml:"lastSuccessDate,omitempty"` // YYYY-MM-DD, empty when never
}

// DayActions is the per-day bookkeeping record, only today's is materialized
type DayActions struct {
	Date              string   `json:"date" yaml:"date"`
	HasAnyAction      bool     `json:"hasAnyAction" yaml:"hasAnyAction"`
	HardDayMarked     bool     `json:"hardDayMarked" yaml:"hardDayMarked"`
	TodayXPEarned     int      `json:"todayXpEarned" yaml:"todayXpEarned"`
	AppliedXPEventIDs []string `json:"appliedXpEventIds" yaml:"appliedXpEventIds"`
	LastActionAt      *string  `json:"lastActionAt" yaml:"lastActionAt"`
}

// HasApplied reports whether eventID already granted XP today
func (a DayActions) HasApplied(eventID string) bool {
	for _, id := range a.AppliedXPEventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}

// ActionResult is returned by the action ledger after registering an event
type ActionResult struct {
	DidApply bool       `json:"didApply" yaml:"didApply"`
	XP       XPState    `json:"xp" yaml:"xp"`
	Actions  DayActions `json:"actions" yaml:"actions"`
}

// Reconciled joins the lifetime ledger with today's action record
type Reconciled struct {
	XP      XPState    `json:"xp" yaml:"xp"`
	Actions DayActions `json:"actions" yaml:"actions"`
}
