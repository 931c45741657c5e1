package models

// Profile holds the user's name and mentor preferences
type Profile struct {
	Name   string `json:"name" yaml:"name"`
	Mentor Mentor `json:"mentor" yaml:"mentor"`
	Gender Gender `json:"gender" yaml:"gender"`
}

// DefaultProfile is returned when nothing is stored
func DefaultProfile() Profile {
	return Profile{Mentor: MentorLev, Gender: GenderNeutral}
}

// TraitsResult is the output of the traits questionnaire
type TraitsResult struct {
	Strengths   []Trait            `json:"strengths" yaml:"strengths"`
	GrowthZones []Trait            `json:"growthZones" yaml:"growthZones"`
	Scores      map[string]float64 `json:"scores,omitempty" yaml:"scores,omitempty"`
	CompletedAt string             `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Version     int                `json:"version,omitempty" yaml:"version,omitempty"`
}

// MainGrowth is the primary growth trait, the first growth zone
func (r *TraitsResult) MainGrowth() Trait {
	if r == nil || len(r.GrowthZones) == 0 {
		return TraitNone
	}
	return r.GrowthZones[0]
}

// ClosedAs tells how a day was closed
type ClosedAs string

const (
	ClosedEvening ClosedAs = "evening"
	ClosedBadDay  ClosedAs = "bad_day"
)

// MentorMemory is a short summary of a closed day
type MentorMemory struct {
	Date         string     `json:"date" yaml:"date"`
	Goal         string     `json:"goal" yaml:"goal"`
	XPEarned     int        `json:"xpEarned" yaml:"xpEarned"`
	HasAnyAction bool       `json:"hasAnyAction" yaml:"hasAnyAction"`
	ClosedAs     ClosedAs   `json:"closedAs" yaml:"closedAs"`
	Mentor       Mentor     `json:"mentor" yaml:"mentor"`
	Mode         MentorMode `json:"mode" yaml:"mode"`
	Growth       Trait      `json:"growth" yaml:"growth"`
}

// ReminderInfo describes the daily reminder setting
type ReminderInfo struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Hour    *int `json:"hour" yaml:"hour"`
	Minute  *int `json:"minute" yaml:"minute"`
}
