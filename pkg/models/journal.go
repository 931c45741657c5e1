package models

import "strings"

// JournalSource tells which flow produced a journal entry
type JournalSource string

const (
	SourceReflection JournalSource = "reflection"
	SourceBadDay     JournalSource = "bad_day"
	SourceChallenge  JournalSource = "challenge"
	SourceSystem     JournalSource = "system"
	SourceNote       JournalSource = "note"
)

// IsValid reports whether s is a known source
func (s JournalSource) IsValid() bool {
	switch s {
	case SourceReflection, SourceBadDay, SourceChallenge, SourceSystem, SourceNote:
		return true
	}
	return false
}

// JournalMood is an optional mood tag
type JournalMood string

const (
	MoodLow     JournalMood = "low"
	MoodNeutral JournalMood = "neutral"
	MoodHigh    JournalMood = "high"
)

// IsValid reports whether m is a known mood
func (m JournalMood) IsValid() bool {
	return m == MoodLow || m == MoodNeutral || m == MoodHigh
}

// JournalEntry is a free-text record in the journal
type JournalEntry struct {
	ID        string         `json:"id" yaml:"id"`
	CreatedAt string         `json:"createdAt" yaml:"createdAt"` // RFC3339
	Title     string         `json:"title" yaml:"title"`
	Text      string         `json:"text" yaml:"text"`
	Mood      JournalMood    `json:"mood,omitempty" yaml:"mood,omitempty"`
	Source    JournalSource  `json:"source" yaml:"source"`
	Meta      map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// IdempotencyKey returns the trimmed meta.idempotencyKey or ""
func (e JournalEntry) IdempotencyKey() string {
	if e.Meta == nil {
		return ""
	}
	s, ok := e.Meta["idempotencyKey"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
