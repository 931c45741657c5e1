package models

// ChallengeStatus is the lifecycle state of a daily challenge
type ChallengeStatus string

const (
	StatusPending   ChallengeStatus = "pending"
	StatusCompleted ChallengeStatus = "completed"
	StatusSkipped   ChallengeStatus = "skipped"
)

// IsValid reports whether s is a known status
func (s ChallengeStatus) IsValid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusSkipped
}

// UnmarshalJSON maps unknown statuses to pending
func (s *ChallengeStatus) UnmarshalJSON(data []byte) error {
	v := ChallengeStatus(decodeString(data))
	if !v.IsValid() {
		v = StatusPending
	}
	*s = v
	return nil
}

// Complexity is the effort tier of a challenge
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// ParseComplexity falls back to easy
func ParseComplexity(s string) Complexity {
	switch c := Complexity(s); c {
	case ComplexityEasy, ComplexityMedium, ComplexityHard:
		return c
	}
	return ComplexityEasy
}

// UnmarshalJSON maps unknown tiers to easy
func (c *Complexity) UnmarshalJSON(data []byte) error {
	*c = ParseComplexity(decodeString(data))
	return nil
}

// ChallengeDefinition is a catalog entry
type ChallengeDefinition struct {
	ID            string     `json:"id" yaml:"id"`
	Trait         Trait      `json:"trait" yaml:"trait"`
	TitleUA       string     `json:"titleUa" yaml:"titleUa"`
	TitleEN       string     `json:"titleEn" yaml:"titleEn"`
	DescriptionUA string     `json:"descriptionUa" yaml:"descriptionUa"`
	DescriptionEN string     `json:"descriptionEn" yaml:"descriptionEn"`
	Complexity    Complexity `json:"complexity" yaml:"complexity"`
}

// Instantiate returns a fresh pending challenge for today's set
func (d ChallengeDefinition) Instantiate() Challenge {
	return Challenge{
		ID:            d.ID,
		Trait:         d.Trait,
		TitleUA:       d.TitleUA,
		TitleEN:       d.TitleEN,
		DescriptionUA: d.DescriptionUA,
		DescriptionEN: d.DescriptionEN,
		Complexity:    d.Complexity,
		Status:        StatusPending,
	}
}

// Challenge is one of today's three selected challenges
type Challenge struct {
	ID            string          `json:"id" yaml:"id"`
	Trait         Trait           `json:"trait" yaml:"trait"`
	TitleUA       string          `json:"titleUa" yaml:"titleUa"`
	TitleEN       string          `json:"titleEn" yaml:"titleEn"`
	DescriptionUA string          `json:"descriptionUa" yaml:"descriptionUa"`
	DescriptionEN string          `json:"descriptionEn" yaml:"descriptionEn"`
	Complexity    Complexity      `json:"complexity" yaml:"complexity"`
	Status        ChallengeStatus `json:"status" yaml:"status"`
	CompletedAt   *string         `json:"completedAt" yaml:"completedAt"` // RFC3339, set only when completed
}

// Title returns the localized title
func (c Challenge) Title(lang Language) string {
	return pickLang(lang, c.TitleUA, c.TitleEN)
}

// Description returns the localized description
func (c Challenge) Description(lang Language) string {
	return pickLang(lang, c.DescriptionUA, c.DescriptionEN)
}

// pickLang prefers the requested language and falls back to the other one
func pickLang(lang Language, ua, en string) string {
	if lang == LangUA {
		if ua != "" {
			return ua
		}
		return en
	}
	if en != "" {
		return en
	}
	return ua
}

// ChallengeHistoryItem records which challenges were shown on a date
type ChallengeHistoryItem struct {
	Date string   `json:"date" yaml:"date"`
	IDs  []string `json:"ids" yaml:"ids"`
}

// ChallengeSummary is the done/total view of today's set
type ChallengeSummary struct {
	Challenges []Challenge `json:"challenges" yaml:"challenges"`
	Done       int         `json:"done" yaml:"done"`
	Total      int         `json:"total" yaml:"total"`
}
