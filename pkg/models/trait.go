package models

import "encoding/json"

// Trait is one of the six personal-growth dimensions. The zero value means "no trait".
type Trait string

const (
	TraitNone       Trait = ""
	TraitFocus      Trait = "focus"
	TraitCalm       Trait = "calm"
	TraitConfidence Trait = "confidence"
	TraitDiscipline Trait = "discipline"
	TraitCreativity Trait = "creativity"
	TraitEmpathy    Trait = "empathy"
)

// AllTraits lists every trait in catalog order
var AllTraits = []Trait{
	TraitFocus,
	TraitCalm,
	TraitConfidence,
	TraitDiscipline,
	TraitCreativity,
	TraitEmpathy,
}

// IsValid reports whether t is one of the six known traits
func (t Trait) IsValid() bool {
	switch t {
	case TraitFocus, TraitCalm, TraitConfidence, TraitDiscipline, TraitCreativity, TraitEmpathy:
		return true
	}
	return false
}

// ParseTrait maps an arbitrary string to a trait, unknown values become TraitNone
func ParseTrait(s string) Trait {
	t := Trait(s)
	if t.IsValid() {
		return t
	}
	return TraitNone
}

// String returns "none" for the empty trait, used in seeds and logs
func (t Trait) String() string {
	if t == TraitNone {
		return "none"
	}
	return string(t)
}

var traitLabels = map[Trait][2]string{
	TraitFocus:      {"Фокус", "Focus"},
	TraitCalm:       {"Спокій", "Calm"},
	TraitConfidence: {"Впевненість", "Confidence"},
	TraitDiscipline: {"Дисципліна", "Discipline"},
	TraitCreativity: {"Креативність", "Creativity"},
	TraitEmpathy:    {"Емпатія", "Empathy"},
}

// Label is the display name of the trait, "" for TraitNone
func (t Trait) Label(lang Language) string {
	l, ok := traitLabels[t]
	if !ok {
		return ""
	}
	if lang == LangUA {
		return l[0]
	}
	return l[1]
}

// MarshalJSON stores the empty trait as null
func (t Trait) MarshalJSON() ([]byte, error) {
	if t == TraitNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON never fails: null, non-strings and unknown names become TraitNone
func (t *Trait) UnmarshalJSON(data []byte) error {
	*t = ParseTrait(decodeString(data))
	return nil
}

// Language is the UI language of generated copy
type Language string

const (
	LangUA Language = "ua"
	LangEN Language = "en"
)

// ParseLanguage defaults to English for anything but "ua"
func ParseLanguage(s string) Language {
	if Language(s) == LangUA {
		return LangUA
	}
	return LangEN
}

// Mentor identifies one of the four mentor personas
type Mentor string

const (
	MentorLev    Mentor = "lev"
	MentorLana   Mentor = "lana"
	MentorBro    Mentor = "bro"
	MentorKatana Mentor = "katana"
)

// IsValid reports whether m is a known persona
func (m Mentor) IsValid() bool {
	switch m {
	case MentorLev, MentorLana, MentorBro, MentorKatana:
		return true
	}
	return false
}

// ParseMentor falls back to lev
func ParseMentor(s string) Mentor {
	m := Mentor(s)
	if m.IsValid() {
		return m
	}
	return MentorLev
}

// Gender is used only to pick grammatical forms in copy
type Gender string

const (
	GenderNeutral Gender = "neutral"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// ParseGender falls back to neutral
func ParseGender(s string) Gender {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale, GenderNeutral:
		return g
	}
	return GenderNeutral
}

// MentorMode is the tone classifier derived from streak and last success date
type MentorMode string

const (
	ModeNeutral MentorMode = "neutral"
	ModeSupport MentorMode = "support"
	ModePush    MentorMode = "push"
)

// IsValid reports whether m is a known mode
func (m MentorMode) IsValid() bool {
	return m == ModeNeutral || m == ModeSupport || m == ModePush
}

// decodeString returns the JSON string value or "" for anything else
func decodeString(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}
