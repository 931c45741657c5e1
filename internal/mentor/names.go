package mentor

import (
	"strings"

	"github.com/example/tvorets/pkg/models"
)

var displayNames = map[models.Mentor][2]string{
	models.MentorLev:    {"Лев", "Lev"},
	models.MentorLana:   {"Лана", "Lana"},
	models.MentorBro:    {"Bro", "Bro"},
	models.MentorKatana: {"Катана", "Katana"},
}

// DisplayName is the persona name shown before a mentor line
func DisplayName(m models.Mentor, lang models.Language) string {
	n, ok := displayNames[m]
	if !ok {
		n = displayNames[models.MentorLev]
	}
	if lang == models.LangUA {
		return n[0]
	}
	return n[1]
}

// SafeName returns the trimmed user name or the default address
func SafeName(lang models.Language, name string) string {
	if t := strings.TrimSpace(name); t != "" {
		return t
	}
	if lang == models.LangUA {
		return "Творець"
	}
	return "Creator"
}

// в украинских фразах черта стоит в винительном падеже
var traitInPhrase = map[models.Trait][2]string{
	models.TraitFocus:      {"фокус", "focus"},
	models.TraitCalm:       {"спокій", "calm"},
	models.TraitConfidence: {"впевненість", "confidence"},
	models.TraitDiscipline: {"дисципліну", "discipline"},
	models.TraitCreativity: {"креативність", "creativity"},
	models.TraitEmpathy:    {"емпатію", "empathy"},
}

// traitWord is the lower-case trait used inside sentences, "" for no trait
func traitWord(t models.Trait, lang models.Language) string {
	w, ok := traitInPhrase[t]
	if !ok {
		return ""
	}
	if lang == models.LangUA {
		return w[0]
	}
	return w[1]
}

// GenderForm picks a grammatical form; neutral keeps the combined spelling
func GenderForm(g models.Gender, male, female, neutral string) string {
	switch g {
	case models.GenderMale:
		return male
	case models.GenderFemale:
		return female
	}
	return neutral
}
