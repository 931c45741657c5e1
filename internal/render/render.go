// Package render turns app results into plain text for chat and terminal front-ends
package render

import (
	"fmt"
	"strings"

	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/internal/snapshot"
	"github.com/example/tvorets/pkg/models"
)

func pick(lang models.Language, ua, en string) string {
	if lang == models.LangUA {
		return ua
	}
	return en
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func challengeMark(s models.ChallengeStatus) string {
	switch s {
	case models.StatusCompleted:
		return "[x]"
	case models.StatusSkipped:
		return "[-]"
	}
	return "[ ]"
}

// Today renders the daily screen
func Today(s snapshot.Snapshot) string {
	lang := s.Lang
	var b strings.Builder

	b.WriteString(s.MentorLine + "\n")
	if s.MemoryLine != "" {
		b.WriteString(s.MemoryLine + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "📅 %s", s.Date)
	if label := s.MainGrowth.Label(lang); label != "" {
		fmt.Fprintf(&b, " • %s: %s", pick(lang, "Зона росту", "Growth"), label)
	}
	b.WriteString("\n")
	if s.Goal != "" {
		fmt.Fprintf(&b, "🎯 %s: %s\n", pick(lang, "Ціль", "Goal"), s.Goal)
	}

	fmt.Fprintf(&b, "\n%s\n", pick(lang, "Задачі:", "Tasks:"))
	for _, t := range s.DayPlan.Tasks {
		fmt.Fprintf(&b, "%s %s %s\n", check(t.Completed), t.ID, dayplan.TaskText(t, lang).Title)
	}

	fmt.Fprintf(&b, "\n%s\n", s.ChallengesHeaderLine)
	for _, c := range s.DayPlan.Challenges {
		fmt.Fprintf(&b, "%s %s %s (%s)\n", challengeMark(c.Status), c.ID, c.Title(lang), c.Trait.Label(lang))
	}

	b.WriteString("\n" + s.SummaryLine)
	if s.GoalPulseLine != "" {
		b.WriteString("\n" + s.GoalPulseLine)
	}
	if hint := ritualHint(lang, s.Gate); hint != "" {
		b.WriteString("\n\n" + hint)
	}
	return b.String()
}

func ritualHint(lang models.Language, g ritual.Gate) string {
	switch {
	case g.ShowMorning:
		return pick(lang, "🌅 Ранок відкритий: /morning", "🌅 Morning is open: /morning")
	case g.ShowEvening:
		return pick(lang, "🌙 Можна закрити день: /evening", "🌙 You can close the day: /evening")
	case g.EveningLocked:
		return pick(lang,
			"🔒 Вечір відкриється після першого кроку. Важкий день? /hardday",
			"🔒 The evening opens after your first step. Hard day? /hardday")
	}
	return ""
}

// RitualLocked explains why the evening close (or the hard-day close) is not open
func RitualLocked(lang models.Language, g ritual.Gate, hardDay bool) string {
	switch {
	case g.Window != ritual.WindowEvening:
		return pick(lang, "Вечір відкривається о 18:00.", "The evening opens at 18:00.")
	case hardDay && g.ShowEvening:
		return pick(lang, "Сьогодні вже є крок. Закрий день через /evening.", "Today already has a step. Close it with /evening.")
	case !hardDay && g.EveningLocked:
		return pick(lang,
			"Спершу один крок: задача, челендж або /micro. Важкий день? /hardday",
			"One step first: a task, a challenge or /micro. Hard day? /hardday")
	}
	return pick(lang, "День уже закрито.", "The day is already closed.")
}

// XP renders the ledger with today's numbers
func XP(lang models.Language, r models.Reconciled) string {
	var b strings.Builder
	fmt.Fprintf(&b, "XP: %d\n", r.XP.XP)
	fmt.Fprintf(&b, "%s: %d\n", pick(lang, "Рівень", "Level"), r.XP.Level)
	fmt.Fprintf(&b, "%s: %d\n", pick(lang, "Серія", "Streak"), r.XP.Streak)
	if r.XP.LastSuccessDate != "" {
		fmt.Fprintf(&b, "%s: %s\n", pick(lang, "Останній успішний день", "Last successful day"), r.XP.LastSuccessDate)
	}
	fmt.Fprintf(&b, "%s: +%d XP", pick(lang, "Сьогодні", "Today"), max(0, r.Actions.TodayXPEarned))
	if r.Actions.HardDayMarked {
		b.WriteString(pick(lang, " (важкий день)", " (hard day)"))
	}
	return b.String()
}

// Journal renders entries, newest first
func Journal(lang models.Language, entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return pick(lang, "Журнал порожній.", "The journal is empty.")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		date := e.CreatedAt
		if len(date) >= 16 {
			date = strings.Replace(date[:16], "T", " ", 1)
		}
		fmt.Fprintf(&b, "%s • %s • %s", date, e.Source, e.Title)
		if e.Mood != "" {
			fmt.Fprintf(&b, " (%s)", e.Mood)
		}
		if text := strings.TrimSpace(e.Text); text != "" {
			b.WriteString("\n" + text)
		}
	}
	return b.String()
}

// Reminder renders the reminder setting
func Reminder(lang models.Language, info models.ReminderInfo) string {
	if !info.Enabled || info.Hour == nil || info.Minute == nil {
		return pick(lang, "Нагадування вимкнено.", "Reminder is off.")
	}
	return fmt.Sprintf("%s %02d:%02d.", pick(lang, "Нагадування щодня о", "Reminder every day at"), *info.Hour, *info.Minute)
}

// Profile renders the stored profile
func Profile(lang models.Language, p models.Profile, traits *models.TraitsResult) string {
	var b strings.Builder
	name := p.Name
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(&b, "%s: %s\n", pick(lang, "Ім'я", "Name"), name)
	fmt.Fprintf(&b, "%s: %s\n", pick(lang, "Ментор", "Mentor"), p.Mentor)
	fmt.Fprintf(&b, "%s: %s\n", pick(lang, "Стать", "Gender"), p.Gender)
	fmt.Fprintf(&b, "%s: %s", pick(lang, "Мова", "Language"), lang)
	if traits != nil {
		fmt.Fprintf(&b, "\n%s: %s", pick(lang, "Сильні сторони", "Strengths"), labels(lang, traits.Strengths))
		fmt.Fprintf(&b, "\n%s: %s", pick(lang, "Зони росту", "Growth zones"), labels(lang, traits.GrowthZones))
	}
	return b.String()
}

func labels(lang models.Language, list []models.Trait) string {
	if len(list) == 0 {
		return "-"
	}
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Label(lang))
	}
	return strings.Join(out, ", ")
}
