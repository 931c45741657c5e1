package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/internal/snapshot"
	"github.com/example/tvorets/pkg/models"
)

func TestToday(t *testing.T) {
	s := snapshot.Snapshot{
		Date:                 "2024-05-10",
		Lang:                 models.LangEN,
		MainGrowth:           models.TraitFocus,
		Goal:                 "ship it",
		MentorLine:           "Lev: one step.",
		ChallengesHeaderLine: "Lev: choose one action and do it.",
		SummaryLine:          "Summary: +10 XP.",
		DayPlan: models.DayPlan{
			Tasks: []models.TodayTask{{ID: "t_1", Type: models.TaskHabit, Completed: true}},
			Challenges: []models.Challenge{
				{ID: "c1", Trait: models.TraitCalm, TitleEN: "Breathe", Status: models.StatusSkipped},
			},
		},
	}

	out := Today(s)
	assert.Contains(t, out, "📅 2024-05-10 • Growth: Focus")
	assert.Contains(t, out, "🎯 Goal: ship it")
	assert.Contains(t, out, "[x] t_1 ")
	assert.Contains(t, out, "[-] c1 Breathe (Calm)")
	assert.Contains(t, out, "Summary: +10 XP.")
	assert.NotContains(t, out, "/evening")

	s.Gate = ritual.Gate{Window: ritual.WindowEvening, EveningLocked: true, ShowHardDay: true}
	assert.Contains(t, Today(s), "🔒 The evening opens after your first step. Hard day? /hardday")
	s.Gate = ritual.Gate{Window: ritual.WindowEvening, ShowEvening: true}
	assert.Contains(t, Today(s), "🌙 You can close the day: /evening")
}

func TestRitualLocked(t *testing.T) {
	day := ritual.Gate{Window: ritual.WindowDay}
	locked := ritual.Gate{Window: ritual.WindowEvening, EveningLocked: true, ShowHardDay: true}
	open := ritual.Gate{Window: ritual.WindowEvening, ShowEvening: true}
	closed := ritual.Gate{Window: ritual.WindowEvening}

	assert.Equal(t, "The evening opens at 18:00.", RitualLocked(models.LangEN, day, false))
	assert.Equal(t, "Вечір відкривається о 18:00.", RitualLocked(models.LangUA, day, true))
	assert.Contains(t, RitualLocked(models.LangEN, locked, false), "/hardday")
	assert.Contains(t, RitualLocked(models.LangEN, open, true), "/evening")
	assert.Equal(t, "The day is already closed.", RitualLocked(models.LangEN, closed, false))
	assert.Equal(t, "The day is already closed.", RitualLocked(models.LangEN, closed, true))
}

func TestXP(t *testing.T) {
	out := XP(models.LangUA, models.Reconciled{
		XP:      models.XPState{XP: 130, Level: 2, Streak: 4, LastSuccessDate: "2024-05-09"},
		Actions: models.DayActions{TodayXPEarned: 30, HardDayMarked: true},
	})
	assert.Equal(t, "XP: 130\nРівень: 2\nСерія: 4\nОстанній успішний день: 2024-05-09\nСьогодні: +30 XP (важкий день)", out)
}

func TestJournal(t *testing.T) {
	assert.Equal(t, "The journal is empty.", Journal(models.LangEN, nil))

	out := Journal(models.LangEN, []models.JournalEntry{
		{CreatedAt: "2024-05-10T20:15:00Z", Source: models.SourceNote, Title: "Note", Text: "hello", Mood: models.MoodHigh},
		{CreatedAt: "2024-05-09T08:00:00Z", Source: models.SourceSystem, Title: "Start"},
	})
	assert.Equal(t, "2024-05-10 20:15 • note • Note (high)\nhello\n\n2024-05-09 08:00 • system • Start", out)
}

func TestReminder(t *testing.T) {
	h, m := 7, 5
	assert.Equal(t, "Reminder is off.", Reminder(models.LangEN, models.ReminderInfo{}))
	assert.Equal(t, "Нагадування щодня о 07:05.", Reminder(models.LangUA, models.ReminderInfo{Enabled: true, Hour: &h, Minute: &m}))
}
