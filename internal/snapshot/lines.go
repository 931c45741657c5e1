package snapshot

import (
	"fmt"
	"strings"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/pkg/models"
)

// SummaryLine is the one-line recap of the day.
// Skipped challenges count as touched.
func SummaryLine(lang models.Language, actions models.DayActions, plan models.DayPlan, xp models.XPState) string {
	done := 0
	for _, t := range plan.Tasks {
		if t.Completed {
			done++
		}
	}
	touched := 0
	for _, c := range plan.Challenges {
		if c.Status != models.StatusPending {
			touched++
		}
	}

	earned := max(0, actions.TodayXPEarned)
	if lang == models.LangUA {
		return fmt.Sprintf("Підсумок: +%d XP. Задачі %d/%d, челенджі %d/%d. Рівень %d, серія %d.",
			earned, done, len(plan.Tasks), touched, challenges.DailyCount, xp.Level, xp.Streak)
	}
	return fmt.Sprintf("Summary: +%d XP. Tasks %d/%d, challenges %d/%d. Level %d, streak %d.",
		earned, done, len(plan.Tasks), touched, challenges.DailyCount, xp.Level, xp.Streak)
}

// GoalPulseLine nudges toward the intention, "" when there is none
func GoalPulseLine(lang models.Language, goal string, hasAnyAction bool) string {
	if strings.TrimSpace(goal) == "" {
		return ""
	}
	switch {
	case hasAnyAction && lang == models.LangUA:
		return "Є крок. Ціль про напрям, не про ідеально."
	case hasAnyAction:
		return "A step is done. Intention is about direction, not perfection."
	case lang == models.LangUA:
		return "Якщо важко, зроби мінімум."
	default:
		return "If it is hard, do the minimum."
	}
}
