package mentor

import (
	"github.com/example/tvorets/pkg/models"
)

// PushStreak is the streak at which a same-day success switches to push
const PushStreak = 3

// ComputeMode classifies the tone from the streak and the last success date.
// today and yesterday are local calendar dates from the same clock as the XP ledger.
func ComputeMode(streak int, lastSuccessDate, today, yesterday string) models.MentorMode {
	switch {
	case streak >= PushStreak && lastSuccessDate == today:
		return models.ModePush
	case lastSuccessDate == "":
		return models.ModeSupport
	case lastSuccessDate != today && lastSuccessDate != yesterday:
		return models.ModeSupport
	}
	return models.ModeNeutral
}
