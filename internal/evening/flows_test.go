package evening

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/progress"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/pkg/models"
)

var testNow = time.Date(2024, 5, 10, 21, 0, 0, 0, time.UTC)

func newFlows(t *testing.T) (*Flows, Deps, *dates.FixedClock) {
	t.Helper()
	store := database.NewMemory()
	clock := dates.NewFixedClock(testNow)
	m := metrics.New()
	xp := progress.NewXPLedger(store, clock, nil, m)
	actions := progress.NewActionLedger(store, clock, xp, nil, m)
	ch := challenges.NewStore(store, clock, nil, nil, m)

	d := Deps{
		Clock:   clock,
		Profile: profile.NewStore(store, nil),
		XP:      xp,
		Actions: actions,
		Plans:   dayplan.NewStore(store, clock, ch, actions, rand.New(rand.NewPCG(1, 1)), nil),
		Rituals: ritual.NewStore(store, clock, nil),
		Journal: journal.NewStore(store, clock, nil),
		Memory:  mentor.NewMemoryStore(store, clock, nil),
		Phrases: mentor.NewPhrases(rand.New(rand.NewPCG(2, 2))),
		Metrics: m,
	}
	return New(d, nil), d, clock
}

func TestCloseDayWithAction(t *testing.T) {
	ctx := context.Background()
	f, d, _ := newFlows(t)

	plan := d.Plans.GetOrCreate(ctx, models.TraitNone)
	d.Plans.CompleteTask(ctx, plan.Tasks[0].ID, models.TraitNone, dayplan.DefaultTaskXP)
	d.Rituals.SetTodayGoal(ctx, "read 5 pages")

	res := f.CloseDay(ctx, models.LangEN, "")

	assert.True(t, res.SuccessRegistered)
	assert.Equal(t, 1, res.XP.Streak)
	assert.Equal(t, "2024-05-10", res.XP.LastSuccessDate)
	assert.Equal(t, 10, res.XP.XP)
	assert.Equal(t, 10, res.Actions.TodayXPEarned)
	assert.True(t, d.Rituals.IsEveningDoneToday(ctx))

	assert.Equal(t, "Evening reflection", res.Entry.Title)
	assert.Equal(t, models.SourceReflection, res.Entry.Source)
	assert.Equal(t, "evening_reflection:2024-05-10", res.Entry.IdempotencyKey())
	assert.Equal(t, "Intention: \"read 5 pages\".\nI made at least one step. That counts.\nNot perfect is fine. Direction matters more than judging.", res.Entry.Text)

	assert.Equal(t, "Creator, day closed. Not perfect, but honest. That is movement.", res.Line)
	assert.Equal(t, "Summary: +10 XP. Tasks 1/5, challenges 0/3. Level 1, streak 1.", res.Summary)
	assert.Equal(t, res.Line+"\n\n"+res.Summary, res.Message)

	// a second close is a no-op for the journal and the streak
	again := f.CloseDay(ctx, models.LangEN, "more words")
	assert.Equal(t, res.Entry.ID, again.Entry.ID)
	assert.Equal(t, 1, again.XP.Streak)
	assert.Len(t, d.Journal.All(ctx), 1)
}

func TestCloseDayRecordsMemory(t *testing.T) {
	ctx := context.Background()
	f, d, clock := newFlows(t)

	require.NoError(t, d.Profile.SaveMentor(ctx, models.MentorLana))
	require.NoError(t, d.Profile.SaveTraits(ctx, models.TraitsResult{GrowthZones: []models.Trait{models.TraitFocus}}))
	d.Rituals.SetTodayGoal(ctx, "deep work")
	plan := d.Plans.GetOrCreate(ctx, models.TraitFocus)
	d.Plans.CompleteTask(ctx, plan.Tasks[1].ID, models.TraitFocus, 15)

	f.CloseDay(ctx, models.LangEN, "good day")

	clock.AddDays(1)
	m, ok := d.Memory.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, "2024-05-10", m.Date)
	assert.Equal(t, "deep work", m.Goal)
	assert.Equal(t, 15, m.XPEarned)
	assert.True(t, m.HasAnyAction)
	assert.Equal(t, models.ClosedEvening, m.ClosedAs)
	assert.Equal(t, models.MentorLana, m.Mentor)
	assert.Equal(t, models.TraitFocus, m.Growth)
	assert.Equal(t, models.ModeNeutral, m.Mode)
}

func TestCloseDayWithoutActionKeepsStreak(t *testing.T) {
	ctx := context.Background()
	f, d, _ := newFlows(t)

	res := f.CloseDay(ctx, models.LangUA, "")

	assert.False(t, res.SuccessRegistered)
	assert.Equal(t, 0, res.XP.Streak)
	assert.Equal(t, "Ціль дня: -\nСьогодні було важко. Але я зафіксував(ла) день.\nБез оцінки. Просто закриваю день.", res.Entry.Text)
	assert.Equal(t, "Вечірня рефлексія", res.Entry.Title)
	assert.True(t, d.Rituals.IsEveningDoneToday(ctx))
}

func TestCloseHardDay(t *testing.T) {
	ctx := context.Background()
	f, d, _ := newFlows(t)

	plan := d.Plans.GetOrCreate(ctx, models.TraitNone)
	d.Plans.CompleteTask(ctx, plan.Tasks[0].ID, models.TraitNone, dayplan.DefaultTaskXP)

	res := f.CloseHardDay(ctx, models.LangEN, "")

	assert.Equal(t, "Hard day", res.Entry.Title)
	assert.Equal(t, models.SourceBadDay, res.Entry.Source)
	assert.Equal(t, models.MoodLow, res.Entry.Mood)
	assert.Equal(t, "hard_day:2024-05-10", res.Entry.IdempotencyKey())
	assert.Equal(t, "Quiet day close. No words, but I am here.", res.Entry.Text)

	assert.True(t, res.Actions.HardDayMarked)
	assert.Equal(t, 10, res.XP.XP, "hard day grants nothing")
	assert.Equal(t, 0, res.XP.Streak)
	assert.True(t, d.Rituals.IsEveningDoneToday(ctx))

	assert.Contains(t, res.Line, "Creator")
	assert.Equal(t, "Lev: Creator, hard days are part of the path.", res.MoodLine)
	assert.Equal(t, "Saved.\n\n"+res.Line+"\n\n"+res.MoodLine+"\n\n"+res.Summary, res.Message)

	// closing normally afterwards still does not advance the streak
	after := f.CloseDay(ctx, models.LangEN, "")
	assert.False(t, after.SuccessRegistered)
	assert.Equal(t, 0, after.XP.Streak)
	assert.Len(t, d.Journal.All(ctx), 2)
}

func TestCloseHardDayWithText(t *testing.T) {
	ctx := context.Background()
	f, d, clock := newFlows(t)

	res := f.CloseHardDay(ctx, models.LangEN, "  tired  ")
	assert.Equal(t, "tired", res.Entry.Text)
	assert.Equal(t, "Creator, day closed. Not perfect, but honest. That is movement.", res.Line)

	clock.AddDays(1)
	m, ok := d.Memory.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, models.ClosedBadDay, m.ClosedAs)
}

func TestMorningEntry(t *testing.T) {
	ctx := context.Background()
	f, d, _ := newFlows(t)

	res := f.MorningEntry(ctx, models.LangEN)
	assert.NotEmpty(t, res.Goal)
	assert.NotEmpty(t, res.Line)
	assert.Equal(t, "30 seconds. Mark the start, then pick 1 small step.", res.Hint)
	assert.True(t, d.Rituals.IsMorningDoneToday(ctx))

	d.Rituals.SetTodayGoal(ctx, "mine")
	assert.Equal(t, "mine", f.MorningEntry(ctx, models.LangEN).Goal)
}

func TestMicroStep(t *testing.T) {
	ctx := context.Background()
	f, d, _ := newFlows(t)

	res, ok := f.MicroStep(ctx, models.TaskBody)
	require.True(t, ok)
	assert.Equal(t, models.TaskBody, res.Task.Type)
	assert.True(t, res.Result.DidApply)
	assert.Equal(t, dayplan.DefaultTaskXP, res.Result.XP.XP)

	for i := 0; i < 4; i++ {
		_, ok = f.MicroStep(ctx, models.TaskBody)
		require.True(t, ok)
	}
	_, ok = f.MicroStep(ctx, models.TaskBody)
	assert.False(t, ok)
	assert.Equal(t, 50, d.XP.LoadState(ctx).XP)
}

func TestPickMicroTask(t *testing.T) {
	tasks := []models.TodayTask{
		{ID: "t_1", Type: models.TaskHabit, Completed: true},
		{ID: "t_2", Type: models.TaskFocus, IsGrowthFocused: true},
		{ID: "t_3", Type: models.TaskReflection},
	}

	got, ok := PickMicroTask(tasks, models.TaskReflection)
	require.True(t, ok)
	assert.Equal(t, "t_3", got.ID)

	got, _ = PickMicroTask(tasks, models.TaskHabit)
	assert.Equal(t, "t_2", got.ID)

	tasks[1].IsGrowthFocused = false
	got, _ = PickMicroTask(tasks, models.TaskBody)
	assert.Equal(t, "t_2", got.ID)

	_, ok = PickMicroTask([]models.TodayTask{{Completed: true}}, models.TaskBody)
	assert.False(t, ok)
}

func TestAutoEveningTextGender(t *testing.T) {
	got := AutoEveningText(models.LangUA, models.GenderFemale, "", true)
	assert.Contains(t, got, "Я зробила хоча б один крок.")

	got = AutoEveningText(models.LangUA, models.GenderMale, "біг", false)
	assert.Equal(t, "Ціль дня: \"біг\".\nСьогодні було важко. Але я зафіксував день.\nНе ідеально, і це нормально. Напрям важливіший за оцінку.", got)
}
