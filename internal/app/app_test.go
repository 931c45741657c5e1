package app

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/reminder"
	"github.com/example/tvorets/pkg/models"
)

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *database.Memory, *dates.FixedClock) {
	t.Helper()
	store := database.NewMemory()
	clock := dates.NewFixedClock(testNow)
	a := NewWithOptions(Options{
		Store: store,
		Clock: clock,
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	t.Cleanup(func() { _ = a.Close() })
	return a, store, clock
}

func TestCompleteTaskGrantsOnce(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	out, err := a.CompleteTask(ctx, "t_1")
	require.NoError(t, err)
	assert.True(t, out.Result.DidApply)
	assert.True(t, out.Task.Completed)
	assert.Equal(t, dayplan.DefaultTaskXP, out.Result.XP.XP)
	assert.Contains(t, out.Message, "+10 XP")

	again, err := a.CompleteTask(ctx, "t_1")
	require.NoError(t, err)
	assert.False(t, again.Result.DidApply)
	assert.Equal(t, dayplan.DefaultTaskXP, again.Result.XP.XP)
	assert.True(t, strings.HasPrefix(again.Message, "Already counted: "))

	_, err = a.CompleteTask(ctx, "t_9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteChallengeJournalsAndGrantsXP(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	plan := a.Snapshot(ctx).DayPlan
	require.Len(t, plan.Challenges, challenges.DailyCount)
	id := plan.Challenges[0].ID

	out, err := a.CompleteChallenge(ctx, id)
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, models.StatusCompleted, out.Challenge.Status)
	assert.Equal(t, dayplan.DefaultChallengeXP, out.XP.XP)
	assert.Contains(t, out.Line, "Lev: step registered.")
	assert.True(t, strings.HasPrefix(out.Message, "+20 XP for an honest challenge.\n\n"))
	assert.True(t, strings.HasSuffix(out.Message, "XP: 20 • Level: 1 • Streak: 0"))

	entries := a.Journal(ctx, 0, models.SourceChallenge)
	require.Len(t, entries, 1)
	assert.Equal(t, "Challenge completed", entries[0].Title)
	assert.Equal(t, id, entries[0].Meta["challengeId"])

	// второй раз ничего не меняется
	again, err := a.CompleteChallenge(ctx, id)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, "This challenge is already closed.", again.Message)
	assert.Equal(t, dayplan.DefaultChallengeXP, again.XP.XP)
	assert.Len(t, a.Journal(ctx, 0, models.SourceChallenge), 1)
}

func TestSkipChallenge(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)
	require.NoError(t, a.UpdateProfile(ctx, ProfileUpdate{Language: ptr(models.LangUA)}))

	id := a.Snapshot(ctx).DayPlan.Challenges[1].ID
	out, err := a.SkipChallenge(ctx, id)
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, models.StatusSkipped, out.Challenge.Status)
	assert.Equal(t, 0, out.XP.XP)
	assert.True(t, strings.HasPrefix(out.Message, "Лев: "))

	entries := a.Journal(ctx, 0, "")
	require.Len(t, entries, 1)
	assert.Equal(t, "Челендж пропущено", entries[0].Title)

	assert.True(t, a.XP(ctx).Actions.HasAnyAction)

	_, err = a.SkipChallenge(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegenerateKeepsTasks(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	_, err := a.CompleteTask(ctx, "t_2")
	require.NoError(t, err)

	plan := a.RegenerateChallenges(ctx)
	assert.Len(t, plan.Challenges, challenges.DailyCount)
	for _, c := range plan.Challenges {
		assert.Equal(t, models.StatusPending, c.Status)
	}
	assert.True(t, plan.Tasks[1].Completed)
	assert.Equal(t, challenges.DailyCount, a.ChallengeSummary(ctx).Total)
}

func TestGoalAndCloseDay(t *testing.T) {
	ctx := context.Background()
	a, _, clock := newTestApp(t)

	assert.Equal(t, "read ten pages", a.SetGoal(ctx, "  read ten pages "))
	assert.Equal(t, "read ten pages", a.Goal(ctx))
	assert.NotEmpty(t, a.EveningQuestion(ctx))

	_, err := a.CompleteTask(ctx, "t_3")
	require.NoError(t, err)

	clock.Advance(10 * time.Hour)
	res, err := a.CloseDay(ctx, "Calm day, finished the chapter.")
	require.NoError(t, err)
	assert.True(t, res.SuccessRegistered)
	assert.Equal(t, 1, res.XP.Streak)
	assert.Equal(t, models.SourceReflection, res.Entry.Source)

	assert.Empty(t, a.SetGoal(ctx, " "))
	assert.Empty(t, a.Goal(ctx))
}

func TestRitualGate(t *testing.T) {
	ctx := context.Background()
	a, _, clock := newTestApp(t)

	g := a.Gate(ctx)
	assert.True(t, g.ShowMorning)
	assert.False(t, g.ShowEvening)

	// morning, nothing done: neither close is open
	_, err := a.CloseDay(ctx, "too early")
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.CloseHardDay(ctx, "")
	assert.ErrorIs(t, err, ErrLocked)

	// evening without an action: only the hard day
	clock.Advance(11 * time.Hour)
	g = a.Gate(ctx)
	assert.True(t, g.EveningLocked)
	assert.True(t, g.ShowHardDay)
	_, err = a.CloseDay(ctx, "nothing yet")
	assert.ErrorIs(t, err, ErrLocked)
	assert.False(t, a.Snapshot(ctx).EveningDone)
	assert.Empty(t, a.Journal(ctx, 0, models.SourceReflection))

	_, err = a.CompleteTask(ctx, "t_1")
	require.NoError(t, err)
	g = a.Gate(ctx)
	assert.True(t, g.ShowEvening)
	assert.False(t, g.ShowHardDay)
	_, err = a.CloseHardDay(ctx, "")
	assert.ErrorIs(t, err, ErrLocked)

	_, err = a.CloseDay(ctx, "")
	require.NoError(t, err)
	_, err = a.CloseDay(ctx, "again")
	assert.ErrorIs(t, err, ErrLocked, "a closed day stays closed")
}

func TestCloseHardDayInLockedEvening(t *testing.T) {
	ctx := context.Background()
	a, _, clock := newTestApp(t)
	clock.Advance(12 * time.Hour)

	res, err := a.CloseHardDay(ctx, "")
	require.NoError(t, err)
	assert.True(t, a.XP(ctx).Actions.HardDayMarked)
	assert.Equal(t, 0, res.XP.Streak)
	assert.Equal(t, models.SourceBadDay, res.Entry.Source)
	assert.False(t, a.Gate(ctx).ShowHardDay)
}

func TestAddNoteWithMood(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	entry, line := a.AddNote(ctx, "", "tired but here", models.MoodLow)
	assert.Equal(t, "Untitled", entry.Title)
	assert.Equal(t, models.SourceNote, entry.Source)
	assert.NotEmpty(t, line)

	_, line = a.AddNote(ctx, "plain", "no mood", "")
	assert.Empty(t, line)
	assert.Len(t, a.Journal(ctx, 10, models.SourceNote), 2)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	require.NoError(t, a.UpdateProfile(ctx, ProfileUpdate{
		Name:   ptr("Ira"),
		Mentor: ptr(models.MentorKatana),
		Gender: ptr(models.GenderFemale),
	}))
	p, lang, traits := a.Profile(ctx)
	assert.Equal(t, models.Profile{Name: "Ira", Mentor: models.MentorKatana, Gender: models.GenderFemale}, p)
	assert.Equal(t, models.LangEN, lang)
	assert.Nil(t, traits)

	err := a.UpdateProfile(ctx, ProfileUpdate{Mentor: ptr(models.Mentor("yoda"))})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, a.SetTraits(ctx, models.TraitsResult{GrowthZones: []models.Trait{models.TraitCalm}}))
	assert.Equal(t, models.TraitCalm, a.Snapshot(ctx).MainGrowth)
}

func TestProfileWriteFailure(t *testing.T) {
	ctx := context.Background()
	fault := database.NewFaultStore(database.NewMemory())
	a := NewWithOptions(Options{Store: fault, Clock: dates.NewFixedClock(testNow)})

	fault.FailWrites(true)
	err := a.UpdateProfile(ctx, ProfileUpdate{Name: ptr("Ira")})
	assert.ErrorIs(t, err, database.ErrInjected)
}

func TestReminderLifecycle(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	require.NoError(t, a.ScheduleReminder(ctx, 21, 30))
	info := a.ReminderInfo(ctx)
	assert.True(t, info.Enabled)
	require.NotNil(t, info.Hour)
	assert.Equal(t, 21, *info.Hour)

	assert.ErrorIs(t, a.ScheduleReminder(ctx, 24, 0), ErrInvalid)

	assert.Equal(t, "Lev reminds you", a.PreviewReminder(ctx).Title)

	require.NoError(t, a.CancelReminder(ctx))
	assert.False(t, a.ReminderInfo(ctx).Enabled)
}

type sentReminders struct{ texts []reminder.Text }

func (s *sentReminders) SendReminder(_ context.Context, text reminder.Text) error {
	s.texts = append(s.texts, text)
	return nil
}

func TestSchedulerFollowsReminder(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)
	n := &sentReminders{}
	sched := a.NewScheduler(n, reminder.SchedulerOptions{Location: time.UTC})

	require.NoError(t, a.ScheduleReminder(ctx, 8, 0))
	assert.True(t, sched.Scheduled())

	require.NoError(t, sched.Fire(ctx))
	require.Len(t, n.texts, 1)
	assert.Equal(t, "Lev reminds you", n.texts[0].Title)

	require.NoError(t, a.CancelReminder(ctx))
	assert.False(t, sched.Scheduled())
	require.NoError(t, sched.Fire(ctx))
	assert.Len(t, n.texts, 1)
}

func TestImportCatalog(t *testing.T) {
	ctx := context.Background()
	a, store, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "catalog.csv")
	csv := "id,trait,complexity,title_ua,title_en,description_ua,description_en\n" +
		"c1,focus,easy,Фокус,Focus one,,\n" +
		"c2,calm,medium,Спокій,Calm two,,\n" +
		"c3,empathy,hard,Емпатія,Empathy three,,\n" +
		",calm,easy,Без id,No id,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	res, err := a.ImportCatalog(ctx, path)
	require.NoError(t, err)
	assert.Len(t, res.Definitions, 3)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, 3, a.Catalog().Len())

	saved, err := challenges.LoadCatalog(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Len())

	// сегодняшний набор обновляется только после regenerate
	plan := a.RegenerateChallenges(ctx)
	for _, c := range plan.Challenges {
		assert.Contains(t, []string{"c1", "c2", "c3"}, c.ID)
	}

	require.NoError(t, a.ResetCatalog(ctx))
	assert.Equal(t, challenges.DefaultCatalog().Len(), a.Catalog().Len())
}

func TestImportCatalogTooSmall(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "small.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,trait\nc1,focus,easy,,One,,\n"), 0o600))

	_, err := a.ImportCatalog(ctx, path)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, challenges.DefaultCatalog().Len(), a.Catalog().Len())
}

func TestResetKeepsCatalog(t *testing.T) {
	ctx := context.Background()
	a, store, _ := newTestApp(t)

	custom, err := challenges.NewCatalog(challenges.DefaultCatalog().All()[:5])
	require.NoError(t, err)
	require.NoError(t, challenges.SaveCatalog(ctx, store, custom))

	_, err = a.CompleteTask(ctx, "t_1")
	require.NoError(t, err)
	a.SetGoal(ctx, "ship it")
	a.AddNote(ctx, "n", "text", "")
	require.NoError(t, a.UpdateProfile(ctx, ProfileUpdate{Name: ptr("Ira")}))
	require.NoError(t, a.ScheduleReminder(ctx, 9, 15))

	require.NoError(t, a.Reset(ctx))

	for _, k := range a.Keys() {
		_, ok, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	assert.Equal(t, 0, a.XP(ctx).XP.XP)
	assert.Empty(t, a.Journal(ctx, 0, ""))
	assert.Empty(t, a.Goal(ctx))
	assert.False(t, a.ReminderInfo(ctx).Enabled)

	_, ok, err := store.Get(ctx, challenges.KeyCatalog)
	require.NoError(t, err)
	assert.True(t, ok)
}

func ptr[T any](v T) *T { return &v }
