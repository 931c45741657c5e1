package ritual

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/pkg/models"
)

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newStore() (*Store, *database.FaultStore, *dates.FixedClock) {
	store := database.NewFaultStore(database.NewMemory())
	clock := dates.NewFixedClock(testNow)
	return NewStore(store, clock, nil), store, clock
}

func TestGates(t *testing.T) {
	ctx := context.Background()
	s, _, clock := newStore()

	assert.False(t, s.IsMorningDoneToday(ctx))
	assert.False(t, s.IsEveningDoneToday(ctx))

	s.MarkMorningDoneToday(ctx)
	assert.True(t, s.IsMorningDoneToday(ctx))
	assert.False(t, s.IsEveningDoneToday(ctx))

	s.MarkEveningDoneToday(ctx)
	assert.True(t, s.IsEveningDoneToday(ctx))

	clock.AddDays(1)
	assert.False(t, s.IsMorningDoneToday(ctx))
	assert.False(t, s.IsEveningDoneToday(ctx))
}

func TestGatesDegrade(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newStore()

	s.MarkMorningDoneToday(ctx)
	store.FailReads(true)
	assert.False(t, s.IsMorningDoneToday(ctx))

	store.FailReads(false)
	store.FailWrites(true)
	s.MarkEveningDoneToday(ctx)
	assert.False(t, s.IsEveningDoneToday(ctx))
}

func TestTodayGoal(t *testing.T) {
	ctx := context.Background()
	s, store, clock := newStore()

	assert.Equal(t, "", s.TodayGoal(ctx))

	s.SetTodayGoal(ctx, "  ship it  ")
	assert.Equal(t, "ship it", s.TodayGoal(ctx))

	raw, _, err := store.Get(ctx, KeyDayGoal)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-10","goal":"ship it"}`, raw)

	clock.AddDays(1)
	assert.Equal(t, "", s.TodayGoal(ctx))

	for _, bad := range []string{`nope`, `{"date":"2024-05-11","goal":7}`, `{"goal":"x"}`, `[]`} {
		require.NoError(t, store.Set(ctx, KeyDayGoal, bad))
		assert.Equal(t, "", s.TodayGoal(ctx), bad)
	}
}

func TestEnsureTodayGoal(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore()

	calls := 0
	factory := func() string {
		calls++
		return "  generated  "
	}

	assert.Equal(t, "generated", s.EnsureTodayGoal(ctx, factory))
	assert.Equal(t, "generated", s.EnsureTodayGoal(ctx, factory))
	assert.Equal(t, 1, calls)

	s.ResetTodayGoal(ctx)
	assert.Equal(t, "", s.TodayGoal(ctx))

	assert.Equal(t, "", s.EnsureTodayGoal(ctx, func() string { return "   " }))
	assert.Equal(t, "", s.TodayGoal(ctx))
	assert.Equal(t, "", s.EnsureTodayGoal(ctx, nil))
}

func TestWindows(t *testing.T) {
	for h := 0; h < 24; h++ {
		morning := h >= 4 && h <= 13
		evening := h >= 18 || h <= 3
		assert.Equal(t, morning, IsMorningWindow(h), h)
		assert.Equal(t, evening, IsEveningWindow(h), h)
	}

	at := func(h int) time.Time { return time.Date(2024, 5, 10, h, 30, 0, 0, time.UTC) }
	assert.Equal(t, WindowMorning, WindowAt(at(4)))
	assert.Equal(t, WindowDay, WindowAt(at(15)))
	assert.Equal(t, WindowEvening, WindowAt(at(23)))
	assert.Equal(t, WindowEvening, WindowAt(at(2)))
}

func TestComputeGate(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 5, 10, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name                          string
		hour                          int
		morningDone, eveningDone, act bool
		want                          Gate
	}{
		{"morning open", 9, false, false, false, Gate{Window: WindowMorning, ShowMorning: true}},
		{"morning done", 9, true, false, true, Gate{Window: WindowMorning}},
		{"daytime shows nothing", 15, false, false, true, Gate{Window: WindowDay}},
		{"evening with an action", 20, true, false, true, Gate{Window: WindowEvening, ShowEvening: true}},
		{"evening without an action", 20, true, false, false, Gate{Window: WindowEvening, EveningLocked: true, ShowHardDay: true}},
		{"after midnight counts as evening", 2, false, false, true, Gate{Window: WindowEvening, ShowEvening: true}},
		{"closed day", 22, true, true, false, Gate{Window: WindowEvening}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeGate(at(tt.hour), tt.morningDone, tt.eveningDone, tt.act))
		})
	}
}

func TestDefaultGoal(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, trait := range append([]models.Trait{models.TraitNone}, models.AllTraits...) {
		for _, lang := range []models.Language{models.LangUA, models.LangEN} {
			goal := DefaultGoal(lang, trait, rng)
			assert.NotEmpty(t, goal)
			pack := defaultGoals[trait]
			list := pack.en
			if lang == models.LangUA {
				list = pack.ua
			}
			assert.Contains(t, list, goal)
		}
	}

	assert.Contains(t, defaultGoals[models.TraitNone].en, DefaultGoal(models.LangEN, "unknown", nil))
	assert.NotEmpty(t, GoalFactory(models.LangUA, models.TraitCalm, nil)())
}
