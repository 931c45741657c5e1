package progress

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayActionsEmpty(t *testing.T) {
	f := newFixture(t)

	actions := f.actions.GetDayActions(context.Background())
	assert.Equal(t, "2024-05-10", actions.Date)
	assert.False(t, actions.HasAnyAction)
	assert.Empty(t, actions.AppliedXPEventIDs)
	assert.Nil(t, actions.LastActionAt)
}

func TestRegisterActionEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.actions.RegisterActionEvent(ctx, "X", 10)
	assert.True(t, first.DidApply)
	assert.Equal(t, 10, first.XP.XP)
	assert.Equal(t, 10, first.Actions.TodayXPEarned)

	second := f.actions.RegisterActionEvent(ctx, "X", 10)
	assert.False(t, second.DidApply)
	assert.Equal(t, 10, second.XP.XP)
	assert.Equal(t, 10, second.Actions.TodayXPEarned)
	assert.Equal(t, []string{"X"}, second.Actions.AppliedXPEventIDs)
	assert.True(t, second.Actions.HasAnyAction)
}

func TestRegisterActionEventEmptyID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := f.actions.RegisterActionEvent(ctx, "   ", 10)
	assert.False(t, res.DidApply)
	assert.False(t, res.Actions.HasAnyAction)
	assert.Nil(t, res.Actions.LastActionAt)
	assert.Equal(t, 0, res.XP.XP)

	assert.False(t, f.actions.GetDayActions(ctx).HasAnyAction)
	assert.Equal(t, 0, f.xp.LoadState(ctx).XP)
}

func TestRegisterActionEventZeroXP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		res := f.actions.RegisterActionEvent(ctx, "challenge_skip:2024-05-10:ch_calm_1", 0)
		assert.False(t, res.DidApply)
		assert.True(t, res.Actions.HasAnyAction)
		require.NotNil(t, res.Actions.LastActionAt)
	}

	actions := f.actions.GetDayActions(ctx)
	assert.Empty(t, actions.AppliedXPEventIDs)
	assert.Equal(t, 0, actions.TodayXPEarned)
	assert.Equal(t, 0, f.xp.LoadState(ctx).XP)

	// negative deltas behave like zero
	res := f.actions.RegisterActionEvent(ctx, "neg", -15)
	assert.False(t, res.DidApply)
	assert.Equal(t, 0, res.XP.XP)
}

func TestRegisterActionEventZeroXPDoesNotBlockLaterGrant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.actions.RegisterActionEvent(ctx, "task:2024-05-10:t_1", 0)
	res := f.actions.RegisterActionEvent(ctx, "task:2024-05-10:t_1", 10)
	assert.True(t, res.DidApply)
	assert.Equal(t, 10, res.Actions.TodayXPEarned)
}

func TestDuplicateRefreshesLastActionAt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.actions.RegisterActionEvent(ctx, "X", 10)
	f.clock.Advance(time.Hour)
	second := f.actions.RegisterActionEvent(ctx, "X", 10)

	require.NotNil(t, first.Actions.LastActionAt)
	require.NotNil(t, second.Actions.LastActionAt)
	assert.NotEqual(t, *first.Actions.LastActionAt, *second.Actions.LastActionAt)
}

func TestHardDayPrefix(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		id   string
		hard bool
	}{
		{"hard_day:2024-05-10", true},
		{"HARD_DAY:2024-05-10", true},
		{"task:2024-05-10:t_1", false},
		{"x_hard_day", false},
	}
	for _, tt := range tests {
		f := newFixture(t)
		res := f.actions.RegisterActionEvent(ctx, tt.id, 0)
		assert.Equal(t, tt.hard, res.Actions.HardDayMarked, tt.id)
	}
}

func TestHardDaySurvivesLaterEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.actions.RegisterActionEvent(ctx, "hard_day:2024-05-10", 0)
	res := f.actions.RegisterActionEvent(ctx, "task:2024-05-10:t_2", 10)
	assert.True(t, res.Actions.HardDayMarked)
}

func TestDayActionsRollover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.actions.RegisterActionEvent(ctx, "X", 10)
	f.clock.AddDays(1)

	actions := f.actions.GetDayActions(ctx)
	assert.Equal(t, "2024-05-11", actions.Date)
	assert.False(t, actions.HasAnyAction)
	assert.Equal(t, 0, actions.TodayXPEarned)

	// yesterday's id may be granted again on a new day
	res := f.actions.RegisterActionEvent(ctx, "X", 10)
	assert.True(t, res.DidApply)
	assert.Equal(t, 20, res.XP.XP)
	assert.Equal(t, 10, res.Actions.TodayXPEarned)
}

func TestDayActionsMalformedRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("not json", func(t *testing.T) {
		f := newFixture(t)
		f.set(t, KeyDayActions, "{oops")
		assert.False(t, f.actions.GetDayActions(ctx).HasAnyAction)
	})

	t.Run("field level recovery", func(t *testing.T) {
		f := newFixture(t)
		f.set(t, KeyDayActions, `{
			"date": "2024-05-10T08:00:00Z",
			"hasAnyAction": true,
			"todayXpEarned": 12.9,
			"appliedXpEventIds": ["a", " a ", "", null, "b"]
		}`)

		actions := f.actions.GetDayActions(ctx)
		assert.Equal(t, "2024-05-10", actions.Date)
		assert.True(t, actions.HasAnyAction)
		assert.Equal(t, 12, actions.TodayXPEarned)
		assert.Equal(t, []string{"a", "b"}, actions.AppliedXPEventIDs)
	})

	t.Run("negative earned", func(t *testing.T) {
		f := newFixture(t)
		f.set(t, KeyDayActions, `{"date":"2024-05-10","todayXpEarned":-4}`)
		assert.Equal(t, 0, f.actions.GetDayActions(ctx).TodayXPEarned)
	})
}

func TestDayActionsPersistedShape(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.actions.RegisterActionEvent(ctx, "X", 10)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.get(t, KeyDayActions)), &payload))
	for _, field := range []string{"date", "hasAnyAction", "hardDayMarked", "todayXpEarned", "appliedXpEventIds", "lastActionAt"} {
		assert.Contains(t, payload, field)
	}
}

func TestReconcileTodayXP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.actions.RegisterActionEvent(ctx, "a", 10)
	f.actions.RegisterActionEvent(ctx, "b", 20)

	rec := f.actions.ReconcileTodayXP(ctx)
	assert.Equal(t, 30, rec.XP.XP)
	assert.Equal(t, 30, rec.Actions.TodayXPEarned)
}

func TestActionLedgerWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.store.FailWrites(true)
	res := f.actions.RegisterActionEvent(ctx, "X", 10)
	assert.False(t, res.DidApply)
	f.store.FailWrites(false)

	// nothing was consumed, the grant can happen now
	res = f.actions.RegisterActionEvent(ctx, "X", 10)
	assert.True(t, res.DidApply)
	assert.Equal(t, 10, res.XP.XP)
}

func TestOverrideAndResetDayActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.actions.RegisterActionEvent(ctx, "X", 10)

	actions := f.actions.OverrideTodayXPEarned(ctx, 55)
	assert.Equal(t, 55, actions.TodayXPEarned)
	assert.Equal(t, 10, f.xp.LoadState(ctx).XP)

	f.actions.ResetDayActions(ctx)
	assert.False(t, f.actions.GetDayActions(ctx).HasAnyAction)
}
