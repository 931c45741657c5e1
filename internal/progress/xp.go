package progress

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/pkg/models"
)

// Storage keys owned by the XP ledger
const (
	KeyXP              = "@ya_tvorets_xp"
	KeyLevel           = "@ya_tvorets_level"
	KeyStreak          = "@ya_tvorets_streak"
	KeyLastSuccessDate = "@ya_tvorets_last_success_date"
)

// XPPerLevel is the amount of XP between two levels
const XPPerLevel = 100

// LevelForXP derives the level: floor(xp/100)+1, negative xp counts as 0
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPLedger owns lifetime xp, level, streak and the last success date
type XPLedger struct {
	store   database.Store
	clock   dates.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewXPLedger creates a ledger over store
func NewXPLedger(store database.Store, clock dates.Clock, logger *zap.Logger, m *metrics.Metrics) *XPLedger {
	return &XPLedger{
		store:   store,
		clock:   clock,
		logger:  logging.OrNop(logger).Named("xp"),
		metrics: m,
	}
}

// DefaultXPState is what a fresh installation starts with
func DefaultXPState() models.XPState {
	return models.XPState{XP: 0, Level: 1, Streak: 0}
}

// LoadState reads the ledger and rewrites a stale level
func (l *XPLedger) LoadState(ctx context.Context) models.XPState {
	state, err := l.load(ctx)
	if err != nil {
		l.fail("load", err)
		return DefaultXPState()
	}
	return state
}

func (l *XPLedger) load(ctx context.Context) (models.XPState, error) {
	raw := make(map[string]string, 4)
	for _, key := range []string{KeyXP, KeyLevel, KeyStreak, KeyLastSuccessDate} {
		v, _, err := l.store.Get(ctx, key)
		if err != nil {
			return models.XPState{}, err
		}
		raw[key] = v
	}

	xp := decodeCount(raw[KeyXP])
	level := LevelForXP(xp)

	// Уровень всегда выводится из xp; устаревшее значение перезаписываем
	if stored := decodeCount(raw[KeyLevel]); stored != level {
		if err := l.store.Set(ctx, KeyLevel, strconv.Itoa(level)); err != nil {
			l.fail("heal level", err)
		} else {
			l.logger.Debug("healed stale level", zap.Int("stored", stored), zap.Int("level", level))
		}
	}

	return models.XPState{
		XP:              xp,
		Level:           level,
		Streak:          decodeCount(raw[KeyStreak]),
		LastSuccessDate: decodeDate(raw[KeyLastSuccessDate]),
	}, nil
}

// AddXP adds delta (which may be negative) and clamps the total at zero.
// This is the only path that changes lifetime xp.
func (l *XPLedger) AddXP(ctx context.Context, delta int) models.XPState {
	state, err := l.addXP(ctx, delta)
	if err != nil {
		l.fail("add xp", err)
	}
	return state
}

func (l *XPLedger) addXP(ctx context.Context, delta int) (models.XPState, error) {
	state, err := l.load(ctx)
	if err != nil {
		return DefaultXPState(), err
	}

	xp := state.XP + delta
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)

	if err := l.store.Set(ctx, KeyXP, strconv.Itoa(xp)); err != nil {
		return state, err
	}
	if err := l.store.Set(ctx, KeyLevel, strconv.Itoa(level)); err != nil {
		// level heals itself on the next load
		l.fail("write level", err)
	}

	state.XP = xp
	state.Level = level
	return state, nil
}

// RegisterDailySuccess advances the streak at most once per local day.
// A success yesterday continues the streak, any longer gap restarts it at 1.
func (l *XPLedger) RegisterDailySuccess(ctx context.Context) models.XPState {
	state, err := l.load(ctx)
	if err != nil {
		l.fail("register success", err)
		return DefaultXPState()
	}

	today := dates.Today(l.clock)
	if state.LastSuccessDate == today {
		return state
	}

	streak := 1
	if state.LastSuccessDate == dates.Yesterday(l.clock) {
		streak = state.Streak + 1
	}

	if err := l.store.Set(ctx, KeyStreak, strconv.Itoa(streak)); err != nil {
		l.fail("write streak", err)
		return state
	}
	if err := l.store.Set(ctx, KeyLastSuccessDate, today); err != nil {
		l.fail("write last success", err)
		return state
	}

	l.logger.Info("daily success registered", zap.String("date", today), zap.Int("streak", streak))
	l.metrics.Streak(streak)

	state.Streak = streak
	state.LastSuccessDate = today
	return state
}

// Keys lists every key the ledger owns
func (l *XPLedger) Keys() []string {
	return []string{KeyXP, KeyLevel, KeyStreak, KeyLastSuccessDate}
}

// Reset wipes the ledger back to defaults
func (l *XPLedger) Reset(ctx context.Context) {
	if err := l.store.MultiRemove(ctx, l.Keys()...); err != nil {
		l.fail("reset", err)
	}
}

func (l *XPLedger) fail(op string, err error) {
	l.logger.Warn("xp ledger storage failure", zap.String("op", op), zap.Error(err))
	l.metrics.StorageError("xp")
}

// decodeCount parses a stored non-negative integer; garbage and negatives become 0
func decodeCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Floor(f))
}

// decodeDate keeps the YYYY-MM-DD prefix of a stored date
func decodeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(dates.Layout) {
		raw = raw[:len(dates.Layout)]
	}
	return raw
}
