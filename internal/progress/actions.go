package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/pkg/models"
)

// KeyDayActions holds today's action record
const KeyDayActions = "@ya_tvorets_day_actions_v1"

// HardDayPrefix marks events that flag the day as a hard day
const HardDayPrefix = "hard_day"

// Outcomes reported to metrics
const (
	OutcomeIgnored    = "ignored"
	OutcomeActionOnly = "action_only"
	OutcomeDuplicate  = "duplicate"
	OutcomeApplied    = "applied"
)

// ActionLedger tracks what happened today and makes XP grants idempotent per event id
type ActionLedger struct {
	store   database.Store
	clock   dates.Clock
	xp      *XPLedger
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewActionLedger creates an action ledger that grants XP through xp
func NewActionLedger(store database.Store, clock dates.Clock, xp *XPLedger, logger *zap.Logger, m *metrics.Metrics) *ActionLedger {
	return &ActionLedger{
		store:   store,
		clock:   clock,
		xp:      xp,
		logger:  logging.OrNop(logger).Named("actions"),
		metrics: m,
	}
}

// dayActionsWire is the persisted shape, decoded leniently
type dayActionsWire struct {
	Date              string  `json:"date"`
	HasAnyAction      bool    `json:"hasAnyAction"`
	HardDayMarked     bool    `json:"hardDayMarked"`
	TodayXPEarned     float64 `json:"todayXpEarned"`
	AppliedXPEventIDs []any   `json:"appliedXpEventIds"`
	LastActionAt      *string `json:"lastActionAt"`
}

func emptyDayActions(date string) models.DayActions {
	return models.DayActions{Date: date, AppliedXPEventIDs: []string{}}
}

// decodeDayActions returns false when raw is not a usable record
func decodeDayActions(raw string) (models.DayActions, bool) {
	var w dayActionsWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return models.DayActions{}, false
	}

	date := decodeDate(w.Date)
	if date == "" {
		return models.DayActions{}, false
	}

	earned := 0
	if !math.IsNaN(w.TodayXPEarned) && !math.IsInf(w.TodayXPEarned, 0) && w.TodayXPEarned > 0 {
		earned = int(math.Floor(w.TodayXPEarned))
	}

	ids := make([]string, 0, len(w.AppliedXPEventIDs))
	seen := make(map[string]bool, len(w.AppliedXPEventIDs))
	for _, v := range w.AppliedXPEventIDs {
		if v == nil {
			continue
		}
		id := strings.TrimSpace(fmt.Sprint(v))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return models.DayActions{
		Date:              date,
		HasAnyAction:      w.HasAnyAction,
		HardDayMarked:     w.HardDayMarked,
		TodayXPEarned:     earned,
		AppliedXPEventIDs: ids,
		LastActionAt:      w.LastActionAt,
	}, true
}

// readToday returns today's record; anything stale, absent or broken yields an empty one
func (l *ActionLedger) readToday(ctx context.Context) models.DayActions {
	today := dates.Today(l.clock)

	raw, ok, err := l.store.Get(ctx, KeyDayActions)
	if err != nil {
		l.fail("read", err)
		return emptyDayActions(today)
	}
	if !ok || raw == "" {
		return emptyDayActions(today)
	}

	actions, valid := decodeDayActions(raw)
	if !valid {
		l.logger.Warn("discarding malformed day actions record")
		return emptyDayActions(today)
	}
	if actions.Date != today {
		return emptyDayActions(today)
	}
	return actions
}

func (l *ActionLedger) write(ctx context.Context, actions models.DayActions) error {
	return database.SetJSON(ctx, l.store, KeyDayActions, actions)
}

// GetDayActions returns today's record
func (l *ActionLedger) GetDayActions(ctx context.Context) models.DayActions {
	return l.readToday(ctx)
}

// RegisterActionEvent records an action and grants xpDelta at most once per event id per day.
//
// An empty id changes nothing. A non-positive delta only marks the action and
// never consumes the id, so zero-XP events can repeat. A replayed id refreshes
// the action timestamp without granting XP again.
func (l *ActionLedger) RegisterActionEvent(ctx context.Context, eventID string, xpDelta int) models.ActionResult {
	eventID = strings.TrimSpace(eventID)
	if xpDelta < 0 {
		xpDelta = 0
	}

	current := l.readToday(ctx)

	if eventID == "" {
		l.metrics.ActionEvent(OutcomeIgnored)
		return models.ActionResult{XP: l.xp.LoadState(ctx), Actions: current}
	}

	now := dates.NowRFC3339(l.clock)
	next := current
	next.HasAnyAction = true
	next.LastActionAt = &now
	if strings.HasPrefix(strings.ToLower(eventID), HardDayPrefix) {
		next.HardDayMarked = true
	}

	outcome := OutcomeActionOnly
	switch {
	case xpDelta == 0:
	case current.HasApplied(eventID):
		outcome = OutcomeDuplicate
	default:
		outcome = OutcomeApplied
	}

	if outcome != OutcomeApplied {
		if err := l.write(ctx, next); err != nil {
			l.fail("write", err)
			next = current
		}
		l.metrics.ActionEvent(outcome)
		return models.ActionResult{XP: l.xp.LoadState(ctx), Actions: next}
	}

	state, err := l.xp.addXP(ctx, xpDelta)
	if err != nil {
		// XP was not granted, keep the id free so a retry can apply it
		l.xp.fail("add xp", err)
		if werr := l.write(ctx, next); werr != nil {
			l.fail("write", werr)
			next = current
		}
		return models.ActionResult{XP: state, Actions: next}
	}

	next.TodayXPEarned += xpDelta
	next.AppliedXPEventIDs = append(append([]string{}, current.AppliedXPEventIDs...), eventID)
	if err := l.write(ctx, next); err != nil {
		l.fail("write", err)
	}

	l.logger.Debug("xp event applied", zap.String("event", eventID), zap.Int("xp", xpDelta))
	l.metrics.ActionEvent(OutcomeApplied)
	l.metrics.XPGranted(xpDelta)

	return models.ActionResult{DidApply: true, XP: state, Actions: next}
}

// ReconcileTodayXP joins the lifetime ledger with today's record
func (l *ActionLedger) ReconcileTodayXP(ctx context.Context) models.Reconciled {
	return models.Reconciled{XP: l.xp.LoadState(ctx), Actions: l.readToday(ctx)}
}

// OverrideTodayXPEarned replaces today's earned counter without touching lifetime xp.
// It is a maintenance tool, normal flows never call it.
func (l *ActionLedger) OverrideTodayXPEarned(ctx context.Context, value int) models.DayActions {
	actions := l.readToday(ctx)
	actions.TodayXPEarned = max(value, 0)
	if err := l.write(ctx, actions); err != nil {
		l.fail("write", err)
	}
	return actions
}

// ResetDayActions drops today's record
func (l *ActionLedger) ResetDayActions(ctx context.Context) {
	if err := l.store.Remove(ctx, KeyDayActions); err != nil {
		l.fail("reset", err)
	}
}

// Keys lists every key the ledger owns
func (l *ActionLedger) Keys() []string {
	return []string{KeyDayActions}
}

func (l *ActionLedger) fail(op string, err error) {
	l.logger.Warn("day actions storage failure", zap.String("op", op), zap.Error(err))
	l.metrics.StorageError("actions")
}
