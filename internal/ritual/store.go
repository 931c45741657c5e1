package ritual

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
)

// Storage keys owned by the ritual store
const (
	KeyMorningDone = "@ya_tvorets_morning_done_date_v1"
	KeyEveningDone = "@ya_tvorets_evening_done_date_v1"
	KeyDayGoal     = "@ya_tvorets_day_goal_v1"
)

// Store keeps the morning/evening gates and today's intention
type Store struct {
	store  database.Store
	clock  dates.Clock
	logger *zap.Logger
}

// NewStore creates a ritual store
func NewStore(store database.Store, clock dates.Clock, logger *zap.Logger) *Store {
	return &Store{
		store:  store,
		clock:  clock,
		logger: logging.OrNop(logger).Named("ritual"),
	}
}

func (s *Store) IsMorningDoneToday(ctx context.Context) bool {
	return s.isDoneToday(ctx, KeyMorningDone)
}

func (s *Store) MarkMorningDoneToday(ctx context.Context) {
	s.markDoneToday(ctx, KeyMorningDone)
}

func (s *Store) IsEveningDoneToday(ctx context.Context) bool {
	return s.isDoneToday(ctx, KeyEveningDone)
}

func (s *Store) MarkEveningDoneToday(ctx context.Context) {
	s.markDoneToday(ctx, KeyEveningDone)
}

func (s *Store) isDoneToday(ctx context.Context, key string) bool {
	v, _, err := s.store.Get(ctx, key)
	if err != nil {
		s.fail("read gate", key, err)
		return false
	}
	return v == dates.Today(s.clock)
}

func (s *Store) markDoneToday(ctx context.Context, key string) {
	if err := s.store.Set(ctx, key, dates.Today(s.clock)); err != nil {
		s.fail("mark gate", key, err)
	}
}

type dayGoal struct {
	Date string `json:"date"`
	Goal string `json:"goal"`
}

// TodayGoal returns today's intention, "" when none is set or the stored one is stale
func (s *Store) TodayGoal(ctx context.Context) string {
	raw, ok, err := s.store.Get(ctx, KeyDayGoal)
	if err != nil {
		s.fail("read goal", KeyDayGoal, err)
		return ""
	}
	if !ok || raw == "" {
		return ""
	}

	var w struct {
		Date any `json:"date"`
		Goal any `json:"goal"`
	}
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return ""
	}
	date, _ := w.Date.(string)
	goal, ok := w.Goal.(string)
	if !ok || date != dates.Today(s.clock) {
		return ""
	}
	return goal
}

// SetTodayGoal stores the trimmed goal for today
func (s *Store) SetTodayGoal(ctx context.Context, goal string) {
	payload := dayGoal{Date: dates.Today(s.clock), Goal: strings.TrimSpace(goal)}
	if err := database.SetJSON(ctx, s.store, KeyDayGoal, payload); err != nil {
		s.fail("write goal", KeyDayGoal, err)
	}
}

// EnsureTodayGoal returns the existing goal, or stores and returns the
// trimmed result of factory. An empty factory result stores nothing.
func (s *Store) EnsureTodayGoal(ctx context.Context, factory func() string) string {
	if existing := s.TodayGoal(ctx); strings.TrimSpace(existing) != "" {
		return existing
	}
	if factory == nil {
		return ""
	}

	generated := strings.TrimSpace(factory())
	if generated == "" {
		return ""
	}
	s.SetTodayGoal(ctx, generated)
	return generated
}

// ResetTodayGoal clears today's intention
func (s *Store) ResetTodayGoal(ctx context.Context) {
	s.SetTodayGoal(ctx, "")
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyMorningDone, KeyEveningDone, KeyDayGoal}
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Warn("ritual storage failure", zap.String("op", op), zap.String("key", key), zap.Error(err))
}
