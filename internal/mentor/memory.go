package mentor

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/pkg/models"
)

// KeyMemory holds the last closed days
const KeyMemory = "@ya_tvorets_mentor_memory_v2"

// MemoryKeep is how many days are remembered
const MemoryKeep = 2

// MemoryStore remembers how the last days were closed
type MemoryStore struct {
	store  database.Store
	clock  dates.Clock
	logger *zap.Logger
}

// NewMemoryStore creates a memory store
func NewMemoryStore(store database.Store, clock dates.Clock, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		store:  store,
		clock:  clock,
		logger: logging.OrNop(logger).Named("mentor_memory"),
	}
}

// Record stores today's entry, replacing an earlier one from today.
// Date is always today; the goal is trimmed and xp clamped at zero.
func (s *MemoryStore) Record(ctx context.Context, m models.MentorMemory) {
	today := dates.Today(s.clock)
	m.Date = today
	m.Goal = strings.TrimSpace(m.Goal)
	m.XPEarned = max(0, m.XPEarned)
	if !m.Growth.IsValid() {
		m.Growth = models.TraitNone
	}

	next := []models.MentorMemory{m}
	for _, e := range s.All(ctx) {
		if e.Date != today {
			next = append(next, e)
		}
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].Date < next[j].Date })
	if len(next) > MemoryKeep {
		next = next[len(next)-MemoryKeep:]
	}

	if err := database.SetJSON(ctx, s.store, KeyMemory, next); err != nil {
		s.fail("write", err)
	}
}

// Last returns the newest remembered day that is not today
func (s *MemoryStore) Last(ctx context.Context) (models.MentorMemory, bool) {
	today := dates.Today(s.clock)
	all := s.All(ctx)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Date != today {
			return all[i], true
		}
	}
	return models.MentorMemory{}, false
}

// All returns the valid stored entries sorted by date
func (s *MemoryStore) All(ctx context.Context) []models.MentorMemory {
	var raw []json.RawMessage
	if _, err := database.GetJSON(ctx, s.store, KeyMemory, &raw); err != nil {
		s.fail("read", err)
		return nil
	}

	out := make([]models.MentorMemory, 0, len(raw))
	for _, r := range raw {
		if m, ok := decodeMemory(r); ok {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Clear forgets everything
func (s *MemoryStore) Clear(ctx context.Context) {
	if err := s.store.Remove(ctx, KeyMemory); err != nil {
		s.fail("clear", err)
	}
}

// Keys lists every key the store owns
func (s *MemoryStore) Keys() []string {
	return []string{KeyMemory}
}

func (s *MemoryStore) fail(op string, err error) {
	s.logger.Warn("mentor memory storage failure", zap.String("op", op), zap.String("key", KeyMemory), zap.Error(err))
}

// decodeMemory keeps only entries whose fields all have the right type and known values
func decodeMemory(raw json.RawMessage) (models.MentorMemory, bool) {
	var w struct {
		Date         *string      `json:"date"`
		Goal         *string      `json:"goal"`
		XPEarned     any          `json:"xpEarned"`
		HasAnyAction *bool        `json:"hasAnyAction"`
		ClosedAs     string       `json:"closedAs"`
		Mentor       string       `json:"mentor"`
		Mode         string       `json:"mode"`
		Growth       models.Trait `json:"growth"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.MentorMemory{}, false
	}
	if w.Date == nil || w.Goal == nil || w.HasAnyAction == nil {
		return models.MentorMemory{}, false
	}

	xp, ok := decodeXP(w.XPEarned)
	if !ok {
		return models.MentorMemory{}, false
	}

	closedAs := models.ClosedAs(w.ClosedAs)
	mentor := models.Mentor(w.Mentor)
	mode := models.MentorMode(w.Mode)
	if closedAs != models.ClosedEvening && closedAs != models.ClosedBadDay {
		return models.MentorMemory{}, false
	}
	if !mentor.IsValid() || !mode.IsValid() {
		return models.MentorMemory{}, false
	}

	return models.MentorMemory{
		Date:         *w.Date,
		Goal:         *w.Goal,
		XPEarned:     xp,
		HasAnyAction: *w.HasAnyAction,
		ClosedAs:     closedAs,
		Mentor:       mentor,
		Mode:         mode,
		Growth:       w.Growth,
	}, true
}

// decodeXP accepts numbers and numeric strings, floors them and clamps at zero
func decodeXP(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		if err := json.Unmarshal([]byte(strings.TrimSpace(x)), &f); err != nil {
			return 0, false
		}
	case nil:
		f = 0
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	return int(math.Floor(math.Min(f, math.MaxInt32))), true
}
