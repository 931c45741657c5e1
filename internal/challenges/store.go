package challenges

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/pkg/models"
)

// Storage keys owned by the challenge store
const (
	KeyChallenges = "@ya_tvorets_daily_challenges_v1"
	KeyDate       = "@ya_tvorets_daily_challenges_date_v1"
	KeyHistory    = "@ya_tvorets_daily_challenges_history_v1"
)

const (
	// HistoryLimit caps the history list, newest first
	HistoryLimit = 14
	// excludeDaysBack is how many previous days are avoided when picking
	excludeDaysBack = 2
)

// Store persists today's challenge set and the recent history used for exclusion
type Store struct {
	store   database.Store
	clock   dates.Clock
	catalog *Catalog
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewStore creates a challenge store; a nil catalog means the built-in one
func NewStore(store database.Store, clock dates.Clock, catalog *Catalog, logger *zap.Logger, m *metrics.Metrics) *Store {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Store{
		store:   store,
		clock:   clock,
		catalog: catalog,
		logger:  logging.OrNop(logger).Named("challenges"),
		metrics: m,
	}
}

// Catalog returns the catalog in use
func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// SetCatalog swaps the catalog. Today's stored set is kept until the next generation.
func (s *Store) SetCatalog(c *Catalog) {
	if c == nil {
		c = DefaultCatalog()
	}
	s.catalog = c
}

// GetOrGenerate returns today's stored set when it is valid, otherwise
// generates a new one seeded by (today, mainGrowth). Always returns DailyCount entries.
func (s *Store) GetOrGenerate(ctx context.Context, mainGrowth models.Trait) []models.Challenge {
	today := dates.Today(s.clock)

	date, _, err := s.store.Get(ctx, KeyDate)
	if err != nil {
		s.fail("read date", KeyDate, err)
	}
	if err == nil && date == today {
		list, _, err := s.readList(ctx)
		if err != nil {
			s.fail("read challenges", KeyChallenges, err)
		} else if len(list) == DailyCount {
			return list
		}
	}

	return s.generate(ctx, mainGrowth, StableSeed(today, mainGrowth))
}

// Regenerate replaces today's set with a time-seeded selection
func (s *Store) Regenerate(ctx context.Context, mainGrowth models.Trait) []models.Challenge {
	return s.generate(ctx, mainGrowth, uint32(s.clock.Now().UnixMilli()))
}

func (s *Store) generate(ctx context.Context, mainGrowth models.Trait, seed uint32) []models.Challenge {
	today := dates.Today(s.clock)
	history := s.History(ctx)
	excluded := ExcludedIDs(history, recentDates(s.clock)...)

	picked := Select(s.catalog.All(), mainGrowth, excluded, newMulberry32(seed))

	if err := database.SetJSON(ctx, s.store, KeyChallenges, picked); err != nil {
		s.fail("write challenges", KeyChallenges, err)
		return picked
	}
	if err := s.store.Set(ctx, KeyDate, today); err != nil {
		s.fail("write date", KeyDate, err)
		return picked
	}

	ids := make([]string, 0, len(picked))
	for _, c := range picked {
		ids = append(ids, c.ID)
	}
	next := []models.ChallengeHistoryItem{{Date: today, IDs: ids}}
	for _, h := range history {
		if h.Date != today {
			next = append(next, h)
		}
	}
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}
	if err := database.SetJSON(ctx, s.store, KeyHistory, next); err != nil {
		s.fail("write history", KeyHistory, err)
	}

	s.logger.Debug("challenges generated",
		zap.String("date", today),
		zap.Stringer("growth", mainGrowth),
		zap.Strings("ids", ids),
	)
	return picked
}

// SetStatus updates one challenge of the stored set. completedAt is stamped only
// for completed and cleared otherwise. It returns false when nothing is stored
// or no challenge has that id.
func (s *Store) SetStatus(ctx context.Context, id string, status models.ChallengeStatus) ([]models.Challenge, bool) {
	if !status.IsValid() {
		status = models.StatusPending
	}

	list, ok, err := s.readList(ctx)
	if err != nil {
		s.fail("read challenges", KeyChallenges, err)
		return nil, false
	}
	if !ok || len(list) == 0 {
		return nil, false
	}

	found := false
	for i := range list {
		if list[i].ID != id {
			continue
		}
		found = true
		list[i].Status = status
		if status == models.StatusCompleted {
			now := dates.NowRFC3339(s.clock)
			list[i].CompletedAt = &now
		} else {
			list[i].CompletedAt = nil
		}
	}
	if !found {
		return nil, false
	}

	if err := database.SetJSON(ctx, s.store, KeyChallenges, list); err != nil {
		s.fail("write challenges", KeyChallenges, err)
		return nil, false
	}
	s.metrics.ChallengeTransition(string(status))
	return list, true
}

// Summary is the done/total view of the stored set
func (s *Store) Summary(ctx context.Context) models.ChallengeSummary {
	list, _, err := s.readList(ctx)
	if err != nil {
		s.fail("read challenges", KeyChallenges, err)
	}
	return Summarize(list)
}

// Summarize counts completed challenges; total is always DailyCount
func Summarize(list []models.Challenge) models.ChallengeSummary {
	done := 0
	for _, c := range list {
		if c.Status == models.StatusCompleted {
			done++
		}
	}
	if list == nil {
		list = []models.Challenge{}
	}
	return models.ChallengeSummary{Challenges: list, Done: done, Total: DailyCount}
}

// History returns the sanitized history list, newest first.
// Items without a date or without any id are dropped.
func (s *Store) History(ctx context.Context) []models.ChallengeHistoryItem {
	var raw []json.RawMessage
	if _, err := database.GetJSON(ctx, s.store, KeyHistory, &raw); err != nil {
		s.fail("read history", KeyHistory, err)
		return nil
	}

	var out []models.ChallengeHistoryItem
	for _, r := range raw {
		var item struct {
			Date string            `json:"date"`
			IDs  []json.RawMessage `json:"ids"`
		}
		if json.Unmarshal(r, &item) != nil || len(item.Date) < len(dates.Layout) {
			continue
		}
		h := models.ChallengeHistoryItem{Date: item.Date[:len(dates.Layout)], IDs: []string{}}
		for _, rawID := range item.IDs {
			var id string
			if json.Unmarshal(rawID, &id) == nil && strings.TrimSpace(id) != "" {
				h.IDs = append(h.IDs, id)
			}
		}
		if len(h.IDs) == 0 {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyChallenges, KeyDate, KeyHistory}
}

// readList decodes the stored set, dropping entries without an id or any title
func (s *Store) readList(ctx context.Context) ([]models.Challenge, bool, error) {
	var raw []json.RawMessage
	ok, err := database.GetJSON(ctx, s.store, KeyChallenges, &raw)
	if err != nil || !ok {
		return nil, false, err
	}
	return SanitizeList(raw), true, nil
}

// SanitizeList decodes each element leniently and keeps the usable ones
func SanitizeList(raw []json.RawMessage) []models.Challenge {
	out := make([]models.Challenge, 0, len(raw))
	for _, r := range raw {
		c, ok := sanitize(r)
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func sanitize(raw json.RawMessage) (models.Challenge, bool) {
	var w struct {
		ID            any                    `json:"id"`
		Trait         models.Trait           `json:"trait"`
		TitleUA       any                    `json:"titleUa"`
		TitleEN       any                    `json:"titleEn"`
		DescriptionUA any                    `json:"descriptionUa"`
		DescriptionEN any                    `json:"descriptionEn"`
		Complexity    models.Complexity      `json:"complexity"`
		Status        models.ChallengeStatus `json:"status"`
		CompletedAt   any                    `json:"completedAt"`
	}
	w.Status = models.StatusPending
	w.Complexity = models.ComplexityEasy
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Challenge{}, false
	}

	c := models.Challenge{
		ID:            asString(w.ID),
		Trait:         w.Trait,
		TitleUA:       asString(w.TitleUA),
		TitleEN:       asString(w.TitleEN),
		DescriptionUA: asString(w.DescriptionUA),
		DescriptionEN: asString(w.DescriptionEN),
		Complexity:    w.Complexity,
		Status:        w.Status,
	}
	if c.ID == "" || (c.TitleUA == "" && c.TitleEN == "") {
		return models.Challenge{}, false
	}
	if ts := asString(w.CompletedAt); ts != "" && c.Status == models.StatusCompleted {
		c.CompletedAt = &ts
	}
	return c, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// recentDates are the local dates whose picks are excluded today
func recentDates(clock dates.Clock) []string {
	out := make([]string, 0, excludeDaysBack)
	for i := 1; i <= excludeDaysBack; i++ {
		out = append(out, dates.Shifted(clock, -i))
	}
	return out
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Warn("challenge storage failure", zap.String("op", op), zap.String("key", key), zap.Error(err))
	s.metrics.StorageError("challenges")
}
