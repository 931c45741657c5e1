package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/pkg/models"
)

// KeyJournal holds the entry list, newest first
const KeyJournal = "@ya_tvorets_journal_v1"

const (
	// MaxEntries caps the stored list
	MaxEntries = 500
	// idempotencyScan is how many newest entries are checked for a duplicate key
	idempotencyScan = 200
	// DefaultLimit is the page size of Entries
	DefaultLimit = 100
)

const untitled = "Untitled"

// NewEntry is the input of Prepend
type NewEntry struct {
	Title  string
	Text   string
	Source models.JournalSource
	Mood   models.JournalMood
	Meta   map[string]any
	// IdempotencyKey wins over Meta["idempotencyKey"]
	IdempotencyKey string
}

// Store is the user's journal
type Store struct {
	store  database.Store
	clock  dates.Clock
	newID  func() string
	logger *zap.Logger
}

// NewStore creates a journal store
func NewStore(store database.Store, clock dates.Clock, logger *zap.Logger) *Store {
	return &Store{
		store:  store,
		clock:  clock,
		newID:  func() string { return "j_" + uuid.NewString() },
		logger: logging.OrNop(logger).Named("journal"),
	}
}

// Prepend adds an entry at the top. When an idempotency key is given and one of
// the newest entries already carries it, that entry is returned and nothing is written.
func (s *Store) Prepend(ctx context.Context, in NewEntry) models.JournalEntry {
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		if v, ok := in.Meta["idempotencyKey"].(string); ok {
			key = strings.TrimSpace(v)
		}
	}

	var meta map[string]any
	if in.Meta != nil {
		meta = maps.Clone(in.Meta)
	}
	if key != "" {
		if meta == nil {
			meta = make(map[string]any, 1)
		}
		meta["idempotencyKey"] = key
	}

	list := s.All(ctx)

	if key != "" {
		for i, e := range list {
			if i >= idempotencyScan {
				break
			}
			if e.IdempotencyKey() == key {
				return e
			}
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = untitled
	}
	source := in.Source
	if !source.IsValid() {
		source = models.SourceNote
	}
	mood := in.Mood
	if !mood.IsValid() {
		mood = ""
	}

	entry := models.JournalEntry{
		ID:        s.newID(),
		CreatedAt: dates.NowRFC3339(s.clock),
		Title:     title,
		Text:      in.Text,
		Mood:      mood,
		Source:    source,
		Meta:      meta,
	}

	next := append([]models.JournalEntry{entry}, list...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	if err := database.SetJSON(ctx, s.store, KeyJournal, next); err != nil {
		s.fail("write", err)
	}
	return entry
}

// AppendChallengeEntry records a completed or skipped challenge
func (s *Store) AppendChallengeEntry(ctx context.Context, succeeded bool, challengeID, challengeTitle string, lang models.Language) models.JournalEntry {
	var title, verb string
	switch {
	case lang == models.LangUA && succeeded:
		title, verb = "Челендж виконано", "Зараховано"
	case lang == models.LangUA:
		title, verb = "Челендж пропущено", "Пропущено"
	case succeeded:
		title, verb = "Challenge completed", "Counted"
	default:
		title, verb = "Challenge skipped", "Skipped"
	}

	return s.Prepend(ctx, NewEntry{
		Title:  title,
		Text:   fmt.Sprintf("%s: %s", verb, challengeTitle),
		Source: models.SourceChallenge,
		Meta:   map[string]any{"challengeId": challengeID, "succeeded": succeeded},
	})
}

// Entries returns up to limit newest entries, optionally of one source.
// A limit below 1 means DefaultLimit.
func (s *Store) Entries(ctx context.Context, limit int, source models.JournalSource) []models.JournalEntry {
	if limit < 1 {
		limit = DefaultLimit
	}

	out := make([]models.JournalEntry, 0, min(limit, 32))
	for _, e := range s.All(ctx) {
		if source != "" && e.Source != source {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

// All returns every valid stored entry, newest first
func (s *Store) All(ctx context.Context) []models.JournalEntry {
	var raw []json.RawMessage
	if _, err := database.GetJSON(ctx, s.store, KeyJournal, &raw); err != nil {
		s.fail("read", err)
		return nil
	}

	out := make([]models.JournalEntry, 0, len(raw))
	for _, r := range raw {
		if e, ok := decodeEntry(r); ok {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes the whole journal
func (s *Store) Clear(ctx context.Context) {
	if err := s.store.Remove(ctx, KeyJournal); err != nil {
		s.fail("clear", err)
	}
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyJournal}
}

func (s *Store) fail(op string, err error) {
	s.logger.Warn("journal storage failure", zap.String("op", op), zap.String("key", KeyJournal), zap.Error(err))
}

// decodeEntry requires id, createdAt, title and a known source
func decodeEntry(raw json.RawMessage) (models.JournalEntry, bool) {
	var w struct {
		ID        any            `json:"id"`
		CreatedAt any            `json:"createdAt"`
		Title     any            `json:"title"`
		Text      any            `json:"text"`
		Mood      any            `json:"mood"`
		Source    any            `json:"source"`
		Meta      map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		// meta of the wrong shape must not sink the whole entry
		var retry map[string]any
		if json.Unmarshal(raw, &retry) != nil {
			return models.JournalEntry{}, false
		}
		delete(retry, "meta")
		fixed, _ := json.Marshal(retry)
		if json.Unmarshal(fixed, &w) != nil {
			return models.JournalEntry{}, false
		}
	}

	e := models.JournalEntry{
		ID:        strings.TrimSpace(str(w.ID)),
		CreatedAt: strings.TrimSpace(str(w.CreatedAt)),
		Title:     strings.TrimSpace(str(w.Title)),
		Text:      str(w.Text),
		Mood:      models.JournalMood(str(w.Mood)),
		Source:    models.JournalSource(str(w.Source)),
		Meta:      w.Meta,
	}
	if e.ID == "" || e.CreatedAt == "" || e.Title == "" || !e.Source.IsValid() {
		return models.JournalEntry{}, false
	}
	if !e.Mood.IsValid() {
		e.Mood = ""
	}
	return e, true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
