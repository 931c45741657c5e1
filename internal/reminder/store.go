package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/pkg/models"
)

// Storage keys of the daily reminder
const (
	KeyID   = "@ya_tvorets_daily_notification_id"
	KeyTime = "@ya_tvorets_daily_notification_time"
	KeyMeta = "@ya_tvorets_daily_notification_meta"
)

// Text is a rendered reminder
type Text struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Meta is stored next to the reminder time
type Meta struct {
	Lang      models.Language `json:"lang" yaml:"lang"`
	Mentor    models.Mentor   `json:"mentor" yaml:"mentor"`
	LastTitle string          `json:"lastTitle" yaml:"lastTitle"`
	LastBody  string          `json:"lastBody" yaml:"lastBody"`
}

type clockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// BuildText renders a reminder with a random quote of the mentor
func BuildText(lang models.Language, m models.Mentor, rng *rand.Rand) Text {
	lang = models.ParseLanguage(string(lang))
	m = models.ParseMentor(string(m))

	body := fallbackQuote(lang)
	if list := mentorQuotes[m][lang]; len(list) > 0 {
		if rng != nil {
			body = list[rng.IntN(len(list))]
		} else {
			body = list[rand.IntN(len(list))]
		}
	}

	name := mentor.DisplayName(m, lang)
	if lang == models.LangUA {
		return Text{Title: name + " нагадує", Body: body}
	}
	return Text{Title: name + " reminds you", Body: body}
}

// Store keeps the daily reminder setting
type Store struct {
	store  database.Store
	rng    *rand.Rand
	newID  func() string
	logger *zap.Logger
}

// NewStore creates a reminder store. rng picks quotes; nil uses the global source.
func NewStore(store database.Store, rng *rand.Rand, logger *zap.Logger) *Store {
	return &Store{
		store:  store,
		rng:    rng,
		newID:  func() string { return "r_" + uuid.NewString() },
		logger: logging.OrNop(logger).Named("reminder"),
	}
}

// Schedule enables the reminder at hour:minute. It returns false when the
// time is out of range or nothing could be stored.
func (s *Store) Schedule(ctx context.Context, hour, minute int, lang models.Language, m models.Mentor) bool {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return false
	}

	lang = models.ParseLanguage(string(lang))
	m = models.ParseMentor(string(m))
	text := BuildText(lang, m, s.rng)

	if err := s.store.Set(ctx, KeyID, s.newID()); err != nil {
		s.fail("write id", KeyID, err)
		return false
	}
	if err := database.SetJSON(ctx, s.store, KeyTime, clockTime{Hour: hour, Minute: minute}); err != nil {
		s.fail("write time", KeyTime, err)
		return false
	}
	meta := Meta{Lang: lang, Mentor: m, LastTitle: text.Title, LastBody: text.Body}
	if err := database.SetJSON(ctx, s.store, KeyMeta, meta); err != nil {
		s.fail("write meta", KeyMeta, err)
		return false
	}

	s.logger.Info("reminder scheduled", zap.Int("hour", hour), zap.Int("minute", minute))
	return true
}

// Info reports whether the reminder is on and when. An id without a usable
// time is still enabled, with nil hour and minute.
func (s *Store) Info(ctx context.Context) models.ReminderInfo {
	id, ok, err := s.store.Get(ctx, KeyID)
	if err != nil {
		s.fail("read id", KeyID, err)
		return models.ReminderInfo{}
	}
	if !ok || strings.TrimSpace(id) == "" {
		return models.ReminderInfo{}
	}

	info := models.ReminderInfo{Enabled: true}
	raw, ok, err := s.store.Get(ctx, KeyTime)
	if err != nil {
		s.fail("read time", KeyTime, err)
		return models.ReminderInfo{}
	}
	if !ok {
		return info
	}

	var w map[string]any
	if json.Unmarshal([]byte(raw), &w) != nil {
		return info
	}
	info.Hour = wholeNumber(w["hour"])
	info.Minute = wholeNumber(w["minute"])
	return info
}

// Meta returns the stored meta, ok is false when there is none
func (s *Store) Meta(ctx context.Context) (Meta, bool) {
	var meta Meta
	ok, err := database.GetJSON(ctx, s.store, KeyMeta, &meta)
	if err != nil {
		s.fail("read meta", KeyMeta, err)
		return Meta{}, false
	}
	if !ok {
		return Meta{}, false
	}
	meta.Lang = models.ParseLanguage(string(meta.Lang))
	meta.Mentor = models.ParseMentor(string(meta.Mentor))
	return meta, true
}

// Next renders a fresh reminder for the stored lang and mentor and remembers it
func (s *Store) Next(ctx context.Context) (Text, bool) {
	meta, ok := s.Meta(ctx)
	if !ok {
		return Text{}, false
	}
	text := BuildText(meta.Lang, meta.Mentor, s.rng)
	meta.LastTitle, meta.LastBody = text.Title, text.Body
	if err := database.SetJSON(ctx, s.store, KeyMeta, meta); err != nil {
		s.fail("write meta", KeyMeta, err)
	}
	return text, true
}

// Cancel turns the reminder off
func (s *Store) Cancel(ctx context.Context) {
	if err := s.store.MultiRemove(ctx, s.Keys()...); err != nil {
		s.fail("cancel", KeyID, err)
	}
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyID, KeyTime, KeyMeta}
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Warn("reminder storage failure", zap.String("op", op), zap.String("key", key), zap.Error(err))
}

func wholeNumber(v any) *int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.Abs(f) > 1e9 || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// ParseClock parses "H:MM" or "HH:MM" in 24h form
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 || h == "" || len(h) > 2 {
		return 0, 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	hour, herr := strconv.Atoi(h)
	minute, merr := strconv.Atoi(m)
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	return hour, minute, nil
}
