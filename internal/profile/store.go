package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/pkg/models"
)

// Storage keys owned by the profile store
const (
	KeyName     = "@ya_tvorets_name"
	KeyMentor   = "@ya_tvorets_mentor"
	KeyGender   = "@ya_tvorets_gender"
	KeyLanguage = "@ya_tvorets_language"
	KeyTraits   = "@ya_tvorets_traits"
)

// Store holds the user profile, UI language and the traits result.
// Reads degrade to defaults; writes report errors since they come from explicit user input.
type Store struct {
	store  database.Store
	logger *zap.Logger
}

// NewStore creates a profile store
func NewStore(store database.Store, logger *zap.Logger) *Store {
	return &Store{
		store:  store,
		logger: logging.OrNop(logger).Named("profile"),
	}
}

// Load reads the profile, unknown mentor/gender values fall back to defaults
func (s *Store) Load(ctx context.Context) models.Profile {
	raw := make(map[string]string, 3)
	for _, key := range []string{KeyName, KeyMentor, KeyGender} {
		v, _, err := s.store.Get(ctx, key)
		if err != nil {
			s.fail("load", key, err)
			return models.DefaultProfile()
		}
		raw[key] = v
	}

	return models.Profile{
		Name:   strings.TrimSpace(raw[KeyName]),
		Mentor: models.ParseMentor(raw[KeyMentor]),
		Gender: models.ParseGender(raw[KeyGender]),
	}
}

func (s *Store) SaveName(ctx context.Context, name string) error {
	return s.set(ctx, KeyName, strings.TrimSpace(name))
}

func (s *Store) SaveMentor(ctx context.Context, m models.Mentor) error {
	if !m.IsValid() {
		return fmt.Errorf("unknown mentor %q", m)
	}
	return s.set(ctx, KeyMentor, string(m))
}

func (s *Store) SaveGender(ctx context.Context, g models.Gender) error {
	if models.ParseGender(string(g)) != g {
		return fmt.Errorf("unknown gender %q", g)
	}
	return s.set(ctx, KeyGender, string(g))
}

// Language returns the stored UI language or fallback when none is stored
func (s *Store) Language(ctx context.Context, fallback models.Language) models.Language {
	v, ok, err := s.store.Get(ctx, KeyLanguage)
	if err != nil {
		s.fail("load language", KeyLanguage, err)
		return fallback
	}
	if !ok || (v != string(models.LangUA) && v != string(models.LangEN)) {
		return fallback
	}
	return models.Language(v)
}

func (s *Store) SaveLanguage(ctx context.Context, lang models.Language) error {
	if lang != models.LangUA && lang != models.LangEN {
		return fmt.Errorf("unknown language %q", lang)
	}
	return s.set(ctx, KeyLanguage, string(lang))
}

// Traits returns the stored questionnaire result, nil when absent or empty
func (s *Store) Traits(ctx context.Context) *models.TraitsResult {
	raw, ok, err := s.store.Get(ctx, KeyTraits)
	if err != nil {
		s.fail("load traits", KeyTraits, err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	return DecodeTraits([]byte(raw))
}

// MainGrowth is the first growth zone of the stored result
func (s *Store) MainGrowth(ctx context.Context) models.Trait {
	return s.Traits(ctx).MainGrowth()
}

// SaveTraits stores the result after dropping unknown traits
func (s *Store) SaveTraits(ctx context.Context, r models.TraitsResult) error {
	r.Strengths = filterTraits(r.Strengths)
	r.GrowthZones = filterTraits(r.GrowthZones)
	if len(r.Strengths) == 0 && len(r.GrowthZones) == 0 {
		return fmt.Errorf("traits result has no known traits")
	}
	if err := database.SetJSON(ctx, s.store, KeyTraits, r); err != nil {
		return fmt.Errorf("failed to save traits: %w", err)
	}
	return nil
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyName, KeyMentor, KeyGender, KeyLanguage, KeyTraits}
}

func (s *Store) set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Warn("profile storage failure", zap.String("op", op), zap.String("key", key), zap.Error(err))
}

// DecodeTraits parses a stored result leniently; it returns nil when no known trait survives
func DecodeTraits(data []byte) *models.TraitsResult {
	var w struct {
		Strengths   json.RawMessage `json:"strengths"`
		GrowthZones json.RawMessage `json:"growthZones"`
		Scores      json.RawMessage `json:"scores"`
		CompletedAt any             `json:"completedAt"`
		Version     any             `json:"version"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil
	}

	r := &models.TraitsResult{
		Strengths:   decodeTraitList(w.Strengths),
		GrowthZones: decodeTraitList(w.GrowthZones),
	}
	if len(r.Strengths) == 0 && len(r.GrowthZones) == 0 {
		return nil
	}

	var scores map[string]any
	if json.Unmarshal(w.Scores, &scores) == nil {
		for k, v := range scores {
			if f, ok := v.(float64); ok && models.ParseTrait(k).IsValid() {
				if r.Scores == nil {
					r.Scores = make(map[string]float64, len(scores))
				}
				r.Scores[k] = f
			}
		}
	}
	r.CompletedAt, _ = w.CompletedAt.(string)
	if f, ok := w.Version.(float64); ok && f > 0 {
		r.Version = int(f)
	}
	return r
}

// decodeTraitList treats anything but an array as empty
func decodeTraitList(raw json.RawMessage) []models.Trait {
	var list []models.Trait
	if json.Unmarshal(raw, &list) != nil {
		return []models.Trait{}
	}
	return filterTraits(list)
}

func filterTraits(in []models.Trait) []models.Trait {
	out := make([]models.Trait, 0, len(in))
	seen := make(map[models.Trait]bool, len(in))
	for _, t := range in {
		if t.IsValid() && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// ParseTraitList splits "focus, calm" into known traits and reports the unknown ones
func ParseTraitList(s string) ([]models.Trait, error) {
	var out []models.Trait
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		t := models.ParseTrait(part)
		if !t.IsValid() {
			bad = append(bad, part)
			continue
		}
		out = append(out, t)
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("unknown traits: %s", strings.Join(bad, ", "))
	}
	return out, nil
}
