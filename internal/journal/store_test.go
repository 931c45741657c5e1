package journal

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/pkg/models"
)

var testNow = time.Date(2024, 5, 10, 21, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store, *database.Memory, *dates.FixedClock) {
	t.Helper()
	store := database.NewMemory()
	clock := dates.NewFixedClock(testNow)
	s := NewStore(store, clock, nil)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("j_%d", n)
	}
	return s, store, clock
}

func TestPrepend(t *testing.T) {
	ctx := context.Background()
	s, _, clock := newStore(t)

	first := s.Prepend(ctx, NewEntry{Title: " Note ", Text: "hello", Source: models.SourceNote, Mood: models.MoodHigh})
	assert.Equal(t, "j_1", first.ID)
	assert.Equal(t, "Note", first.Title)
	assert.Equal(t, "2024-05-10T21:00:00Z", first.CreatedAt)
	assert.Nil(t, first.Meta)

	clock.Advance(time.Minute)
	second := s.Prepend(ctx, NewEntry{Text: "no title", Source: models.SourceSystem, Mood: "angry"})
	assert.Equal(t, "Untitled", second.Title)
	assert.Empty(t, second.Mood)

	all := s.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "j_2", all[0].ID)
	assert.Equal(t, "j_1", all[1].ID)
	assert.Equal(t, models.MoodHigh, all[1].Mood)
}

func TestPrependIdempotency(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	a := s.Prepend(ctx, NewEntry{Title: "Evening reflection", Source: models.SourceReflection,
		Meta: map[string]any{"idempotencyKey": " evening_reflection:2024-05-10 "}})
	assert.Equal(t, "evening_reflection:2024-05-10", a.IdempotencyKey())

	b := s.Prepend(ctx, NewEntry{Title: "again", Source: models.SourceReflection, IdempotencyKey: "evening_reflection:2024-05-10"})
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "Evening reflection", b.Title)
	assert.Len(t, s.All(ctx), 1)

	// explicit key wins over meta and is merged into meta
	c := s.Prepend(ctx, NewEntry{Title: "x", Source: models.SourceBadDay,
		IdempotencyKey: "hard_day:2024-05-10", Meta: map[string]any{"idempotencyKey": "other", "k": 1}})
	assert.Equal(t, "hard_day:2024-05-10", c.Meta["idempotencyKey"])
	assert.Equal(t, 1, c.Meta["k"])
	assert.Len(t, s.All(ctx), 2)
}

func TestPrependIdempotencyScanWindow(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	s.Prepend(ctx, NewEntry{Title: "old", Source: models.SourceNote, IdempotencyKey: "k"})
	for i := 0; i < idempotencyScan; i++ {
		s.Prepend(ctx, NewEntry{Title: "filler", Source: models.SourceNote})
	}

	dup := s.Prepend(ctx, NewEntry{Title: "new", Source: models.SourceNote, IdempotencyKey: "k"})
	assert.Equal(t, "new", dup.Title, "keys beyond the scan window are not seen")
}

func TestPrependCapsList(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	for i := 0; i < MaxEntries+5; i++ {
		s.Prepend(ctx, NewEntry{Title: "e", Source: models.SourceNote})
	}
	all := s.All(ctx)
	require.Len(t, all, MaxEntries)
	assert.Equal(t, fmt.Sprintf("j_%d", MaxEntries+5), all[0].ID)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	for i := 0; i < 5; i++ {
		s.Prepend(ctx, NewEntry{Title: "n", Source: models.SourceNote})
		s.Prepend(ctx, NewEntry{Title: "c", Source: models.SourceChallenge})
	}

	assert.Len(t, s.Entries(ctx, 0, ""), 10)
	assert.Len(t, s.Entries(ctx, 3, ""), 3)
	notes := s.Entries(ctx, 100, models.SourceNote)
	require.Len(t, notes, 5)
	for _, e := range notes {
		assert.Equal(t, models.SourceNote, e.Source)
	}
	assert.Len(t, s.Entries(ctx, -4, models.SourceChallenge), 5)
}

func TestAppendChallengeEntry(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	e := s.AppendChallengeEntry(ctx, true, "ch_calm_1", "Soft pause", models.LangEN)
	assert.Equal(t, "Challenge completed", e.Title)
	assert.Equal(t, "Counted: Soft pause", e.Text)
	assert.Equal(t, models.SourceChallenge, e.Source)
	assert.Equal(t, map[string]any{"challengeId": "ch_calm_1", "succeeded": true}, e.Meta)

	e = s.AppendChallengeEntry(ctx, false, "ch_calm_1", "Пауза", models.LangUA)
	assert.Equal(t, "Челендж пропущено", e.Title)
	assert.Equal(t, "Пропущено: Пауза", e.Text)

	stored := s.All(ctx)
	require.Len(t, stored, 2)
	assert.Equal(t, false, stored[0].Meta["succeeded"])
}

func TestSanitizeOnRead(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newStore(t)

	raw := `[
		{"id":"a","createdAt":"2024-05-10T00:00:00Z","title":"ok","text":"t","source":"note","mood":"weird","meta":[1,2]},
		{"id":"b","createdAt":"2024-05-10T00:00:00Z","title":"  ","source":"note"},
		{"id":"c","createdAt":"2024-05-10T00:00:00Z","title":"x","source":"diary"},
		{"createdAt":"2024-05-10T00:00:00Z","title":"x","source":"note"},
		{"id":"d","createdAt":"2024-05-10T00:00:00Z","title":"low","source":"bad_day","mood":"low","text":5},
		"junk"
	]`
	require.NoError(t, store.Set(ctx, KeyJournal, raw))

	all := s.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Empty(t, all[0].Mood)
	assert.Nil(t, all[0].Meta)
	assert.Equal(t, models.MoodLow, all[1].Mood)
	assert.Equal(t, "", all[1].Text)

	s.Clear(ctx)
	assert.Empty(t, s.All(ctx))
}

func TestPrependWithStorageDown(t *testing.T) {
	ctx := context.Background()
	fault := database.NewFaultStore(database.NewMemory())
	s := NewStore(fault, dates.NewFixedClock(testNow), nil)

	fault.FailWrites(true)
	e := s.Prepend(ctx, NewEntry{Title: "lost", Source: models.SourceNote})
	assert.True(t, strings.HasPrefix(e.ID, "j_"))

	fault.FailWrites(false)
	assert.Empty(t, s.All(ctx))
}
