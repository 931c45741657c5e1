package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/pkg/models"
)

func TestProfileDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewStore(database.NewMemory(), nil)

	assert.Equal(t, models.DefaultProfile(), s.Load(ctx))
	assert.Equal(t, models.LangUA, s.Language(ctx, models.LangUA))
	assert.Nil(t, s.Traits(ctx))
	assert.Equal(t, models.TraitNone, s.MainGrowth(ctx))
}

func TestProfileSave(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()
	s := NewStore(store, nil)

	require.NoError(t, s.SaveName(ctx, "  Ira "))
	require.NoError(t, s.SaveMentor(ctx, models.MentorKatana))
	require.NoError(t, s.SaveGender(ctx, models.GenderFemale))
	require.NoError(t, s.SaveLanguage(ctx, models.LangEN))

	assert.Equal(t, models.Profile{Name: "Ira", Mentor: models.MentorKatana, Gender: models.GenderFemale}, s.Load(ctx))
	assert.Equal(t, models.LangEN, s.Language(ctx, models.LangUA))

	assert.Error(t, s.SaveMentor(ctx, "yoda"))
	assert.Error(t, s.SaveGender(ctx, "other"))
	assert.Error(t, s.SaveLanguage(ctx, "de"))

	require.NoError(t, store.Set(ctx, KeyMentor, "yoda"))
	require.NoError(t, store.Set(ctx, KeyGender, "x"))
	assert.Equal(t, models.Profile{Name: "Ira", Mentor: models.MentorLev, Gender: models.GenderNeutral}, s.Load(ctx))
}

func TestProfileDegrades(t *testing.T) {
	ctx := context.Background()
	fault := database.NewFaultStore(database.NewMemory())
	s := NewStore(fault, nil)

	require.NoError(t, s.SaveName(ctx, "Ira"))
	fault.FailReads(true)
	assert.Equal(t, models.DefaultProfile(), s.Load(ctx))
	assert.Equal(t, models.LangEN, s.Language(ctx, models.LangEN))
	assert.Nil(t, s.Traits(ctx))

	fault.FailReads(false)
	fault.FailWrites(true)
	assert.ErrorIs(t, s.SaveName(ctx, "Max"), database.ErrInjected)
}

func TestTraits(t *testing.T) {
	ctx := context.Background()
	s := NewStore(database.NewMemory(), nil)

	err := s.SaveTraits(ctx, models.TraitsResult{
		Strengths:   []models.Trait{models.TraitCalm, "bogus", models.TraitCalm},
		GrowthZones: []models.Trait{models.TraitDiscipline, models.TraitFocus},
		Scores:      map[string]float64{"calm": 4.5},
		Version:     2,
	})
	require.NoError(t, err)

	got := s.Traits(ctx)
	require.NotNil(t, got)
	assert.Equal(t, []models.Trait{models.TraitCalm}, got.Strengths)
	assert.Equal(t, models.TraitDiscipline, s.MainGrowth(ctx))
	assert.Equal(t, map[string]float64{"calm": 4.5}, got.Scores)
	assert.Equal(t, 2, got.Version)

	assert.Error(t, s.SaveTraits(ctx, models.TraitsResult{Strengths: []models.Trait{"nope"}}))
}

func TestDecodeTraits(t *testing.T) {
	got := DecodeTraits([]byte(`{"strengths":"focus","growthZones":["empathy",3,"x"],"scores":{"empathy":2,"x":1,"calm":"a"},"version":"v"}`))
	require.NotNil(t, got)
	assert.Empty(t, got.Strengths)
	assert.Equal(t, []models.Trait{models.TraitEmpathy}, got.GrowthZones)
	assert.Equal(t, map[string]float64{"empathy": 2}, got.Scores)
	assert.Equal(t, 0, got.Version)

	assert.Nil(t, DecodeTraits([]byte(`{"strengths":[],"growthZones":["x"]}`)))
	assert.Nil(t, DecodeTraits([]byte(`nope`)))
}

func TestParseTraitList(t *testing.T) {
	got, err := ParseTraitList(" Focus, calm ,,")
	require.NoError(t, err)
	assert.Equal(t, []models.Trait{models.TraitFocus, models.TraitCalm}, got)

	_, err = ParseTraitList("focus,speed")
	assert.ErrorContains(t, err, "speed")
}
