package challenges

import (
	"github.com/example/tvorets/pkg/models"
)

// Random is the source the selector draws from
type Random interface {
	Intn(n int) int
}

// selection tracks what has been picked so far
type selection struct {
	excluded   map[string]bool
	usedIDs    map[string]bool
	usedTraits map[models.Trait]bool
}

// pool is one step of the relaxation cascade
type pool struct {
	name string
	keep func(d models.ChallengeDefinition, s *selection) bool
}

// nextPickPools is tried in order for every pick after the first.
// Exclusion is relaxed before trait diversity, and the last pool accepts
// any unused challenge, so a catalog of at least DailyCount entries always fills the day.
var nextPickPools = []pool{
	{
		name: "strict",
		keep: func(d models.ChallengeDefinition, s *selection) bool {
			return !s.excluded[d.ID] && !s.usedIDs[d.ID] && !s.usedTraits[d.Trait]
		},
	},
	{
		name: "ignore-recent",
		keep: func(d models.ChallengeDefinition, s *selection) bool {
			return !s.usedIDs[d.ID] && !s.usedTraits[d.Trait]
		},
	},
	{
		name: "any-unused",
		keep: func(d models.ChallengeDefinition, s *selection) bool {
			return !s.usedIDs[d.ID]
		},
	},
}

// firstPickPools bias the first pick toward the growth trait
func firstPickPools(mainGrowth models.Trait) []pool {
	return []pool{
		{
			name: "growth",
			keep: func(d models.ChallengeDefinition, s *selection) bool {
				return d.Trait == mainGrowth && !s.excluded[d.ID]
			},
		},
		{
			name: "growth-ignore-recent",
			keep: func(d models.ChallengeDefinition, _ *selection) bool {
				return d.Trait == mainGrowth
			},
		},
	}
}

func pickFrom(defs []models.ChallengeDefinition, pools []pool, s *selection, rng Random) (models.ChallengeDefinition, bool) {
	for _, p := range pools {
		var candidates []models.ChallengeDefinition
		for _, d := range defs {
			if p.keep(d, s) {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))], true
		}
	}
	return models.ChallengeDefinition{}, false
}

// Select draws up to DailyCount distinct challenges from defs.
// excluded holds ids shown recently; it is honored only while candidates remain.
func Select(defs []models.ChallengeDefinition, mainGrowth models.Trait, excluded map[string]bool, rng Random) []models.Challenge {
	s := &selection{
		excluded:   excluded,
		usedIDs:    make(map[string]bool, DailyCount),
		usedTraits: make(map[models.Trait]bool, DailyCount),
	}
	if s.excluded == nil {
		s.excluded = map[string]bool{}
	}

	chosen := make([]models.Challenge, 0, DailyCount)
	add := func(d models.ChallengeDefinition) {
		chosen = append(chosen, d.Instantiate())
		s.usedIDs[d.ID] = true
		s.usedTraits[d.Trait] = true
	}

	if mainGrowth.IsValid() {
		if d, ok := pickFrom(defs, firstPickPools(mainGrowth), s, rng); ok {
			add(d)
		}
	}

	for len(chosen) < DailyCount {
		d, ok := pickFrom(defs, nextPickPools, s, rng)
		if !ok {
			break
		}
		add(d)
	}
	return chosen
}

// ExcludedIDs collects the ids shown on the given dates
func ExcludedIDs(history []models.ChallengeHistoryItem, recentDates ...string) map[string]bool {
	out := make(map[string]bool)
	for _, date := range recentDates {
		for _, h := range history {
			if h.Date != date {
				continue
			}
			for _, id := range h.IDs {
				out[id] = true
			}
			break
		}
	}
	return out
}
