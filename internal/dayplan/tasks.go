package dayplan

import (
	"math/rand/v2"

	"github.com/example/tvorets/pkg/models"
)

// VariantsPerType is the number of text variants each task type has
const VariantsPerType = 3

// baseTasks are the five fixed slots of every plan
var baseTasks = []struct {
	id  string
	typ models.TaskType
}{
	{"t_1", models.TaskHabit},
	{"t_2", models.TaskExercise},
	{"t_3", models.TaskReflection},
	{"t_4", models.TaskFocus},
	{"t_5", models.TaskBody},
}

// TraitTaskType maps a growth trait to the task slot it emphasizes
func TraitTaskType(t models.Trait) (models.TaskType, bool) {
	switch t {
	case models.TraitFocus:
		return models.TaskFocus, true
	case models.TraitCalm, models.TraitEmpathy:
		return models.TaskReflection, true
	case models.TraitConfidence, models.TraitCreativity:
		return models.TaskExercise, true
	case models.TraitDiscipline:
		return models.TaskHabit, true
	}
	return "", false
}

// BuildTasks creates a fresh set of five uncompleted tasks with random variants
func BuildTasks(mainGrowth models.Trait, rng *rand.Rand) []models.TodayTask {
	growthType, hasGrowth := TraitTaskType(mainGrowth)

	tasks := make([]models.TodayTask, 0, len(baseTasks))
	for _, b := range baseTasks {
		tasks = append(tasks, models.TodayTask{
			ID:              b.id,
			Type:            b.typ,
			IsGrowthFocused: hasGrowth && b.typ == growthType,
			Variant:         intn(rng, VariantsPerType),
		})
	}
	return tasks
}

// ClampVariant keeps a variant index inside [0, VariantsPerType)
func ClampVariant(v int) int {
	return max(0, min(v, VariantsPerType-1))
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
