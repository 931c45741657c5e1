package ritual

import (
	"math/rand/v2"

	"github.com/example/tvorets/pkg/models"
)

type goalPack struct {
	ua []string
	en []string
}

var defaultGoals = map[models.Trait]goalPack{
	models.TraitFocus: {
		ua: []string{"Одна справа до кінця, без перемикань.", "10 хв фокусу на одній дії."},
		en: []string{"One thing to completion. No switching.", "10 minutes of focus on one action."},
	},
	models.TraitCalm: {
		ua: []string{"Тримати повільний темп у дрібницях.", "Зробити паузу перед реакцією."},
		en: []string{"Keep a slower pace in small things.", "Pause before reacting."},
	},
	models.TraitConfidence: {
		ua: []string{"Один крок, який трохи лякає, але реальний.", "Сказати одне \"так\" собі."},
		en: []string{"One slightly scary but real step.", "Say one \"yes\" to yourself."},
	},
	models.TraitDiscipline: {
		ua: []string{"Одна дія за планом, без торгу.", "Зробити мінімум і зарахувати."},
		en: []string{"One planned action, no bargaining.", "Do the minimum and count it."},
	},
	models.TraitCreativity: {
		ua: []string{"10 хв створення без оцінки.", "Один маленький експеримент."},
		en: []string{"10 minutes of creating without judging.", "One small experiment."},
	},
	models.TraitEmpathy: {
		ua: []string{"Один теплий жест до себе.", "Помітити почуття без критики."},
		en: []string{"One caring gesture to yourself.", "Notice feelings without criticism."},
	},
	models.TraitNone: {
		ua: []string{"Один маленький чесний крок, і день вже не нуль.", "Одна дія до кінця. Без шуму."},
		en: []string{"One small honest step, and the day is not zero.", "One action to completion. No noise."},
	},
}

// DefaultGoal suggests an intention for the growth trait
func DefaultGoal(lang models.Language, growth models.Trait, rng *rand.Rand) string {
	pack, ok := defaultGoals[growth]
	if !ok {
		pack = defaultGoals[models.TraitNone]
	}
	list := pack.en
	if lang == models.LangUA {
		list = pack.ua
	}
	if rng == nil {
		return list[rand.IntN(len(list))]
	}
	return list[rng.IntN(len(list))]
}

// GoalFactory adapts DefaultGoal for EnsureTodayGoal
func GoalFactory(lang models.Language, growth models.Trait, rng *rand.Rand) func() string {
	return func() string {
		return DefaultGoal(lang, growth, rng)
	}
}
