package challenges

import (
	"fmt"
	"strings"

	"github.com/example/tvorets/pkg/models"
)

// DailyCount is the size of a day's challenge set
const DailyCount = 3

// Catalog is the fixed list of challenge definitions the selector draws from
type Catalog struct {
	defs []models.ChallengeDefinition
	byID map[string]int
}

// NewCatalog validates defs: ids must be unique and non-empty, every entry needs a title,
// and there must be enough entries to fill a day.
func NewCatalog(defs []models.ChallengeDefinition) (*Catalog, error) {
	if len(defs) < DailyCount {
		return nil, fmt.Errorf("catalog needs at least %d challenges, got %d", DailyCount, len(defs))
	}

	c := &Catalog{
		defs: make([]models.ChallengeDefinition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			return nil, fmt.Errorf("challenge %d has no id", i+1)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate challenge id %q", d.ID)
		}
		if d.TitleUA == "" && d.TitleEN == "" {
			return nil, fmt.Errorf("challenge %q has no title", d.ID)
		}
		d.Complexity = models.ParseComplexity(string(d.Complexity))
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// All returns the definitions in catalog order
func (c *Catalog) All() []models.ChallengeDefinition {
	out := make([]models.ChallengeDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Get looks up a definition by id
func (c *Catalog) Get(id string) (models.ChallengeDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.ChallengeDefinition{}, false
	}
	return c.defs[i], true
}

// ByTrait returns the definitions tagged with t
func (c *Catalog) ByTrait(t models.Trait) []models.ChallengeDefinition {
	var out []models.ChallengeDefinition
	for _, d := range c.defs {
		if d.Trait == t {
			out = append(out, d)
		}
	}
	return out
}

// Len is the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}

// DefaultCatalog is the built-in catalog, two challenges per trait
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

var builtin = []models.ChallengeDefinition{
	{
		ID:            "ch_focus_1",
		Trait:         models.TraitFocus,
		TitleUA:       "10 хвилин чистого фокусу",
		TitleEN:       "10 minutes of pure focus",
		DescriptionUA: "Обери одну справу й працюй над нею 10 хвилин без телефону, сповіщень і перемикань.",
		DescriptionEN: "Pick one task and work on it for 10 minutes without phone, notifications, or switching.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_focus_2",
		Trait:         models.TraitFocus,
		TitleUA:       "Зачистка вкладок",
		TitleEN:       "Tab clean-up",
		DescriptionUA: "Закрий 3–5 зайвих вкладок/додатків і доведи одну маленьку справу до кінця.",
		DescriptionEN: "Close 3–5 unnecessary tabs/apps and finish one small task completely.",
		Complexity:    models.ComplexityMedium,
	},
	{
		ID:            "ch_calm_1",
		Trait:         models.TraitCalm,
		TitleUA:       "Мʼяка пауза для нервової системи",
		TitleEN:       "Soft pause for your nervous system",
		DescriptionUA: "Зроби 5 повільних вдихів/видихів, спостерігаючи за тілом (не за думками).",
		DescriptionEN: "Take 5 slow breaths, watching your body (not your thoughts).",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_calm_2",
		Trait:         models.TraitCalm,
		TitleUA:       "Зняти напругу з плечей",
		TitleEN:       "Release shoulder tension",
		DescriptionUA: "60 секунд: підняти плечі → видих → опустити. Повторити 5 разів. Потім ковток води.",
		DescriptionEN: "60 seconds: shoulders up → exhale → down. Repeat 5 times. Then drink water.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_conf_1",
		Trait:         models.TraitConfidence,
		TitleUA:       "Маленький крок у “стрьомну” зону",
		TitleEN:       "Small step into the “scary” zone",
		DescriptionUA: "Зроби одну дію, яку давно відкладаєш: коротке повідомлення, запит, відповідь.",
		DescriptionEN: "Do one action you postponed: a short message, a question, a reply.",
		Complexity:    models.ComplexityMedium,
	},
	{
		ID:            "ch_conf_2",
		Trait:         models.TraitConfidence,
		TitleUA:       "Сказати “так/ні” чітко",
		TitleEN:       "Say a clear “yes/no”",
		DescriptionUA: "Одна межа сьогодні: чітко погодься або відмовся в чомусь невеликому, без пояснень “на 3 сторінки”.",
		DescriptionEN: "One boundary today: say a clear yes/no on something small, without over-explaining.",
		Complexity:    models.ComplexityMedium,
	},
	{
		ID:            "ch_disc_1",
		Trait:         models.TraitDiscipline,
		TitleUA:       "Закрити один “хвіст”",
		TitleEN:       "Close one loose end",
		DescriptionUA: "Обери один “хвіст” і доведи його до завершення в мінімальному форматі.",
		DescriptionEN: "Pick one loose end and finish it in the smallest possible format.",
		Complexity:    models.ComplexityMedium,
	},
	{
		ID:            "ch_disc_2",
		Trait:         models.TraitDiscipline,
		TitleUA:       "10 хвилин порядку",
		TitleEN:       "10 minutes of order",
		DescriptionUA: "10 хвилин: прибери одну маленьку зону (стіл/папка/нотатки). Без ідеалу, тільки “краще ніж було”.",
		DescriptionEN: "10 minutes: tidy one small area (desk/folder/notes). Not perfect, just better than before.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_crea_1",
		Trait:         models.TraitCreativity,
		TitleUA:       "10 хвилин чесної творчості",
		TitleEN:       "10 minutes of honest creativity",
		DescriptionUA: "10 хвилин без оцінки: ескіз/чорновик/ідеї. Тільки рух.",
		DescriptionEN: "10 minutes without judging: sketch/draft/ideas. Just movement.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_crea_2",
		Trait:         models.TraitCreativity,
		TitleUA:       "1 новий кут",
		TitleEN:       "One new angle",
		DescriptionUA: "Переформулюй одну ідею трьома способами. Без “краще/гірше”, тільки варіанти.",
		DescriptionEN: "Rewrite one idea in 3 different ways. No “better/worse”, only variants.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_emp_1",
		Trait:         models.TraitEmpathy,
		TitleUA:       "Одна тепла дія",
		TitleEN:       "One warm action",
		DescriptionUA: "Зроби одну невелику дію підтримки: для себе або іншого. Без пафосу.",
		DescriptionEN: "Do one small act of support: for yourself or someone else. No drama.",
		Complexity:    models.ComplexityEasy,
	},
	{
		ID:            "ch_emp_2",
		Trait:         models.TraitEmpathy,
		TitleUA:       "Пауза перед реакцією",
		TitleEN:       "Pause before reacting",
		DescriptionUA: "Перед відповіддю/реакцією: 1 вдих-видих і запитання “що я хочу зберегти в цій взаємодії?”.",
		DescriptionEN: "Before responding: one breath and ask “what do I want to preserve in this interaction?”.",
		Complexity:    models.ComplexityMedium,
	},
}
