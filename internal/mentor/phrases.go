package mentor

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/example/tvorets/pkg/models"
)

// Voice is everything a phrase needs to know about who speaks to whom
type Voice struct {
	Mentor models.Mentor
	Lang   models.Language
	Growth models.Trait
	Mode   models.MentorMode
	Gender models.Gender
	Name   string
}

// VoiceFor builds a voice from the stored profile
func VoiceFor(p models.Profile, lang models.Language, growth models.Trait, mode models.MentorMode) Voice {
	return Voice{
		Mentor: models.ParseMentor(string(p.Mentor)),
		Lang:   lang,
		Growth: growth,
		Mode:   mode,
		Gender: p.Gender,
		Name:   strings.TrimSpace(p.Name),
	}
}

func (v Voice) ua() bool { return v.Lang == models.LangUA }

func (v Voice) name() string { return SafeName(v.Lang, v.Name) }

func (v Voice) who() string { return DisplayName(v.Mentor, v.Lang) }

// DayFrame is the normalized framing of a day: mode, one-liner and a fixed micro rule
type DayFrame struct {
	Mode      models.MentorMode `json:"mode" yaml:"mode"`
	OneLiner  string            `json:"oneLiner" yaml:"oneLiner"`
	MicroRule string            `json:"microRule" yaml:"microRule"`
}

// Phrases builds mentor copy. Lines with several variants draw from rng.
type Phrases struct {
	rng *rand.Rand
}

// NewPhrases creates a phrase engine; nil rng uses the global source
func NewPhrases(rng *rand.Rand) *Phrases {
	return &Phrases{rng: rng}
}

func (p *Phrases) pick(list []string) string {
	if p == nil || p.rng == nil {
		return list[rand.IntN(len(list))]
	}
	return list[p.rng.IntN(len(list))]
}

// DailyLine is the mentor's line of the day
func (p *Phrases) DailyLine(v Voice) string {
	name := v.name()
	if v.ua() {
		switch v.Mentor {
		case models.MentorLana:
			return fmt.Sprintf("Лана: %s, будь %s до себе. Один крок вже турбота.", name,
				GenderForm(v.Gender, "мʼяким", "мʼякою", "мʼяким(ою)"))
		case models.MentorBro:
			return fmt.Sprintf("Bro: %s, коротко: зроби щось одне.", name)
		case models.MentorKatana:
			return fmt.Sprintf("Катана: %s, точність важливіша за кількість.", name)
		}
		return fmt.Sprintf("Лев: %s, система сильніша за настрій. Один крок, і достатньо.", name)
	}

	switch v.Mentor {
	case models.MentorLana:
		return fmt.Sprintf("Lana: %s, be gentle. One step already counts.", name)
	case models.MentorBro:
		return fmt.Sprintf("Bro: %s, short: do one thing.", name)
	case models.MentorKatana:
		return fmt.Sprintf("Katana: %s, precision over quantity.", name)
	}
	return fmt.Sprintf("Lev: %s, systems beat moods. One step is enough.", name)
}

// ChallengesHeaderLine introduces today's challenges
func (p *Phrases) ChallengesHeaderLine(v Voice) string {
	trait := traitWord(v.Growth, v.Lang)
	if v.ua() {
		if trait != "" {
			return fmt.Sprintf("%s: один крок у %s.", v.who(), trait)
		}
		return fmt.Sprintf("%s: обери одну дію і зроби її.", v.who())
	}
	if trait != "" {
		return fmt.Sprintf("%s: one step in %s.", v.who(), trait)
	}
	return fmt.Sprintf("%s: choose one action and do it.", v.who())
}

// MorningEntryLine greets the user at the start of the day; push and support add a tail
func (p *Phrases) MorningEntryLine(v Voice) string {
	name := v.name()
	trait := traitWord(v.Growth, v.Lang)

	if v.ua() {
		g := ""
		if trait != "" {
			g = " у " + trait
		}
		packs := map[models.Mentor][]string{
			models.MentorLev: {
				fmt.Sprintf("Лев: %s, стартуємо з однієї точної дії%s.", name, g),
				fmt.Sprintf("Лев: %s, сьогодні одна дія до кінця. Без шуму.", name),
			},
			models.MentorLana: {
				fmt.Sprintf("Лана: %s, мʼякий старт. Один теплий крок%s, і досить.", name, g),
				fmt.Sprintf("Лана: %s, почни з турботи: маленький крок і далі по відчуттях.", name),
			},
			models.MentorBro: {
				fmt.Sprintf("Bro: %s, включайся. Один рух%s, і день вже не нуль.", name, g),
				fmt.Sprintf("Bro: %s, без розгону: зроби 1 штуку. Все.", name),
			},
			models.MentorKatana: {
				fmt.Sprintf("Катана: %s, відріж зайве. Одна точна дія%s.", name, g),
				fmt.Sprintf("Катана: %s, чистий старт: одна дія, одна лінія.", name),
			},
		}
		extra := ""
		switch v.Mode {
		case models.ModePush:
			extra = " Можна трохи більше, але без хаосу."
		case models.ModeSupport:
			extra = " Якщо важко, зменш крок, не скасовуй рух."
		}
		return p.pick(packFor(packs, v.Mentor)) + extra
	}

	g := ""
	if trait != "" {
		g = " in " + trait
	}
	packs := map[models.Mentor][]string{
		models.MentorLev: {
			fmt.Sprintf("Lev: %s, start with one precise action%s.", name, g),
			fmt.Sprintf("Lev: %s, one action to completion. No noise.", name),
		},
		models.MentorLana: {
			fmt.Sprintf("Lana: %s, a gentle start. One caring step%s is enough.", name, g),
			fmt.Sprintf("Lana: %s, begin with care: a small step, then follow the feeling.", name),
		},
		models.MentorBro: {
			fmt.Sprintf("Bro: %s, switch on. One move%s and the day is not zero.", name, g),
			fmt.Sprintf("Bro: %s, no warm-up: do 1 thing. That's it.", name),
		},
		models.MentorKatana: {
			fmt.Sprintf("Katana: %s, cut the noise. One precise action%s.", name, g),
			fmt.Sprintf("Katana: %s, clean start: one action, one line.", name),
		},
	}
	extra := ""
	switch v.Mode {
	case models.ModePush:
		extra = " You can do a bit more, without chaos."
	case models.ModeSupport:
		extra = " If it's hard, shrink the step and keep the motion."
	}
	return p.pick(packFor(packs, v.Mentor)) + extra
}

func packFor(packs map[models.Mentor][]string, m models.Mentor) []string {
	if list, ok := packs[m]; ok {
		return list
	}
	return packs[models.MentorLev]
}

// MorningEntryHint is the short instruction under the morning line
func (p *Phrases) MorningEntryHint(lang models.Language) string {
	if lang == models.LangUA {
		return "30 секунд. Просто познач старт і вибери 1 маленький крок."
	}
	return "30 seconds. Mark the start, then pick 1 small step."
}

// EveningReflectionQuestion asks about the intention when there is one,
// otherwise picks a generic or growth-flavoured question
func (p *Phrases) EveningReflectionQuestion(v Voice, goal string) string {
	goal = strings.TrimSpace(goal)
	trait := traitWord(v.Growth, v.Lang)

	if v.ua() {
		if goal != "" {
			return fmt.Sprintf("Як вийшло з ціллю: \"%s\"?", goal)
		}
		list := []string{
			"Що сьогодні було трохи краще, ніж учора?",
			fmt.Sprintf("Де ти сьогодні не %s, навіть якщо було важко?", GenderForm(v.Gender, "зник", "зникла", "зник(ла)")),
			"Який маленький крок варто просто зарахувати?",
		}
		if trait != "" {
			list = append(list,
				fmt.Sprintf("Що було одним чесним кроком у напрямку %s?", trait),
				fmt.Sprintf("Як сьогодні проявився твій фокус на %s?", trait),
			)
		}
		return p.pick(list)
	}

	if goal != "" {
		return fmt.Sprintf("How did it go with: \"%s\"?", goal)
	}
	list := []string{
		"What was slightly better today than yesterday?",
		"Where did you not disappear today, even if it was hard?",
		"Which small step is worth counting?",
	}
	if trait != "" {
		list = append(list,
			fmt.Sprintf("What was one honest step toward %s?", trait),
			fmt.Sprintf("How did your %s show up today?", trait),
		)
	}
	return p.pick(list)
}

// EveningReflectionLine acknowledges a closed day
func (p *Phrases) EveningReflectionLine(v Voice) string {
	if v.ua() {
		return fmt.Sprintf("%s, день зафіксовано. Не ідеально, але чесно. Це і є рух.", v.name())
	}
	return fmt.Sprintf("%s, day closed. Not perfect, but honest. That is movement.", v.name())
}

// EveningQuietCloseLine answers a day closed without words
func (p *Phrases) EveningQuietCloseLine(v Voice) string {
	name := v.name()
	trait := traitWord(v.Growth, v.Lang)

	if v.ua() {
		tail := " Завтра продовжимо."
		if trait != "" {
			tail = fmt.Sprintf(" Завтра повернемося до %s.", trait)
		}
		switch v.Mentor {
		case models.MentorLana:
			return fmt.Sprintf("Лана: %s, тиша теж форма турботи. Я з тобою.%s", name, tail)
		case models.MentorBro:
			return fmt.Sprintf("Bro: %s, окей, без тексту. Головне, що ти не %s.%s", name,
				GenderForm(v.Gender, "зник", "зникла", "зник(ла)"), tail)
		case models.MentorKatana:
			return fmt.Sprintf("Катана: %s, закрий день чисто. Без шуму.%s", name, tail)
		}
		return fmt.Sprintf("Лев: %s, день можна закрити без слів. Ти тут.%s", name, tail)
	}

	tail := " Tomorrow we continue."
	if trait != "" {
		tail = fmt.Sprintf(" Tomorrow we return to %s.", trait)
	}
	switch v.Mentor {
	case models.MentorLana:
		return fmt.Sprintf("Lana: %s, silence can be care too. I am with you.%s", name, tail)
	case models.MentorBro:
		return fmt.Sprintf("Bro: %s, okay, no text. The point is: you did not disappear.%s", name, tail)
	case models.MentorKatana:
		return fmt.Sprintf("Katana: %s, close the day cleanly. No noise.%s", name, tail)
	}
	return fmt.Sprintf("Lev: %s, you can close the day without words. You are here.%s", name, tail)
}

// ChallengeLine reacts to a completed or skipped challenge of the given trait
func (p *Phrases) ChallengeLine(v Voice, trait models.Trait, succeeded bool) string {
	t := traitWord(trait, v.Lang)

	if v.ua() {
		if t == "" {
			t = "обрану рису"
		}
		if succeeded {
			switch v.Mentor {
			case models.MentorLana:
				return "Лана: дбайливо і чесно. Закріплюємо прогрес у " + t + "."
			case models.MentorBro:
				return "Bro: done. Плюс один крок у " + t + "."
			case models.MentorKatana:
				return "Катана: точність збережено. Структура міцнішає у " + t + "."
			}
			return "Лев: крок зараховано. Тримай курс у " + t + "."
		}
		switch v.Mentor {
		case models.MentorLana:
			return "Лана: твій стан важливіший за чекбокс. Без провини."
		case models.MentorBro:
			return "Bro: окей, пропустили. Головне не зливати весь день."
		case models.MentorKatana:
			return "Катана: чітке “ні” інколи економить сили. Повернемося."
		}
		return "Лев: “не сьогодні” теж стратегія. Завтра повернемося."
	}

	if t == "" {
		t = "the chosen trait"
	}
	if succeeded {
		switch v.Mentor {
		case models.MentorLana:
			return "Lana: caring and honest. Lock progress in " + t + "."
		case models.MentorBro:
			return "Bro: done. One step in " + t + "."
		case models.MentorKatana:
			return "Katana: precision preserved. Structure strengthens in " + t + "."
		}
		return "Lev: step registered. Keep course in " + t + "."
	}
	switch v.Mentor {
	case models.MentorLana:
		return "Lana: your state matters more than a checkbox. No guilt."
	case models.MentorBro:
		return "Bro: okay, skipped. Just do not flush the whole day."
	case models.MentorKatana:
		return "Katana: a clear “no” can save energy. Return later."
	}
	return "Lev: “not today” is strategy. We return tomorrow."
}

// JournalMoodLine reacts to the mood of a journal entry
func (p *Phrases) JournalMoodLine(v Voice, mood models.JournalMood) string {
	name := v.name()
	if v.ua() {
		switch mood {
		case models.MoodLow:
			return fmt.Sprintf("%s: %s, важкий день теж частина шляху.", v.who(), name)
		case models.MoodNeutral:
			return fmt.Sprintf("%s: %s, стабільність народжується з повторів.", v.who(), name)
		}
		return fmt.Sprintf("%s: %s, зафіксуй цей стан.", v.who(), name)
	}
	switch mood {
	case models.MoodLow:
		return fmt.Sprintf("%s: %s, hard days are part of the path.", v.who(), name)
	case models.MoodNeutral:
		return fmt.Sprintf("%s: %s, stability comes from repetition.", v.who(), name)
	}
	return fmt.Sprintf("%s: %s, lock this state.", v.who(), name)
}

var memoryTones = map[models.Mentor]map[models.Language][3]string{
	// push, support, neutral
	models.MentorLev: {
		models.LangUA: {"Ритм формується. Тримай курс.", "Зменш крок, не скасовуй рух.", "Одна дія до кінця."},
		models.LangEN: {"Rhythm is forming. Keep course.", "Shrink the step, keep the motion.", "One action to completion."},
	},
	models.MentorLana: {
		models.LangUA: {"Ти тримаєш ритм. Мʼяко додай 1%.", "Без провини. Малий крок, і достатньо.", "Один чесний крок, і досить."},
		models.LangEN: {"Your rhythm is there. Add 1% gently.", "No guilt. Small step is enough.", "One honest step is enough."},
	},
	models.MentorBro: {
		models.LangUA: {"Ти в формі. Додавай +1.", "Мінімум теж результат.", "Просто зроби один рух."},
		models.LangEN: {"You are in shape. Add +1.", "Minimum is still a result.", "Just do one move."},
	},
	models.MentorKatana: {
		models.LangUA: {"Сьогодні коротко і чітко.", "Зменш крок. Збережи рух.", "Одна дія. Без шуму."},
		models.LangEN: {"Brief and precise today.", "Shrink the step. Keep motion.", "One action. No noise."},
	},
}

// MemoryLine recaps a remembered day in the voice of the current mentor.
// The tone follows the mode stored with the memory.
func (p *Phrases) MemoryLine(v Voice, m models.MentorMemory) string {
	goal := strings.TrimSpace(m.Goal)
	xp := max(0, m.XPEarned)
	lang := models.ParseLanguage(string(v.Lang))

	var head, g, act, closing, growth string
	if lang == models.LangUA {
		head = "Вчора:"
		g = "Ціль: -"
		if goal != "" {
			g = fmt.Sprintf("Ціль: “%s”.", goal)
		}
		act = "Міг бути нуль дій, але день не загублено."
		if m.HasAnyAction {
			act = "Був хоча б один крок, це рахується."
		}
		closing = "Закривати день теж навичка."
		if m.ClosedAs == models.ClosedBadDay {
			closing = "Важкий день теж можна пройти."
		}
		if w := traitWord(m.Growth, lang); w != "" {
			growth = "Фокус: " + w + "."
		}
	} else {
		head = "Yesterday:"
		g = "Intention: -"
		if goal != "" {
			g = fmt.Sprintf("Intention: “%s”.", goal)
		}
		act = "Maybe zero actions, but the day was not lost."
		if m.HasAnyAction {
			act = "At least one step happened, it counts."
		}
		closing = "Closing a day is a skill too."
		if m.ClosedAs == models.ClosedBadDay {
			closing = "A hard day can still be carried through."
		}
		if w := traitWord(m.Growth, lang); w != "" {
			growth = "Focus: " + w + "."
		}
	}

	tones, ok := memoryTones[v.Mentor]
	if !ok {
		tones = memoryTones[models.MentorLev]
	}
	t := tones[lang]
	tone := t[2]
	switch m.Mode {
	case models.ModePush:
		tone = t[0]
	case models.ModeSupport:
		tone = t[1]
	}

	return fmt.Sprintf("%s %s\n+%d XP. %s\n%s %s\n%s: %s",
		head, g, xp, growth, act, closing, DisplayName(v.Mentor, lang), tone)
}

// DayFrame returns the day's one-liner and the micro rule for the mode.
// The rule never varies so the same mode always reads the same.
func (p *Phrases) DayFrame(v Voice) DayFrame {
	var rule string
	switch {
	case v.ua() && v.Mode == models.ModePush:
		rule = "Правило дня: додай +1%, один крок понад мінімум."
	case v.ua() && v.Mode == models.ModeSupport:
		rule = "Правило дня: зменш крок, але не скасовуй рух."
	case v.ua():
		rule = "Правило дня: одна точна дія без перемикань."
	case v.Mode == models.ModePush:
		rule = "Rule: add +1%, one step above minimum."
	case v.Mode == models.ModeSupport:
		rule = "Rule: shrink the step, don't cancel the journey."
	default:
		rule = "Rule: one precise action, no switching."
	}

	mode := v.Mode
	if !mode.IsValid() {
		mode = models.ModeNeutral
	}
	return DayFrame{Mode: mode, OneLiner: p.DailyLine(v), MicroRule: rule}
}
