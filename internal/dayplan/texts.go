package dayplan

import "github.com/example/tvorets/pkg/models"

// Text is the localized copy of a task
type Text struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type textPack struct {
	ua []Text
	en []Text
}

var taskTexts = map[models.TaskType]textPack{
	models.TaskHabit: {
		ua: []Text{
			{"Мікрозвичка", "1 хвилина спокійного дихання перед важливою справою."},
			{"Звичка 1%", "Зроби на один крок більше, ніж учора, у маленькій звичці."},
			{"Маленький ритуал", "Вода/розтяжка/вдих перед стартом, 60 секунд."},
		},
		en: []Text{
			{"Microhabit", "1 minute of calm breathing before an important task."},
			{"1% habit", "Do one tiny step more than yesterday in a small habit."},
			{"Small ritual", "Water/stretch/breath before you start, 60 seconds."},
		},
	},
	models.TaskExercise: {
		ua: []Text{
			{"Коротка вправа", "3 хвилини без екранів: подихай або пройдися."},
			{"Перезавантаження", "10 присідань / легка розтяжка / сходи. Коротко."},
			{"Рух для розуму", "5 хвилин прогулянки без телефону, помічай відчуття."},
		},
		en: []Text{
			{"Short exercise", "3 minutes without screens: breathe or walk."},
			{"Reset", "10 squats / light stretch / stairs. Short and simple."},
			{"Movement for mind", "5 minutes walking without phone, notice sensations."},
		},
	},
	models.TaskReflection: {
		ua: []Text{
			{"Рефлексія дня", "Що допомогло тобі трохи заспокоїтися сьогодні?"},
			{"3 рядки чесності", "Що було ок / що забрало сили / що зробиш інакше завтра?"},
			{"Мʼяке питання", "\"Що я можу зробити сьогодні, щоб підтримати себе?\""},
		},
		en: []Text{
			{"Day reflection", "What helped you calm down a little today?"},
			{"3 lines of honesty", "Ok / drained / do differently tomorrow. 3 lines."},
			{"Gentle question", "\"What can I do today to support myself?\""},
		},
	},
	models.TaskFocus: {
		ua: []Text{
			{"Фокус-сесія 10 хв", "10 хвилин на одну справу без перемикань і сповіщень."},
			{"Блок фокусу 15 хв", "Постав таймер і роби лише одну задачу."},
			{"Анти-мультизадачність", "Закрий зайве й дороби одну маленьку дію до кінця."},
		},
		en: []Text{
			{"Focus 10 min", "10 minutes on one thing without switching/notifications."},
			{"Focus block 15 min", "Set a timer and do only one task."},
			{"No multitasking", "Close the noise and finish one small thing."},
		},
	},
	models.TaskBody: {
		ua: []Text{
			{"Енергія тіла", "Вода / розтяжка / 10 присідань / коротка прогулянка."},
			{"Турбота про тіло", "Склянка води + 1 хвилина розтяжки шиї/плечей."},
			{"Маленький рух", "3–5 хвилин просто походи, зміни темп дихання."},
		},
		en: []Text{
			{"Body energy", "Water / stretch / 10 squats / short walk."},
			{"Body care", "Glass of water + 1 minute stretching neck/shoulders."},
			{"Small movement", "3–5 minutes walk, change breathing pace."},
		},
	},
}

// TaskText returns the localized copy of task's variant
func TaskText(task models.TodayTask, lang models.Language) Text {
	pack, ok := taskTexts[task.Type]
	if !ok {
		return Text{Title: string(task.Type)}
	}
	list := pack.en
	if lang == models.LangUA {
		list = pack.ua
	}
	return list[max(0, min(task.Variant, len(list)-1))]
}
