package evening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/progress"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/internal/snapshot"
	"github.com/example/tvorets/pkg/models"
)

// Idempotency key prefixes of the journal entries written by the flows
const (
	ReflectionKeyPrefix = "evening_reflection"
	HardDayKeyPrefix    = progress.HardDayPrefix
)

// Deps are the stores the flows touch
type Deps struct {
	Clock   dates.Clock
	Profile *profile.Store
	XP      *progress.XPLedger
	Actions *progress.ActionLedger
	Plans   *dayplan.Store
	Rituals *ritual.Store
	Journal *journal.Store
	Memory  *mentor.MemoryStore
	Phrases *mentor.Phrases
	Metrics *metrics.Metrics
}

// Flows runs the multi-store rituals: morning entry, evening close, hard day
type Flows struct {
	d      Deps
	logger *zap.Logger
}

// New creates the flows
func New(d Deps, logger *zap.Logger) *Flows {
	if d.Phrases == nil {
		d.Phrases = mentor.NewPhrases(nil)
	}
	return &Flows{d: d, logger: logging.OrNop(logger).Named("evening")}
}

// Result is what a closed day reports back
type Result struct {
	Entry             models.JournalEntry `json:"entry" yaml:"entry"`
	XP                models.XPState      `json:"xp" yaml:"xp"`
	Actions           models.DayActions   `json:"actions" yaml:"actions"`
	SuccessRegistered bool                `json:"successRegistered" yaml:"successRegistered"`
	Line              string              `json:"line" yaml:"line"`
	MoodLine          string              `json:"moodLine,omitempty" yaml:"moodLine,omitempty"`
	Summary           string              `json:"summary" yaml:"summary"`
	Message           string              `json:"message" yaml:"message"`
}

// MorningResult is returned by MorningEntry
type MorningResult struct {
	Goal string `json:"goal" yaml:"goal"`
	Line string `json:"line" yaml:"line"`
	Hint string `json:"hint" yaml:"hint"`
}

// MicroResult is returned by MicroStep
type MicroResult struct {
	Task   models.TodayTask  `json:"task" yaml:"task"`
	Result models.TaskResult `json:"result" yaml:"result"`
}

// ReflectionKey is the journal idempotency key of date's evening reflection
func ReflectionKey(date string) string { return ReflectionKeyPrefix + ":" + date }

// HardDayKey is both the journal key and the action event id of date's hard day
func HardDayKey(date string) string { return HardDayKeyPrefix + ":" + date }

// voice resolves who speaks today
func (f *Flows) voice(ctx context.Context, lang models.Language, xp models.XPState) (mentor.Voice, models.Trait) {
	growth := f.d.Profile.MainGrowth(ctx)
	mode := mentor.ComputeMode(xp.Streak, xp.LastSuccessDate, dates.Today(f.d.Clock), dates.Yesterday(f.d.Clock))
	return mentor.VoiceFor(f.d.Profile.Load(ctx), lang, growth, mode), growth
}

// MorningEntry marks the morning as entered and makes sure today has an intention
func (f *Flows) MorningEntry(ctx context.Context, lang models.Language) MorningResult {
	v, growth := f.voice(ctx, lang, f.d.XP.LoadState(ctx))

	f.d.Rituals.MarkMorningDoneToday(ctx)
	goal := f.d.Rituals.EnsureTodayGoal(ctx, ritual.GoalFactory(lang, growth, nil))

	return MorningResult{
		Goal: goal,
		Line: f.d.Phrases.MorningEntryLine(v),
		Hint: f.d.Phrases.MorningEntryHint(lang),
	}
}

// CloseDay writes the evening reflection and closes the day. An empty text is
// replaced by an auto text. The streak advances only when something was done
// today and the day was not marked hard.
func (f *Flows) CloseDay(ctx context.Context, lang models.Language, text string) Result {
	today := dates.Today(f.d.Clock)
	p := f.d.Profile.Load(ctx)
	goal := f.d.Rituals.TodayGoal(ctx)
	before := f.d.Actions.GetDayActions(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		text = AutoEveningText(lang, p.Gender, goal, before.HasAnyAction)
	}

	entry := f.d.Journal.Prepend(ctx, journal.NewEntry{
		Title:          pick(lang, "Вечірня рефлексія", "Evening reflection"),
		Text:           text,
		Source:         models.SourceReflection,
		IdempotencyKey: ReflectionKey(today),
	})

	f.d.Rituals.MarkEveningDoneToday(ctx)

	success := before.HasAnyAction && !before.HardDayMarked
	if success {
		f.d.XP.RegisterDailySuccess(ctx)
	}

	rec := f.d.Actions.ReconcileTodayXP(ctx)
	v, growth := f.voice(ctx, lang, rec.XP)

	f.d.Memory.Record(ctx, models.MentorMemory{
		Goal:         goal,
		XPEarned:     rec.Actions.TodayXPEarned,
		HasAnyAction: rec.Actions.HasAnyAction,
		ClosedAs:     models.ClosedEvening,
		Mentor:       v.Mentor,
		Mode:         v.Mode,
		Growth:       growth,
	})
	f.d.Metrics.DayClosed(string(models.ClosedEvening))

	f.logger.Info("day closed",
		zap.String("date", today),
		zap.Bool("success", success),
		zap.Int("streak", rec.XP.Streak),
	)

	line := f.d.Phrases.EveningReflectionLine(v)
	summary := snapshot.SummaryLine(lang, rec.Actions, f.d.Plans.GetOrCreate(ctx, growth), rec.XP)
	return Result{
		Entry:             entry,
		XP:                rec.XP,
		Actions:           rec.Actions,
		SuccessRegistered: success,
		Line:              line,
		Summary:           summary,
		Message:           line + "\n\n" + summary,
	}
}

// CloseHardDay saves a low-mood entry, flags the day as hard and closes it.
// It never advances the streak.
func (f *Flows) CloseHardDay(ctx context.Context, lang models.Language, text string) Result {
	today := dates.Today(f.d.Clock)
	goal := f.d.Rituals.TodayGoal(ctx)

	text = strings.TrimSpace(text)
	quiet := text == ""
	if quiet {
		text = pick(lang, "Тихе закриття дня. Без слів, але я тут.", "Quiet day close. No words, but I am here.")
	}

	entry := f.d.Journal.Prepend(ctx, journal.NewEntry{
		Title:          pick(lang, "Важкий день", "Hard day"),
		Text:           text,
		Source:         models.SourceBadDay,
		Mood:           models.MoodLow,
		IdempotencyKey: HardDayKey(today),
	})

	f.d.Actions.RegisterActionEvent(ctx, HardDayKey(today), 0)
	f.d.Rituals.MarkEveningDoneToday(ctx)

	rec := f.d.Actions.ReconcileTodayXP(ctx)
	v, growth := f.voice(ctx, lang, rec.XP)

	f.d.Memory.Record(ctx, models.MentorMemory{
		Goal:         goal,
		XPEarned:     rec.Actions.TodayXPEarned,
		HasAnyAction: rec.Actions.HasAnyAction,
		ClosedAs:     models.ClosedBadDay,
		Mentor:       v.Mentor,
		Mode:         v.Mode,
		Growth:       growth,
	})
	f.d.Metrics.DayClosed(string(models.ClosedBadDay))

	f.logger.Info("hard day closed", zap.String("date", today), zap.Bool("quiet", quiet))

	line := f.d.Phrases.EveningReflectionLine(v)
	if quiet {
		line = f.d.Phrases.EveningQuietCloseLine(v)
	}
	moodLine := f.d.Phrases.JournalMoodLine(v, models.MoodLow)
	summary := snapshot.SummaryLine(lang, rec.Actions, f.d.Plans.GetOrCreate(ctx, growth), rec.XP)

	msg := pick(lang, "Збережено.", "Saved.")
	if line != "" {
		msg += "\n\n" + line
	}
	if strings.TrimSpace(moodLine) != "" {
		msg += "\n\n" + moodLine
	}
	msg += "\n\n" + summary

	return Result{
		Entry:    entry,
		XP:       rec.XP,
		Actions:  rec.Actions,
		Line:     line,
		MoodLine: moodLine,
		Summary:  summary,
		Message:  msg,
	}
}

// MicroStep completes one pending task: the first of the preferred type, else
// the first growth-focused one, else the first pending. ok is false when
// everything is done.
func (f *Flows) MicroStep(ctx context.Context, preferred models.TaskType) (MicroResult, bool) {
	growth := f.d.Profile.MainGrowth(ctx)
	plan := f.d.Plans.GetOrCreate(ctx, growth)

	task, ok := PickMicroTask(plan.Tasks, preferred)
	if !ok {
		return MicroResult{}, false
	}
	res := f.d.Plans.CompleteTask(ctx, task.ID, growth, dayplan.DefaultTaskXP)
	return MicroResult{Task: task, Result: res}, true
}

// PickMicroTask chooses the task a micro step counts toward
func PickMicroTask(tasks []models.TodayTask, preferred models.TaskType) (models.TodayTask, bool) {
	var pending []models.TodayTask
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return models.TodayTask{}, false
	}
	for _, t := range pending {
		if t.Type == preferred {
			return t, true
		}
	}
	for _, t := range pending {
		if t.IsGrowthFocused {
			return t, true
		}
	}
	return pending[0], true
}

// AutoEveningText is written for the user when they close the day without words
func AutoEveningText(lang models.Language, g models.Gender, goal string, hasAnyAction bool) string {
	goal = strings.TrimSpace(goal)

	if lang == models.LangUA {
		head := "Ціль дня: -"
		if goal != "" {
			head = fmt.Sprintf("Ціль дня: \"%s\".", goal)
		}
		body := fmt.Sprintf("Сьогодні було важко. Але я %s день.", mentor.GenderForm(g, "зафіксував", "зафіксувала", "зафіксував(ла)"))
		if hasAnyAction {
			body = fmt.Sprintf("Я %s хоча б один крок. Це рахується.", mentor.GenderForm(g, "зробив", "зробила", "зробив(ла)"))
		}
		tail := "Без оцінки. Просто закриваю день."
		if goal != "" {
			tail = "Не ідеально, і це нормально. Напрям важливіший за оцінку."
		}
		return head + "\n" + body + "\n" + tail
	}

	head := "Intention: -"
	if goal != "" {
		head = fmt.Sprintf("Intention: \"%s\".", goal)
	}
	body := "Today was heavy. But I closed the day."
	if hasAnyAction {
		body = "I made at least one step. That counts."
	}
	tail := "No judging. Just closing."
	if goal != "" {
		tail = "Not perfect is fine. Direction matters more than judging."
	}
	return head + "\n" + body + "\n" + tail
}

func pick(lang models.Language, ua, en string) string {
	if lang == models.LangUA {
		return ua
	}
	return en
}
