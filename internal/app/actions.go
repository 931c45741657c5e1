package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/evening"
	"github.com/example/tvorets/internal/excel"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/internal/reminder"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/internal/snapshot"
	"github.com/example/tvorets/pkg/models"
)

// ChallengeOutcome is the result of completing or skipping a challenge
type ChallengeOutcome struct {
	Challenge models.Challenge `json:"challenge" yaml:"challenge"`
	DayPlan   models.DayPlan   `json:"dayPlan" yaml:"dayPlan"`
	XP        models.XPState   `json:"xp" yaml:"xp"`
	// Changed is false when the challenge was already closed
	Changed bool   `json:"changed" yaml:"changed"`
	Line    string `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// TaskOutcome is the result of completing a task
type TaskOutcome struct {
	Task    models.TodayTask  `json:"task" yaml:"task"`
	Result  models.TaskResult `json:"result" yaml:"result"`
	Message string            `json:"message" yaml:"message"`
}

// Lang is the stored language, or the configured default
func (a *App) Lang(ctx context.Context) models.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile.Language(ctx, a.lang)
}

// Snapshot composes today's view
func (a *App) Snapshot(ctx context.Context) snapshot.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshots.Compose(ctx, a.profile.Language(ctx, a.lang))
}

// TaskText renders a task in the current language
func (a *App) TaskText(ctx context.Context, t models.TodayTask) dayplan.Text {
	return dayplan.TaskText(t, a.Lang(ctx))
}

// CompleteTask completes one of today's tasks for the default XP
func (a *App) CompleteTask(ctx context.Context, taskID string) (TaskOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	lang := a.profile.Language(ctx, a.lang)
	growth := a.profile.MainGrowth(ctx)
	plan := a.plans.GetOrCreate(ctx, growth)

	taskID = strings.TrimSpace(taskID)
	var task models.TodayTask
	found := false
	for _, t := range plan.Tasks {
		if t.ID == taskID {
			task, found = t, true
			break
		}
	}
	if !found {
		return TaskOutcome{}, fmt.Errorf("%w: task %q", ErrNotFound, taskID)
	}

	res := a.plans.CompleteTask(ctx, taskID, growth, dayplan.DefaultTaskXP)
	for _, t := range res.Tasks {
		if t.ID == taskID {
			task = t
		}
	}

	text := dayplan.TaskText(task, lang)
	msg := pick(lang, "Вже зараховано: ", "Already counted: ") + text.Title
	if res.DidApply {
		msg = fmt.Sprintf("%s: %s (+%d XP).", pick(lang, "Зараховано", "Counted"), text.Title, dayplan.DefaultTaskXP)
	}
	return TaskOutcome{Task: task, Result: res, Message: msg}, nil
}

// CompleteChallenge completes a pending challenge, grants XP and journals it
func (a *App) CompleteChallenge(ctx context.Context, id string) (ChallengeOutcome, error) {
	return a.closeChallenge(ctx, id, true)
}

// SkipChallenge skips a pending challenge: no XP, but the day counts as active
func (a *App) SkipChallenge(ctx context.Context, id string) (ChallengeOutcome, error) {
	return a.closeChallenge(ctx, id, false)
}

func (a *App) closeChallenge(ctx context.Context, id string, succeeded bool) (ChallengeOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	lang := a.profile.Language(ctx, a.lang)
	growth := a.profile.MainGrowth(ctx)
	plan := a.plans.GetOrCreate(ctx, growth)

	id = strings.TrimSpace(id)
	ch, ok := findChallenge(plan.Challenges, id)
	if !ok {
		return ChallengeOutcome{}, fmt.Errorf("%w: challenge %q", ErrNotFound, id)
	}
	if ch.Status != models.StatusPending {
		return ChallengeOutcome{
			Challenge: ch,
			DayPlan:   plan,
			XP:        a.xp.LoadState(ctx),
			Message:   pick(lang, "Цей челендж уже закрито.", "This challenge is already closed."),
		}, nil
	}

	out := ChallengeOutcome{Changed: true}
	if succeeded {
		res, ok := a.plans.CompleteChallenge(ctx, id, growth, dayplan.DefaultChallengeXP)
		if !ok {
			return ChallengeOutcome{}, fmt.Errorf("%w: challenge %q", ErrNotFound, id)
		}
		out.DayPlan, out.XP = res.DayPlan, res.XP
	} else {
		next, ok := a.plans.SetChallengeStatus(ctx, id, models.StatusSkipped, growth)
		if !ok {
			return ChallengeOutcome{}, fmt.Errorf("%w: challenge %q", ErrNotFound, id)
		}
		out.DayPlan, out.XP = next, a.xp.LoadState(ctx)
	}
	out.Challenge, _ = findChallenge(out.DayPlan.Challenges, id)

	title := ch.Title(lang)
	a.journal.AppendChallengeEntry(ctx, succeeded, id, title, lang)

	v := mentor.VoiceFor(a.profile.Load(ctx), lang, growth, mentor.ComputeMode(out.XP.Streak, out.XP.LastSuccessDate, dates.Today(a.clock), dates.Yesterday(a.clock)))
	out.Line = a.phrases.ChallengeLine(v, ch.Trait, succeeded)

	if succeeded {
		base := fmt.Sprintf(pick(lang, "+%d XP за чесний челендж.", "+%d XP for an honest challenge."), dayplan.DefaultChallengeXP)
		stats := fmt.Sprintf(pick(lang, "XP: %d • Рівень: %d • Серія: %d", "XP: %d • Level: %d • Streak: %d"),
			out.XP.XP, out.XP.Level, out.XP.Streak)
		out.Message = joinBlocks(base, out.Line, stats)
	} else {
		out.Message = out.Line
		if out.Message == "" {
			out.Message = pick(lang, "Зафіксовано.", "Noted.")
		}
	}
	return out, nil
}

// RegenerateChallenges draws a fresh challenge set for today, tasks stay
func (a *App) RegenerateChallenges(ctx context.Context) models.DayPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plans.RegenerateChallenges(ctx, a.profile.MainGrowth(ctx))
}

// ChallengeSummary is the done/total view of today's challenges
func (a *App) ChallengeSummary(ctx context.Context) models.ChallengeSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plans.GetOrCreate(ctx, a.profile.MainGrowth(ctx))
	return a.challenges.Summary(ctx)
}

// MicroStep counts one quick ritual as a task of the preferred type
func (a *App) MicroStep(ctx context.Context, preferred models.TaskType) (evening.MicroResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flows.MicroStep(ctx, preferred)
}

// Morning marks the morning entry
func (a *App) Morning(ctx context.Context) evening.MorningResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flows.MorningEntry(ctx, a.profile.Language(ctx, a.lang))
}

// Goal returns today's intention
func (a *App) Goal(ctx context.Context) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rituals.TodayGoal(ctx)
}

// SetGoal replaces today's intention; an empty goal clears it
func (a *App) SetGoal(ctx context.Context, goal string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if strings.TrimSpace(goal) == "" {
		a.rituals.ResetTodayGoal(ctx)
		return ""
	}
	a.rituals.SetTodayGoal(ctx, goal)
	return a.rituals.TodayGoal(ctx)
}

// EveningQuestion is the reflection prompt shown before closing the day
func (a *App) EveningQuestion(ctx context.Context) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := a.snapshots.Compose(ctx, a.profile.Language(ctx, a.lang))
	return a.phrases.EveningReflectionQuestion(snap.Voice(), snap.Goal)
}

// Gate reports which ritual entries are open right now
func (a *App) Gate(ctx context.Context) ritual.Gate {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate(ctx)
}

func (a *App) gate(ctx context.Context) ritual.Gate {
	return ritual.ComputeGate(
		a.clock.Now(),
		a.rituals.IsMorningDoneToday(ctx),
		a.rituals.IsEveningDoneToday(ctx),
		a.actions.GetDayActions(ctx).HasAnyAction,
	)
}

// CloseDay writes the evening reflection and closes the day.
// It returns ErrLocked outside the evening window or before the first action.
func (a *App) CloseDay(ctx context.Context, text string) (evening.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gate(ctx).ShowEvening {
		return evening.Result{}, ErrLocked
	}
	return a.flows.CloseDay(ctx, a.profile.Language(ctx, a.lang), text), nil
}

// CloseHardDay closes the day as a hard day. It is only open while the
// evening is locked for lack of an action.
func (a *App) CloseHardDay(ctx context.Context, text string) (evening.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gate(ctx).ShowHardDay {
		return evening.Result{}, ErrLocked
	}
	return a.flows.CloseHardDay(ctx, a.profile.Language(ctx, a.lang), text), nil
}

// XP returns the lifetime ledger joined with today's record
func (a *App) XP(ctx context.Context) models.Reconciled {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.actions.ReconcileTodayXP(ctx)
}

// Journal lists entries, newest first
func (a *App) Journal(ctx context.Context, limit int, source models.JournalSource) []models.JournalEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.journal.Entries(ctx, limit, source)
}

// AddNote writes a free note to the journal and returns the mentor's reaction to the mood
func (a *App) AddNote(ctx context.Context, title, text string, mood models.JournalMood) (models.JournalEntry, string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := a.journal.Prepend(ctx, journal.NewEntry{
		Title:  title,
		Text:   text,
		Source: models.SourceNote,
		Mood:   mood,
	})
	if entry.Mood == "" {
		return entry, ""
	}
	snap := a.snapshots.Compose(ctx, a.profile.Language(ctx, a.lang))
	return entry, a.phrases.JournalMoodLine(snap.Voice(), entry.Mood)
}

// ExportJournal writes the whole journal to an xlsx file
func (a *App) ExportJournal(ctx context.Context, path string) (int, error) {
	a.mu.Lock()
	entries := a.journal.All(ctx)
	a.mu.Unlock()

	if err := excel.ExportJournal(entries, path); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Profile returns the stored profile and language
func (a *App) Profile(ctx context.Context) (models.Profile, models.Language, *models.TraitsResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile.Load(ctx), a.profile.Language(ctx, a.lang), a.profile.Traits(ctx)
}

// ProfileUpdate holds the fields to change, nil ones stay
type ProfileUpdate struct {
	Name     *string
	Mentor   *models.Mentor
	Gender   *models.Gender
	Language *models.Language
}

// UpdateProfile saves the given fields
func (a *App) UpdateProfile(ctx context.Context, u ProfileUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if u.Name != nil {
		if err := a.profile.SaveName(ctx, *u.Name); err != nil {
			return err
		}
	}
	if u.Mentor != nil {
		if !u.Mentor.IsValid() {
			return fmt.Errorf("%w: mentor %q", ErrInvalid, *u.Mentor)
		}
		if err := a.profile.SaveMentor(ctx, *u.Mentor); err != nil {
			return err
		}
	}
	if u.Gender != nil {
		if err := a.profile.SaveGender(ctx, *u.Gender); err != nil {
			return err
		}
	}
	if u.Language != nil {
		if err := a.profile.SaveLanguage(ctx, *u.Language); err != nil {
			return err
		}
	}
	return nil
}

// SetTraits stores a traits result. Today's plan follows the new main growth on next read.
func (a *App) SetTraits(ctx context.Context, r models.TraitsResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile.SaveTraits(ctx, r)
}

// ScheduleReminder turns the daily reminder on in the current language and mentor
func (a *App) ScheduleReminder(ctx context.Context, hour, minute int) error {
	a.mu.Lock()
	p := a.profile.Load(ctx)
	ok := a.reminders.Schedule(ctx, hour, minute, a.profile.Language(ctx, a.lang), p.Mentor)
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: reminder time %02d:%02d", ErrInvalid, hour, minute)
	}
	return a.syncScheduler(ctx)
}

// CancelReminder turns the daily reminder off
func (a *App) CancelReminder(ctx context.Context) error {
	a.mu.Lock()
	a.reminders.Cancel(ctx)
	a.mu.Unlock()
	return a.syncScheduler(ctx)
}

// ReminderInfo reports the reminder setting
func (a *App) ReminderInfo(ctx context.Context) models.ReminderInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reminders.Info(ctx)
}

// PreviewReminder renders a reminder without storing anything
func (a *App) PreviewReminder(ctx context.Context) reminder.Text {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.profile.Load(ctx)
	return reminder.BuildText(a.profile.Language(ctx, a.lang), p.Mentor, nil)
}

// syncScheduler runs without the app lock, the scheduler takes it itself
func (a *App) syncScheduler(ctx context.Context) error {
	if a.scheduler == nil {
		return nil
	}
	return a.scheduler.Sync(ctx)
}

// Catalog returns the active challenge catalog
func (a *App) Catalog() *challenges.Catalog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.challenges.Catalog()
}

// ImportCatalog replaces the challenge catalog with the definitions in path and
// persists it. Rows with errors are reported and skipped.
func (a *App) ImportCatalog(ctx context.Context, path string) (*excel.ImportResult, error) {
	cfg := excel.DefaultImportConfig()
	cfg.FilePath = path
	res, err := excel.ImportChallenges(cfg)
	if err != nil {
		return nil, err
	}
	return res, a.useImported(ctx, res)
}

// ImportCatalogResult activates an import done elsewhere (e.g. from an upload)
func (a *App) ImportCatalogResult(ctx context.Context, res *excel.ImportResult) error {
	return a.useImported(ctx, res)
}

func (a *App) useImported(ctx context.Context, res *excel.ImportResult) error {
	c, err := challenges.NewCatalog(res.Definitions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := challenges.SaveCatalog(ctx, a.store, c); err != nil {
		return err
	}
	a.challenges.SetCatalog(c)
	a.logger.Info("challenge catalog replaced", zap.Int("challenges", c.Len()), zap.Int("skipped", res.Skipped))
	return nil
}

// ResetCatalog goes back to the built-in catalog
func (a *App) ResetCatalog(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := challenges.ClearCatalog(ctx, a.store); err != nil {
		return err
	}
	a.challenges.SetCatalog(nil)
	return nil
}

// Reset wipes all progress, rituals, journal, profile and reminder
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	err := a.store.MultiRemove(ctx, a.Keys()...)
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	a.logger.Info("all progress reset")
	return a.syncScheduler(ctx)
}

func findChallenge(list []models.Challenge, id string) (models.Challenge, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return models.Challenge{}, false
}

func pick(lang models.Language, ua, en string) string {
	if lang == models.LangUA {
		return ua
	}
	return en
}

func joinBlocks(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
