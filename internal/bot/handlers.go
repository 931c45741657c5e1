package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/app"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/excel"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/render"
	"github.com/example/tvorets/internal/reminder"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/pkg/models"
)

// Constants for callback data
const (
	callbackToday        = "today"
	callbackXP           = "xp"
	callbackJournal      = "journal"
	callbackMorning      = "morning"
	callbackEvening      = "evening"
	callbackHardDay      = "hardday"
	callbackMicro        = "micro"
	callbackRegenerate   = "regen"
	callbackHelp         = "help"
	callbackResetConfirm = "reset_confirm"
	callbackCancelAction = "cancel_action"

	prefixTask          = "task:"
	prefixChallengeDone = "ch_done:"
	prefixChallengeSkip = "ch_skip:"
)

func pick(lang models.Language, ua, en string) string {
	if lang == models.LangUA {
		return ua
	}
	return en
}

// MainMenuButtons is the menu under every screen
func (b *Bot) MainMenuButtons(lang models.Language) [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: pick(lang, "📅 Сьогодні", "📅 Today"), CallbackData: callbackToday},
			{Text: "⭐ XP", CallbackData: callbackXP},
		},
		{
			{Text: pick(lang, "⚡ Мікрокрок", "⚡ Micro step"), CallbackData: callbackMicro},
			{Text: pick(lang, "📓 Журнал", "📓 Journal"), CallbackData: callbackJournal},
		},
		{
			{Text: pick(lang, "❓ Допомога", "❓ Help"), CallbackData: callbackHelp},
		},
	}
}

// RitualButtons are the ritual entries open right now
func (b *Bot) RitualButtons(lang models.Language, g ritual.Gate) []MenuButton {
	var row []MenuButton
	if g.ShowMorning {
		row = append(row, MenuButton{Text: pick(lang, "🌅 Ранок", "🌅 Morning"), CallbackData: callbackMorning})
	}
	if g.ShowEvening {
		row = append(row, MenuButton{Text: pick(lang, "🌙 Вечір", "🌙 Evening"), CallbackData: callbackEvening})
	}
	if g.ShowHardDay {
		row = append(row, MenuButton{Text: pick(lang, "🪨 Важкий день", "🪨 Hard day"), CallbackData: callbackHardDay})
	}
	return row
}

func (b *Bot) menu(lang models.Language) *tgbotapi.InlineKeyboardMarkup {
	k := createKeyboard(b.MainMenuButtons(lang))
	return &k
}

func (b *Bot) cancelKeyboard(lang models.Language) *tgbotapi.InlineKeyboardMarkup {
	k := createKeyboard([][]MenuButton{{{Text: pick(lang, "❌ Скасувати", "❌ Cancel"), CallbackData: callbackCancelAction}}})
	return &k
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	chat := update.FromChat()
	if chat == nil {
		return
	}
	if b.config.ChatID != 0 && chat.ID != b.config.ChatID {
		b.logger.Warn("message from a foreign chat ignored", zap.Int64("chat", chat.ID))
		return
	}

	var err error
	switch {
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.takeState()
		err = b.HandleCommand(ctx, update.Message)
	case update.Message != nil:
		err = b.handleText(ctx, update.Message)
	}
	if err != nil {
		b.logger.Error("update failed", zap.Int("update", update.UpdateID), zap.Error(err))
		lang := b.app.Lang(ctx)
		_ = b.reply(chat.ID, pick(lang, "❌ Сталася помилка. Спробуй ще раз.", "❌ Something went wrong. Please try again."), b.menu(lang))
	}
}

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start", "menu", "today":
		return b.showToday(ctx, chatID)
	case "help":
		return b.showHelp(ctx, chatID)
	case "done":
		return b.completeTask(ctx, chatID, args)
	case "regen":
		return b.regenerate(ctx, chatID)
	case "morning":
		return b.morning(ctx, chatID)
	case "goal":
		return b.goal(ctx, chatID, args)
	case "evening":
		return b.evening(ctx, chatID, args, false)
	case "hardday":
		return b.hardDay(ctx, chatID, args, false)
	case "micro":
		return b.microStep(ctx, chatID)
	case "note":
		return b.note(ctx, chatID, args)
	case "journal":
		return b.showJournal(ctx, chatID)
	case "export":
		return b.exportJournal(ctx, chatID)
	case "xp":
		return b.showXP(ctx, chatID)
	case "profile":
		return b.showProfile(ctx, chatID)
	case "name":
		return b.updateProfile(ctx, chatID, app.ProfileUpdate{Name: &args})
	case "mentor":
		m := models.Mentor(strings.ToLower(args))
		return b.updateProfile(ctx, chatID, app.ProfileUpdate{Mentor: &m})
	case "gender":
		g := models.ParseGender(strings.ToLower(args))
		return b.updateProfile(ctx, chatID, app.ProfileUpdate{Gender: &g})
	case "lang":
		l := models.ParseLanguage(strings.ToLower(args))
		return b.updateProfile(ctx, chatID, app.ProfileUpdate{Language: &l})
	case "traits":
		return b.setTraits(ctx, chatID, args)
	case "remind":
		return b.remind(ctx, chatID, args)
	case "import":
		return b.startImport(ctx, chatID)
	case "reset":
		return b.confirmReset(ctx, chatID)
	default:
		lang := b.app.Lang(ctx)
		return b.reply(chatID, pick(lang, "Невідома команда. /help", "Unknown command. Use /help."), b.menu(lang))
	}
}

// handleText routes free text and files by the pending state
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch b.takeState() {
	case stateEvening:
		return b.evening(ctx, chatID, orSkip(text), true)
	case stateHardDay:
		return b.hardDay(ctx, chatID, orSkip(text), true)
	case stateGoal:
		return b.goal(ctx, chatID, text)
	case stateNote:
		return b.note(ctx, chatID, text)
	case stateReminderTime:
		return b.remind(ctx, chatID, text)
	case stateCatalogFile:
		if message.Document == nil {
			lang := b.app.Lang(ctx)
			b.setState(stateCatalogFile)
			return b.reply(chatID, pick(lang, "Надішли файл .xlsx або .csv.", "Please send an .xlsx or .csv file."), b.cancelKeyboard(lang))
		}
		return b.importCatalog(ctx, chatID, message.Document)
	}

	lang := b.app.Lang(ctx)
	return b.reply(chatID, pick(lang, "Не зрозумів. /help", "I don't understand. Use /help."), b.menu(lang))
}

// orSkip keeps "-" as an explicit request for the auto text
func orSkip(text string) string {
	if text == "-" {
		return ""
	}
	return text
}

// HandleCallback handles inline button presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback == nil || callback.Message == nil || callback.Message.Chat == nil {
		return fmt.Errorf("invalid callback data: required fields are missing")
	}

	// Always answer the callback query to remove the loading state
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data
	b.takeState()

	switch data {
	case callbackToday:
		return b.showToday(ctx, chatID)
	case callbackXP:
		return b.showXP(ctx, chatID)
	case callbackJournal:
		return b.showJournal(ctx, chatID)
	case callbackMorning:
		return b.morning(ctx, chatID)
	case callbackEvening:
		return b.evening(ctx, chatID, "", false)
	case callbackHardDay:
		return b.hardDay(ctx, chatID, "", false)
	case callbackMicro:
		return b.microStep(ctx, chatID)
	case callbackRegenerate:
		return b.regenerate(ctx, chatID)
	case callbackHelp:
		return b.showHelp(ctx, chatID)
	case callbackResetConfirm:
		return b.reset(ctx, chatID)
	case callbackCancelAction:
		lang := b.app.Lang(ctx)
		return b.reply(chatID, pick(lang, "Скасовано.", "Cancelled."), b.menu(lang))
	}

	switch {
	case strings.HasPrefix(data, prefixTask):
		return b.completeTask(ctx, chatID, strings.TrimPrefix(data, prefixTask))
	case strings.HasPrefix(data, prefixChallengeDone):
		return b.closeChallenge(ctx, chatID, strings.TrimPrefix(data, prefixChallengeDone), true)
	case strings.HasPrefix(data, prefixChallengeSkip):
		return b.closeChallenge(ctx, chatID, strings.TrimPrefix(data, prefixChallengeSkip), false)
	}

	lang := b.app.Lang(ctx)
	return b.reply(chatID, pick(lang, "⚠️ Невідома дія", "⚠️ Unknown action"), b.menu(lang))
}

func (b *Bot) showToday(ctx context.Context, chatID int64) error {
	snap := b.app.Snapshot(ctx)
	lang := snap.Lang

	var rows [][]MenuButton
	for _, t := range snap.DayPlan.Tasks {
		if t.Completed {
			continue
		}
		rows = append(rows, []MenuButton{{
			Text:         "✅ " + dayplan.TaskText(t, lang).Title,
			CallbackData: prefixTask + t.ID,
		}})
	}
	for _, c := range snap.DayPlan.Challenges {
		if c.Status != models.StatusPending {
			continue
		}
		rows = append(rows, []MenuButton{
			{Text: "🔥 " + c.Title(lang), CallbackData: prefixChallengeDone + c.ID},
			{Text: "⏭", CallbackData: prefixChallengeSkip + c.ID},
		})
	}
	rows = append(rows, []MenuButton{{Text: pick(lang, "🔄 Інші челенджі", "🔄 Other challenges"), CallbackData: callbackRegenerate}})
	if row := b.RitualButtons(lang, snap.Gate); len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, b.MainMenuButtons(lang)...)

	k := createKeyboard(rows)
	return b.reply(chatID, render.Today(snap), &k)
}

func (b *Bot) showHelp(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	text := "📖 /today /done t_1 /regen\n" +
		"/morning /goal /evening /hardday /micro\n" +
		"/note /journal /export /xp\n" +
		"/profile /name /mentor lev|lana|bro|katana /gender /lang ua|en /traits\n" +
		"/remind HH:MM|off /import /reset"
	return b.reply(chatID, text, b.menu(lang))
}

func (b *Bot) completeTask(ctx context.Context, chatID int64, id string) error {
	out, err := b.app.CompleteTask(ctx, id)
	if errors.Is(err, app.ErrNotFound) {
		lang := b.app.Lang(ctx)
		return b.reply(chatID, pick(lang, "Такої задачі сьогодні немає.", "There is no such task today."), b.menu(lang))
	}
	if err != nil {
		return err
	}
	if err := b.reply(chatID, out.Message, nil); err != nil {
		return err
	}
	return b.showToday(ctx, chatID)
}

func (b *Bot) closeChallenge(ctx context.Context, chatID int64, id string, succeeded bool) error {
	var (
		out app.ChallengeOutcome
		err error
	)
	if succeeded {
		out, err = b.app.CompleteChallenge(ctx, id)
	} else {
		out, err = b.app.SkipChallenge(ctx, id)
	}
	if errors.Is(err, app.ErrNotFound) {
		lang := b.app.Lang(ctx)
		return b.reply(chatID, pick(lang, "Цього челенджу сьогодні немає.", "This challenge is not in today's set."), b.menu(lang))
	}
	if err != nil {
		return err
	}
	if err := b.reply(chatID, out.Message, nil); err != nil {
		return err
	}
	return b.showToday(ctx, chatID)
}

func (b *Bot) regenerate(ctx context.Context, chatID int64) error {
	b.app.RegenerateChallenges(ctx)
	return b.showToday(ctx, chatID)
}

func (b *Bot) morning(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	res := b.app.Morning(ctx)
	text := joinLines(res.Line, "🎯 "+res.Goal, res.Hint)
	return b.reply(chatID, text, b.menu(lang))
}

func (b *Bot) goal(ctx context.Context, chatID int64, text string) error {
	lang := b.app.Lang(ctx)
	if text == "" {
		b.setState(stateGoal)
		current := b.app.Goal(ctx)
		prompt := pick(lang, "Напиши ціль на сьогодні.", "Write today's intention.")
		if current != "" {
			prompt = "🎯 " + current + "\n\n" + prompt
		}
		return b.reply(chatID, prompt, b.cancelKeyboard(lang))
	}
	goal := b.app.SetGoal(ctx, text)
	return b.reply(chatID, "🎯 "+goal, b.menu(lang))
}

// evening prompts for the reflection unless answered; an answered empty text closes the day with the auto text
func (b *Bot) evening(ctx context.Context, chatID int64, text string, answered bool) error {
	lang := b.app.Lang(ctx)
	if g := b.app.Gate(ctx); !g.ShowEvening {
		return b.reply(chatID, render.RitualLocked(lang, g, false), b.menu(lang))
	}
	if text == "" && !answered {
		b.setState(stateEvening)
		prompt := b.app.EveningQuestion(ctx) + "\n\n" + pick(lang, "(\"-\" щоб закрити без слів)", "(\"-\" to close without words)")
		return b.reply(chatID, prompt, b.cancelKeyboard(lang))
	}
	res, err := b.app.CloseDay(ctx, text)
	if errors.Is(err, app.ErrLocked) {
		return b.reply(chatID, render.RitualLocked(lang, b.app.Gate(ctx), false), b.menu(lang))
	}
	if err != nil {
		return err
	}
	return b.reply(chatID, res.Message, b.menu(lang))
}

func (b *Bot) hardDay(ctx context.Context, chatID int64, text string, answered bool) error {
	lang := b.app.Lang(ctx)
	if g := b.app.Gate(ctx); !g.ShowHardDay {
		return b.reply(chatID, render.RitualLocked(lang, g, true), b.menu(lang))
	}
	if text == "" && !answered {
		b.setState(stateHardDay)
		prompt := pick(lang, "Що сьогодні було важким? (\"-\" щоб пропустити)", "What was hard today? (\"-\" to skip)")
		return b.reply(chatID, prompt, b.cancelKeyboard(lang))
	}
	res, err := b.app.CloseHardDay(ctx, text)
	if errors.Is(err, app.ErrLocked) {
		return b.reply(chatID, render.RitualLocked(lang, b.app.Gate(ctx), true), b.menu(lang))
	}
	if err != nil {
		return err
	}
	return b.reply(chatID, res.Message, b.menu(lang))
}

func (b *Bot) microStep(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	res, ok := b.app.MicroStep(ctx, models.TaskFocus)
	if !ok {
		return b.reply(chatID, pick(lang, "Усі задачі на сьогодні вже виконано.", "Every task is already done today."), b.menu(lang))
	}
	text := dayplan.TaskText(res.Task, lang)
	msg := fmt.Sprintf("⚡ %s\n%s", text.Title, text.Description)
	if res.Result.DidApply {
		msg += fmt.Sprintf("\n\n+%d XP", dayplan.DefaultTaskXP)
	}
	return b.reply(chatID, msg, b.menu(lang))
}

func (b *Bot) note(ctx context.Context, chatID int64, text string) error {
	lang := b.app.Lang(ctx)
	if text == "" {
		b.setState(stateNote)
		return b.reply(chatID, pick(lang, "Напиши нотатку.", "Write your note."), b.cancelKeyboard(lang))
	}
	title, body, _ := strings.Cut(text, "\n")
	if strings.TrimSpace(body) == "" {
		title, body = "", text
	}
	_, line := b.app.AddNote(ctx, title, body, "")
	return b.reply(chatID, joinLines(pick(lang, "Збережено.", "Saved."), line), b.menu(lang))
}

func (b *Bot) showJournal(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	entries := b.app.Journal(ctx, b.config.JournalPageSize, "")
	return b.reply(chatID, render.Journal(lang, entries), b.menu(lang))
}

func (b *Bot) exportJournal(ctx context.Context, chatID int64) error {
	entries := b.app.Journal(ctx, journal.MaxEntries, "")
	var buf bytes.Buffer
	if err := excel.WriteJournal(entries, &buf); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "journal.xlsx", Bytes: buf.Bytes()})
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send journal: %w", err)
	}
	return nil
}

func (b *Bot) showXP(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	return b.reply(chatID, render.XP(lang, b.app.XP(ctx)), b.menu(lang))
}

func (b *Bot) showProfile(ctx context.Context, chatID int64) error {
	p, lang, traits := b.app.Profile(ctx)
	return b.reply(chatID, render.Profile(lang, p, traits), b.menu(lang))
}

func (b *Bot) updateProfile(ctx context.Context, chatID int64, u app.ProfileUpdate) error {
	err := b.app.UpdateProfile(ctx, u)
	if errors.Is(err, app.ErrInvalid) {
		lang := b.app.Lang(ctx)
		return b.reply(chatID, pick(lang, "Ментори: lev, lana, bro, katana.", "Mentors: lev, lana, bro, katana."), b.menu(lang))
	}
	if err != nil {
		return err
	}
	return b.showProfile(ctx, chatID)
}

func (b *Bot) setTraits(ctx context.Context, chatID int64, args string) error {
	lang := b.app.Lang(ctx)
	strengths, growth, _ := strings.Cut(args, "/")
	r := models.TraitsResult{}
	var err error
	if r.Strengths, err = profile.ParseTraitList(strengths); err == nil {
		r.GrowthZones, err = profile.ParseTraitList(growth)
	}
	if err != nil || len(r.GrowthZones) == 0 {
		return b.reply(chatID, "/traits focus,calm / discipline", b.menu(lang))
	}
	if err := b.app.SetTraits(ctx, r); err != nil {
		return err
	}
	return b.showProfile(ctx, chatID)
}

func (b *Bot) remind(ctx context.Context, chatID int64, args string) error {
	lang := b.app.Lang(ctx)
	switch strings.ToLower(args) {
	case "":
		b.setState(stateReminderTime)
		text := render.Reminder(lang, b.app.ReminderInfo(ctx)) + "\n\n" +
			pick(lang, "Напиши час HH:MM або off.", "Send a time as HH:MM or off.")
		return b.reply(chatID, text, b.cancelKeyboard(lang))
	case "off":
		if err := b.app.CancelReminder(ctx); err != nil {
			return err
		}
	default:
		h, m, err := reminder.ParseClock(args)
		if err != nil {
			return b.reply(chatID, pick(lang, "Формат часу: HH:MM", "Time format: HH:MM"), b.menu(lang))
		}
		if err := b.app.ScheduleReminder(ctx, h, m); err != nil {
			return err
		}
	}
	return b.reply(chatID, render.Reminder(lang, b.app.ReminderInfo(ctx)), b.menu(lang))
}

func (b *Bot) startImport(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	b.setState(stateCatalogFile)
	text := pick(lang,
		"Надішли файл челенджів (.xlsx або .csv): id, trait, complexity, title_ua, title_en, description_ua, description_en.",
		"Send a challenge file (.xlsx or .csv): id, trait, complexity, title_ua, title_en, description_ua, description_en.")
	return b.reply(chatID, text, b.cancelKeyboard(lang))
}

func (b *Bot) importCatalog(ctx context.Context, chatID int64, doc *tgbotapi.Document) error {
	lang := b.app.Lang(ctx)
	data, err := b.download(ctx, doc.FileID)
	if err != nil {
		return err
	}

	cfg := excel.DefaultImportConfig()
	var res *excel.ImportResult
	if strings.EqualFold(filepath.Ext(doc.FileName), ".csv") {
		res, err = excel.ImportChallengesCSV(bytes.NewReader(data), cfg)
	} else {
		res, err = excel.ImportChallengesXLSX(bytes.NewReader(data), cfg)
	}
	if err != nil {
		return b.reply(chatID, "❌ "+err.Error(), b.menu(lang))
	}

	var out strings.Builder
	if err := b.app.ImportCatalogResult(ctx, res); err != nil {
		if !errors.Is(err, app.ErrInvalid) {
			return err
		}
		out.WriteString("❌ " + err.Error() + "\n")
	} else {
		fmt.Fprintf(&out, "✅ %s: %d\n", pick(lang, "Челенджів у каталозі", "Challenges in catalog"), len(res.Definitions))
	}
	if len(res.Errors) > 0 {
		fmt.Fprintf(&out, "\n%s (%d):\n", pick(lang, "Пропущені рядки", "Skipped rows"), len(res.Errors))
		for i, e := range res.Errors {
			if i == 10 {
				out.WriteString("…\n")
				break
			}
			out.WriteString("- " + e + "\n")
		}
	}
	return b.reply(chatID, strings.TrimSpace(out.String()), b.menu(lang))
}

func (b *Bot) confirmReset(ctx context.Context, chatID int64) error {
	lang := b.app.Lang(ctx)
	k := createKeyboard([][]MenuButton{{
		{Text: pick(lang, "🗑 Так, стерти все", "🗑 Yes, wipe everything"), CallbackData: callbackResetConfirm},
		{Text: pick(lang, "❌ Скасувати", "❌ Cancel"), CallbackData: callbackCancelAction},
	}})
	return b.reply(chatID, pick(lang, "Стерти весь прогрес, журнал і профіль?", "Wipe all progress, the journal and the profile?"), &k)
}

func (b *Bot) reset(ctx context.Context, chatID int64) error {
	if err := b.app.Reset(ctx); err != nil {
		return err
	}
	lang := b.app.Lang(ctx)
	return b.reply(chatID, pick(lang, "Усе стерто. Почнімо спочатку.", "Everything is wiped. Let's start over."), b.menu(lang))
}

func joinLines(parts ...string) string {
	var out []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" && s != "🎯" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
