package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/app"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/reminder"
)

// maxUpload caps catalog files accepted from chat
const maxUpload = 5 << 20

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// api is the part of *tgbotapi.BotAPI the handlers use
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// chat state while waiting for free text or a file
const (
	stateNone         = ""
	stateEvening      = "waiting_for_evening"
	stateHardDay      = "waiting_for_hard_day"
	stateGoal         = "waiting_for_goal"
	stateNote         = "waiting_for_note"
	stateCatalogFile  = "waiting_for_catalog"
	stateReminderTime = "waiting_for_reminder_time"
)

// Bot is the Telegram front-end of one user
type Bot struct {
	api    api
	tg     *tgbotapi.BotAPI
	app    *app.App
	config Config
	logger *zap.Logger
	client *http.Client
	mu     sync.Mutex
	state  string
}

// New connects to Telegram
func New(cfg Config, a *app.App, logger *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}
	botAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	b := newBot(botAPI, cfg, a, logger)
	b.tg = botAPI
	b.logger.Info("authorized on telegram", zap.String("account", botAPI.Self.UserName))
	return b, nil
}

func newBot(c api, cfg Config, a *app.App, logger *zap.Logger) *Bot {
	def := DefaultConfig()
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = def.PollTimeout
	}
	if cfg.JournalPageSize <= 0 {
		cfg.JournalPageSize = def.JournalPageSize
	}
	return &Bot{
		api:    c,
		app:    a,
		config: cfg,
		logger: logging.OrNop(logger).Named("bot"),
		client: http.DefaultClient,
	}
}

// Run handles updates until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	if b.tg == nil {
		return fmt.Errorf("bot is not connected")
	}
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.PollTimeout
	updates := b.tg.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// SendReminder delivers the daily reminder to the owner chat
func (b *Bot) SendReminder(_ context.Context, text reminder.Text) error {
	msg := tgbotapi.NewMessage(b.config.ChatID, "🔔 "+text.Title+"\n\n"+text.Body)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons(b.app.Lang(context.Background())))
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

func (b *Bot) setState(s string) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

func (b *Bot) takeState() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	b.state = stateNone
	return s
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) error {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat", msg.ChatID), zap.Error(err))
		return err
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	return b.sendMessage(msg)
}

// download fetches an uploaded document
func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUpload))
}
