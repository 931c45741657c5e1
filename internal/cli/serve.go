package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/bot"
	"github.com/example/tvorets/internal/reminder"
)

// logNotifier writes reminders to the log when Telegram is not configured
type logNotifier struct {
	logger *zap.Logger
}

func (n logNotifier) SendReminder(_ context.Context, text reminder.Text) error {
	n.logger.Info("reminder", zap.String("title", text.Title), zap.String("body", text.Body))
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder scheduler, the Telegram bot and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	loc, err := c.cfg.Location()
	if err != nil {
		return err
	}

	var (
		notifier reminder.Notifier = logNotifier{logger: c.logger}
		b        *bot.Bot
	)
	if c.cfg.TelegramEnabled() {
		b, err = bot.New(bot.Config{Token: c.cfg.TelegramToken, ChatID: c.cfg.TelegramChatID}, c.app, c.logger)
		if err != nil {
			return err
		}
		notifier = b
	}

	sched := c.app.NewScheduler(notifier, reminder.SchedulerOptions{Location: loc})
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	errCh := make(chan error, 2)
	if c.cfg.MetricsAddr != "" {
		srv := c.metricsServer(c.cfg.MetricsAddr)
		go func() {
			c.logger.Info("metrics listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				c.logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	if b != nil {
		go func() { errCh <- b.Run(ctx) }()
	}

	c.logger.Info("serving", zap.Bool("telegram", b != nil), zap.String("timezone", loc.String()))
	select {
	case <-ctx.Done():
		c.logger.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}

func (c *cli) metricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.app.Metrics().Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
