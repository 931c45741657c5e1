package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/metrics"
)

const jobTag = "daily-reminder"

// Notifier delivers a rendered reminder
type Notifier interface {
	SendReminder(ctx context.Context, text Text) error
}

// SchedulerOptions configures a Scheduler. A nil Location means time.Local.
// Locker, when set, is held while the job touches storage.
type SchedulerOptions struct {
	Location *time.Location
	Locker   sync.Locker
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// Scheduler runs the daily reminder job
type Scheduler struct {
	cron     *gocron.Scheduler
	store    *Store
	notifier Notifier
	locker   sync.Locker
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewScheduler creates a scheduler; call Start to run it
func NewScheduler(store *Store, notifier Notifier, opts SchedulerOptions) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	locker := opts.Locker
	if locker == nil {
		locker = &sync.Mutex{}
	}
	return &Scheduler{
		cron:     gocron.NewScheduler(loc),
		store:    store,
		notifier: notifier,
		locker:   locker,
		logger:   logging.OrNop(opts.Logger).Named("scheduler"),
		metrics:  opts.Metrics,
	}
}

// Start schedules the stored reminder and starts the scheduler in the background
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		return err
	}
	s.cron.StartAsync()
	return nil
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Sync replaces the job with one matching the stored setting.
// A disabled reminder or one without a time leaves no job.
func (s *Scheduler) Sync(ctx context.Context) error {
	s.locker.Lock()
	info := s.store.Info(ctx)
	s.locker.Unlock()

	// нет задачи - не ошибка
	_ = s.cron.RemoveByTag(jobTag)

	if !info.Enabled || info.Hour == nil || info.Minute == nil {
		s.logger.Debug("no reminder to schedule")
		return nil
	}

	at := fmt.Sprintf("%02d:%02d", *info.Hour, *info.Minute)
	_, err := s.cron.Every(1).Day().At(at).Tag(jobTag).Do(func() {
		if err := s.Fire(context.Background()); err != nil {
			s.logger.Warn("reminder not delivered", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder at %s: %w", at, err)
	}

	s.logger.Info("reminder job scheduled", zap.String("at", at))
	return nil
}

// Scheduled reports whether a reminder job exists
func (s *Scheduler) Scheduled() bool {
	jobs, err := s.cron.FindJobsByTag(jobTag)
	return err == nil && len(jobs) > 0
}

// Fire renders a fresh reminder and sends it. Nothing is sent when the reminder is off.
func (s *Scheduler) Fire(ctx context.Context) error {
	s.locker.Lock()
	enabled := s.store.Info(ctx).Enabled
	var (
		text Text
		ok   bool
	)
	if enabled {
		text, ok = s.store.Next(ctx)
	}
	s.locker.Unlock()

	if !ok {
		return nil
	}

	err := s.notifier.SendReminder(ctx, text)
	s.metrics.ReminderSent(err == nil)
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
