package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/internal/config"
	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/evening"
	"github.com/example/tvorets/internal/excel"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/internal/metrics"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/progress"
	"github.com/example/tvorets/internal/reminder"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/internal/snapshot"
	"github.com/example/tvorets/pkg/models"
)

// Options wires an App over an already opened store
type Options struct {
	Store    database.Store
	Clock    dates.Clock
	Catalog  *challenges.Catalog
	Language models.Language
	Rand     *rand.Rand
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// App owns every store and serializes the user actions on them.
// Front-ends (CLI, Telegram) call App methods only.
type App struct {
	mu sync.Mutex

	store   database.Store
	clock   dates.Clock
	lang    models.Language
	logger  *zap.Logger
	metrics *metrics.Metrics

	xp         *progress.XPLedger
	actions    *progress.ActionLedger
	challenges *challenges.Store
	plans      *dayplan.Store
	rituals    *ritual.Store
	profile    *profile.Store
	journal    *journal.Store
	memory     *mentor.MemoryStore
	reminders  *reminder.Store
	phrases    *mentor.Phrases
	snapshots  *snapshot.Composer
	flows      *evening.Flows

	scheduler *reminder.Scheduler
}

// New opens the configured store and resolves the challenge catalog: the
// CHALLENGE_CATALOG file first, then a previously imported one, then the built-in set
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := database.Open(database.Options{
		Type:        cfg.DBType,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		BadgerDir:   cfg.BadgerDir,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	catalog, err := resolveCatalog(ctx, store, cfg.CatalogPath, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	return NewWithOptions(Options{
		Store:    store,
		Clock:    dates.SystemClock{Location: loc},
		Catalog:  catalog,
		Language: cfg.Lang(),
		Logger:   logger,
		Metrics:  metrics.New(),
	}), nil
}

func resolveCatalog(ctx context.Context, store database.Store, path string, logger *zap.Logger) (*challenges.Catalog, error) {
	if path == "" {
		c, err := challenges.LoadCatalog(ctx, store)
		if err != nil {
			logger.Warn("falling back to the built-in catalog", zap.Error(err))
			return challenges.DefaultCatalog(), nil
		}
		return c, nil
	}

	cfg := excel.DefaultImportConfig()
	cfg.FilePath = path
	res, err := excel.ImportChallenges(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to import catalog %s: %w", path, err)
	}
	for _, e := range res.Errors {
		logger.Warn("catalog row skipped", zap.String("file", path), zap.String("error", e))
	}
	c, err := challenges.NewCatalog(res.Definitions)
	if err != nil {
		return nil, fmt.Errorf("catalog %s is unusable: %w", path, err)
	}
	logger.Info("challenge catalog loaded", zap.String("file", path), zap.Int("challenges", c.Len()))
	return c, nil
}

// NewWithOptions wires every component over opts.Store
func NewWithOptions(opts Options) *App {
	logger := logging.OrNop(opts.Logger)
	clock := opts.Clock
	if clock == nil {
		clock = dates.SystemClock{}
	}
	lang := opts.Language
	if lang == "" {
		lang = models.LangEN
	}
	m := opts.Metrics
	s := opts.Store

	a := &App{
		store:   s,
		clock:   clock,
		lang:    lang,
		logger:  logger,
		metrics: m,
	}

	a.xp = progress.NewXPLedger(s, clock, logger, m)
	a.actions = progress.NewActionLedger(s, clock, a.xp, logger, m)
	a.challenges = challenges.NewStore(s, clock, opts.Catalog, logger, m)
	a.plans = dayplan.NewStore(s, clock, a.challenges, a.actions, opts.Rand, logger)
	a.rituals = ritual.NewStore(s, clock, logger)
	a.profile = profile.NewStore(s, logger)
	a.journal = journal.NewStore(s, clock, logger)
	a.memory = mentor.NewMemoryStore(s, clock, logger)
	a.reminders = reminder.NewStore(s, opts.Rand, logger)
	a.phrases = mentor.NewPhrases(opts.Rand)

	a.snapshots = snapshot.NewComposer(snapshot.Deps{
		Clock:   clock,
		Profile: a.profile,
		XP:      a.xp,
		Actions: a.actions,
		Plans:   a.plans,
		Rituals: a.rituals,
		Memory:  a.memory,
		Phrases: a.phrases,
	})
	a.flows = evening.New(evening.Deps{
		Clock:   clock,
		Profile: a.profile,
		XP:      a.xp,
		Actions: a.actions,
		Plans:   a.plans,
		Rituals: a.rituals,
		Journal: a.journal,
		Memory:  a.memory,
		Phrases: a.phrases,
		Metrics: m,
	}, logger)

	return a
}

// Close closes the underlying store
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	return a.store.Close()
}

// Metrics returns the metrics registry holder, nil when disabled
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Logger returns the app logger
func (a *App) Logger() *zap.Logger { return a.logger }

// Locker is held by every App action; background jobs touching stores take it too
func (a *App) Locker() sync.Locker { return &a.mu }

// NewScheduler creates the reminder scheduler bound to this app and keeps it
// in sync with reminder changes
func (a *App) NewScheduler(n reminder.Notifier, opts reminder.SchedulerOptions) *reminder.Scheduler {
	opts.Locker = &a.mu
	if opts.Logger == nil {
		opts.Logger = a.logger
	}
	if opts.Metrics == nil {
		opts.Metrics = a.metrics
	}
	a.scheduler = reminder.NewScheduler(a.reminders, n, opts)
	return a.scheduler
}

// Keys lists every key reset removes. The imported catalog is configuration and stays.
func (a *App) Keys() []string {
	var keys []string
	for _, k := range [][]string{
		a.xp.Keys(),
		a.actions.Keys(),
		a.challenges.Keys(),
		a.plans.Keys(),
		a.rituals.Keys(),
		a.profile.Keys(),
		a.journal.Keys(),
		a.memory.Keys(),
		a.reminders.Keys(),
	} {
		keys = append(keys, k...)
	}
	return keys
}
