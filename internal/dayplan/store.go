package dayplan

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/example/tvorets/internal/challenges"
	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/logging"
	"github.com/example/tvorets/internal/progress"
	"github.com/example/tvorets/pkg/models"
)

// Storage keys owned by the day plan store
const (
	KeyPlan     = "@ya_tvorets_day_plan_v2"
	KeyPlanDate = "@ya_tvorets_day_plan_date_v2"
)

// Default XP for completions
const (
	DefaultTaskXP      = 10
	DefaultChallengeXP = 20
)

// Event id prefixes registered with the action ledger
const (
	EventTask          = "task"
	EventChallenge     = "challenge"
	EventChallengeSkip = "challenge_skip"
)

// EventID builds "{kind}:{date}:{id}"
func EventID(kind, date, id string) string {
	return fmt.Sprintf("%s:%s:%s", kind, date, id)
}

// Store owns today's plan: five tasks and the three daily challenges
type Store struct {
	store      database.Store
	clock      dates.Clock
	challenges *challenges.Store
	actions    *progress.ActionLedger
	rng        *rand.Rand
	logger     *zap.Logger
}

// NewStore creates a plan store. rng picks task variants; nil uses the global source.
func NewStore(store database.Store, clock dates.Clock, ch *challenges.Store, actions *progress.ActionLedger, rng *rand.Rand, logger *zap.Logger) *Store {
	return &Store{
		store:      store,
		clock:      clock,
		challenges: ch,
		actions:    actions,
		rng:        rng,
		logger:     logging.OrNop(logger).Named("dayplan"),
	}
}

// GetOrCreate returns today's plan, repairing or rebuilding the stored one as needed
func (s *Store) GetOrCreate(ctx context.Context, mainGrowth models.Trait) models.DayPlan {
	today := dates.Today(s.clock)

	if plan, ok := s.readToday(ctx, today); ok {
		switch {
		case plan.MainGrowth != mainGrowth:
			plan.MainGrowth = mainGrowth
		case len(plan.Challenges) != challenges.DailyCount:
			plan.Challenges = s.challenges.GetOrGenerate(ctx, mainGrowth)
		case len(plan.Tasks) == 0:
			plan.Tasks = BuildTasks(mainGrowth, s.rng)
		default:
			return plan
		}
		s.write(ctx, plan)
		return plan
	}

	plan := models.DayPlan{
		Date:       today,
		MainGrowth: mainGrowth,
		Tasks:      BuildTasks(mainGrowth, s.rng),
		Challenges: s.challenges.GetOrGenerate(ctx, mainGrowth),
	}
	s.write(ctx, plan)
	s.logger.Debug("day plan created", zap.String("date", today), zap.Stringer("growth", mainGrowth))
	return plan
}

// SetTaskCompleted flips one task's completed flag and returns the updated tasks
func (s *Store) SetTaskCompleted(ctx context.Context, taskID string, completed bool, mainGrowth models.Trait) []models.TodayTask {
	plan := s.GetOrCreate(ctx, mainGrowth)
	for i := range plan.Tasks {
		if plan.Tasks[i].ID == taskID {
			plan.Tasks[i].Completed = completed
		}
	}
	s.write(ctx, plan)
	return plan.Tasks
}

// CompleteTask marks the task done and registers task:{date}:{id}.
// Negative xpDelta counts as zero.
func (s *Store) CompleteTask(ctx context.Context, taskID string, mainGrowth models.Trait, xpDelta int) models.TaskResult {
	xpDelta = max(0, xpDelta)
	date := dates.Today(s.clock)

	tasks := s.SetTaskCompleted(ctx, taskID, true, mainGrowth)
	reg := s.actions.RegisterActionEvent(ctx, EventID(EventTask, date, taskID), xpDelta)

	return models.TaskResult{Tasks: tasks, XP: reg.XP, DidApply: reg.DidApply}
}

// RegenerateChallenges swaps today's challenges for a fresh selection, tasks are kept
func (s *Store) RegenerateChallenges(ctx context.Context, mainGrowth models.Trait) models.DayPlan {
	plan := s.GetOrCreate(ctx, mainGrowth)
	plan.MainGrowth = mainGrowth
	plan.Challenges = s.challenges.Regenerate(ctx, mainGrowth)
	s.write(ctx, plan)
	return plan
}

// SetChallengeStatus updates a challenge in today's plan. A skip registers
// challenge_skip:{date}:{id} with zero XP. It returns false when the
// challenge set could not be updated.
func (s *Store) SetChallengeStatus(ctx context.Context, id string, status models.ChallengeStatus, mainGrowth models.Trait) (models.DayPlan, bool) {
	plan := s.GetOrCreate(ctx, mainGrowth)

	updated, ok := s.challenges.SetStatus(ctx, id, status)
	if !ok {
		return models.DayPlan{}, false
	}
	plan.Challenges = updated
	s.write(ctx, plan)

	if status == models.StatusSkipped {
		s.actions.RegisterActionEvent(ctx, EventID(EventChallengeSkip, dates.Today(s.clock), id), 0)
	}
	return plan, true
}

// CompleteChallenge marks the challenge completed and registers challenge:{date}:{id}
func (s *Store) CompleteChallenge(ctx context.Context, id string, mainGrowth models.Trait, xpDelta int) (models.ChallengeResult, bool) {
	xpDelta = max(0, xpDelta)

	plan, ok := s.SetChallengeStatus(ctx, id, models.StatusCompleted, mainGrowth)
	if !ok {
		return models.ChallengeResult{}, false
	}

	reg := s.actions.RegisterActionEvent(ctx, EventID(EventChallenge, dates.Today(s.clock), id), xpDelta)
	return models.ChallengeResult{DayPlan: plan, XP: reg.XP, DidApply: reg.DidApply}, true
}

// Keys lists every key the store owns
func (s *Store) Keys() []string {
	return []string{KeyPlan, KeyPlanDate}
}

func (s *Store) readToday(ctx context.Context, today string) (models.DayPlan, bool) {
	date, ok, err := s.store.Get(ctx, KeyPlanDate)
	if err != nil {
		s.fail("read date", KeyPlanDate, err)
		return models.DayPlan{}, false
	}
	if !ok || date != today {
		return models.DayPlan{}, false
	}

	raw, ok, err := s.store.Get(ctx, KeyPlan)
	if err != nil {
		s.fail("read plan", KeyPlan, err)
		return models.DayPlan{}, false
	}
	if !ok || raw == "" {
		return models.DayPlan{}, false
	}

	plan, ok := DecodePlan([]byte(raw))
	if !ok || plan.Date != today {
		return models.DayPlan{}, false
	}
	return plan, true
}

func (s *Store) write(ctx context.Context, plan models.DayPlan) {
	if err := database.SetJSON(ctx, s.store, KeyPlan, plan); err != nil {
		s.fail("write plan", KeyPlan, err)
		return
	}
	if err := s.store.Set(ctx, KeyPlanDate, plan.Date); err != nil {
		s.fail("write date", KeyPlanDate, err)
	}
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Warn("day plan storage failure", zap.String("op", op), zap.String("key", key), zap.Error(err))
}

// DecodePlan parses a stored plan leniently. It fails only when the date is
// missing or tasks/challenges are not arrays; bad entries inside are dropped.
func DecodePlan(data []byte) (models.DayPlan, bool) {
	var w struct {
		Date       any             `json:"date"`
		MainGrowth models.Trait    `json:"mainGrowth"`
		Tasks      json.RawMessage `json:"tasks"`
		Challenges json.RawMessage `json:"challenges"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return models.DayPlan{}, false
	}

	date, _ := w.Date.(string)
	if len(date) > len(dates.Layout) {
		date = date[:len(dates.Layout)]
	}
	if date == "" {
		return models.DayPlan{}, false
	}

	var rawTasks, rawChallenges []json.RawMessage
	if json.Unmarshal(w.Tasks, &rawTasks) != nil || rawTasks == nil {
		return models.DayPlan{}, false
	}
	if json.Unmarshal(w.Challenges, &rawChallenges) != nil || rawChallenges == nil {
		return models.DayPlan{}, false
	}

	tasks := make([]models.TodayTask, 0, len(rawTasks))
	for _, r := range rawTasks {
		if t, ok := decodeTask(r); ok {
			tasks = append(tasks, t)
		}
	}

	return models.DayPlan{
		Date:       date,
		MainGrowth: w.MainGrowth,
		Tasks:      tasks,
		Challenges: challenges.SanitizeList(rawChallenges),
	}, true
}

func decodeTask(raw json.RawMessage) (models.TodayTask, bool) {
	var w struct {
		ID              any             `json:"id"`
		Type            models.TaskType `json:"type"`
		Completed       any             `json:"completed"`
		IsGrowthFocused any             `json:"isGrowthFocused"`
		Variant         any             `json:"variant"`
	}
	w.Type = models.TaskHabit
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.TodayTask{}, false
	}

	id, _ := w.ID.(string)
	id = strings.TrimSpace(id)
	if id == "" {
		return models.TodayTask{}, false
	}

	variant := 0
	if f, ok := w.Variant.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		variant = ClampVariant(int(math.Max(0, math.Min(f, VariantsPerType-1))))
	}
	completed, _ := w.Completed.(bool)
	growth, _ := w.IsGrowthFocused.(bool)

	return models.TodayTask{
		ID:              id,
		Type:            w.Type,
		Completed:       completed,
		IsGrowthFocused: growth,
		Variant:         variant,
	}, true
}
