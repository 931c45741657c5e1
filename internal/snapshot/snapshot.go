package snapshot

import (
	"context"

	"github.com/example/tvorets/internal/dates"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/mentor"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/progress"
	"github.com/example/tvorets/internal/ritual"
	"github.com/example/tvorets/pkg/models"
)

// Snapshot is everything a screen needs to render today
type Snapshot struct {
	Date string          `json:"date" yaml:"date"`
	Lang models.Language `json:"lang" yaml:"lang"`

	Mentor models.Mentor `json:"mentor" yaml:"mentor"`
	Gender models.Gender `json:"gender" yaml:"gender"`
	Name   string        `json:"name" yaml:"name"`

	MainGrowth models.Trait         `json:"mainGrowth" yaml:"mainGrowth"`
	Traits     *models.TraitsResult `json:"traits,omitempty" yaml:"traits,omitempty"`

	XP      models.XPState    `json:"xp" yaml:"xp"`
	Actions models.DayActions `json:"actions" yaml:"actions"`
	DayPlan models.DayPlan    `json:"dayPlan" yaml:"dayPlan"`

	Goal        string      `json:"goal" yaml:"goal"`
	MorningDone bool        `json:"morningDone" yaml:"morningDone"`
	EveningDone bool        `json:"eveningDone" yaml:"eveningDone"`
	Gate        ritual.Gate `json:"gate" yaml:"gate"`

	MentorMode           models.MentorMode `json:"mentorMode" yaml:"mentorMode"`
	MentorLine           string            `json:"mentorLine" yaml:"mentorLine"`
	ChallengesHeaderLine string            `json:"challengesHeaderLine" yaml:"challengesHeaderLine"`
	MorningLine          string            `json:"morningLine" yaml:"morningLine"`
	Frame                mentor.DayFrame   `json:"frame" yaml:"frame"`
	MemoryLine           string            `json:"memoryLine,omitempty" yaml:"memoryLine,omitempty"`
	SummaryLine          string            `json:"summaryLine" yaml:"summaryLine"`
	GoalPulseLine        string            `json:"goalPulseLine,omitempty" yaml:"goalPulseLine,omitempty"`
}

// Voice is the mentor voice the snapshot was rendered with
func (s Snapshot) Voice() mentor.Voice {
	return mentor.Voice{
		Mentor: s.Mentor,
		Lang:   s.Lang,
		Growth: s.MainGrowth,
		Mode:   s.MentorMode,
		Gender: s.Gender,
		Name:   s.Name,
	}
}

// Deps are the stores the composer reads from
type Deps struct {
	Clock   dates.Clock
	Profile *profile.Store
	XP      *progress.XPLedger
	Actions *progress.ActionLedger
	Plans   *dayplan.Store
	Rituals *ritual.Store
	Memory  *mentor.MemoryStore
	Phrases *mentor.Phrases
}

// Composer assembles snapshots. It only reads, apart from creating
// today's plan on first access.
type Composer struct {
	d Deps
}

// NewComposer creates a composer
func NewComposer(d Deps) *Composer {
	if d.Phrases == nil {
		d.Phrases = mentor.NewPhrases(nil)
	}
	return &Composer{d: d}
}

// Compose builds today's snapshot in lang
func (c *Composer) Compose(ctx context.Context, lang models.Language) Snapshot {
	d := c.d

	p := d.Profile.Load(ctx)
	growth := d.Profile.MainGrowth(ctx)
	xp := d.XP.LoadState(ctx)
	plan := d.Plans.GetOrCreate(ctx, growth)
	actions := d.Actions.GetDayActions(ctx)

	mode := mentor.ComputeMode(xp.Streak, xp.LastSuccessDate, dates.Today(d.Clock), dates.Yesterday(d.Clock))
	v := mentor.VoiceFor(p, lang, growth, mode)

	snap := Snapshot{
		Date:       dates.Today(d.Clock),
		Lang:       lang,
		Mentor:     v.Mentor,
		Gender:     p.Gender,
		Name:       v.Name,
		MainGrowth: growth,
		Traits:     d.Profile.Traits(ctx),
		XP:         xp,
		Actions:    actions,
		DayPlan:    plan,
		MentorMode: mode,

		MentorLine:           d.Phrases.DailyLine(v),
		ChallengesHeaderLine: d.Phrases.ChallengesHeaderLine(v),
		MorningLine:          d.Phrases.MorningEntryLine(v),
		Frame:                d.Phrases.DayFrame(v),
	}

	if d.Rituals != nil {
		snap.Goal = d.Rituals.TodayGoal(ctx)
		snap.MorningDone = d.Rituals.IsMorningDoneToday(ctx)
		snap.EveningDone = d.Rituals.IsEveningDoneToday(ctx)
	}
	snap.Gate = ritual.ComputeGate(d.Clock.Now(), snap.MorningDone, snap.EveningDone, actions.HasAnyAction)

	if d.Memory != nil {
		if m, ok := d.Memory.Last(ctx); ok {
			snap.MemoryLine = d.Phrases.MemoryLine(v, m)
		}
	}

	snap.SummaryLine = SummaryLine(lang, actions, plan, xp)
	snap.GoalPulseLine = GoalPulseLine(lang, snap.Goal, actions.HasAnyAction)
	return snap
}
