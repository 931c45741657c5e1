package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/tvorets/internal/app"
	"github.com/example/tvorets/internal/dayplan"
	"github.com/example/tvorets/internal/render"
	"github.com/example/tvorets/pkg/models"
)

func (c *cli) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks, challenges and mentor line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := c.app.Snapshot(cmd.Context())
			return c.emit(cmd, snap, render.Today(snap))
		},
	}
}

func (c *cli) taskCmd() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Work with today's tasks",
	}
	taskCmd.AddCommand(&cobra.Command{
		Use:   "done <task-id>",
		Short: "Complete a task (+10 XP once per day)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.CompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, out, out.Message)
		},
	})
	return taskCmd
}

func (c *cli) microCmd() *cobra.Command {
	var taskType string
	cmd := &cobra.Command{
		Use:   "micro",
		Short: "Do one quick step: completes the first open task of the given type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := c.app.Lang(ctx)
			res, ok := c.app.MicroStep(ctx, models.ParseTaskType(taskType))
			if !ok {
				return c.emit(cmd, res, pick(lang, "Усі задачі на сьогодні вже виконано.", "Every task is already done today."))
			}
			text := dayplan.TaskText(res.Task, lang)
			line := fmt.Sprintf("%s\n%s", text.Title, text.Description)
			if res.Result.DidApply {
				line += fmt.Sprintf("\n+%d XP", dayplan.DefaultTaskXP)
			}
			return c.emit(cmd, res, line)
		},
	}
	cmd.Flags().StringVar(&taskType, "type", string(models.TaskFocus), "preferred task type: habit, exercise, reflection, focus, body")
	return cmd
}

func (c *cli) challengeCmd() *cobra.Command {
	challengeCmd := &cobra.Command{
		Use:     "challenge",
		Aliases: []string{"ch"},
		Short:   "Work with today's challenges",
	}
	challengeCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show today's challenges",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				lang := c.app.Lang(ctx)
				sum := c.app.ChallengeSummary(ctx)
				var b strings.Builder
				for _, ch := range sum.Challenges {
					fmt.Fprintf(&b, "%s [%s] %s\n", ch.ID, ch.Status, ch.Title(lang))
					if d := ch.Description(lang); d != "" {
						fmt.Fprintf(&b, "    %s\n", d)
					}
				}
				fmt.Fprintf(&b, "%d/%d", sum.Done, sum.Total)
				return c.emit(cmd, sum, b.String())
			},
		},
		&cobra.Command{
			Use:   "done <challenge-id>",
			Short: "Complete a challenge (+20 XP)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := c.app.CompleteChallenge(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.emit(cmd, out, out.Message)
			},
		},
		&cobra.Command{
			Use:   "skip <challenge-id>",
			Short: "Skip a challenge, the day still counts as active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := c.app.SkipChallenge(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.emit(cmd, out, out.Message)
			},
		},
		&cobra.Command{
			Use:   "regenerate",
			Short: "Draw a new set of challenges for today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				plan := c.app.RegenerateChallenges(ctx)
				lang := c.app.Lang(ctx)
				lines := make([]string, 0, len(plan.Challenges))
				for _, ch := range plan.Challenges {
					lines = append(lines, fmt.Sprintf("%s %s", ch.ID, ch.Title(lang)))
				}
				return c.emit(cmd, plan.Challenges, strings.Join(lines, "\n"))
			},
		},
	)
	return challengeCmd
}

func (c *cli) morningCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "morning",
		Short: "Morning entry: mentor line and today's intention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.app.Morning(cmd.Context())
			return c.emit(cmd, res, joinBlocks(res.Line, res.Goal, res.Hint))
		},
	}
}

func (c *cli) goalCmd() *cobra.Command {
	var clearGoal bool
	cmd := &cobra.Command{
		Use:   "goal [text...]",
		Short: "Show or set today's intention",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			goal := c.app.Goal(ctx)
			if clearGoal || len(args) > 0 {
				goal = c.app.SetGoal(ctx, strings.Join(args, " "))
			}
			return c.emit(cmd, map[string]string{"goal": goal}, goal)
		},
	}
	cmd.Flags().BoolVar(&clearGoal, "clear", false, "clear today's intention")
	return cmd
}

func (c *cli) eveningCmd() *cobra.Command {
	var question bool
	cmd := &cobra.Command{
		Use:   "evening [text...]",
		Short: "Write the evening reflection and close the day",
		Long:  "Write the evening reflection and close the day. Without text a short reflection is written for you.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if question {
				q := c.app.EveningQuestion(ctx)
				return c.emit(cmd, map[string]string{"question": q}, q)
			}
			res, err := c.app.CloseDay(ctx, strings.Join(args, " "))
			if err != nil {
				return c.locked(ctx, err, false)
			}
			return c.emit(cmd, res, res.Message)
		},
	}
	cmd.Flags().BoolVar(&question, "question", false, "only show the reflection question")
	return cmd
}

func (c *cli) hardDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hardday [text...]",
		Short: "Close today as a hard day, the streak is kept but not advanced",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.app.CloseHardDay(ctx, strings.Join(args, " "))
			if err != nil {
				return c.locked(ctx, err, true)
			}
			return c.emit(cmd, res, res.Message)
		},
	}
}

// locked appends the reason a ritual is closed right now
func (c *cli) locked(ctx context.Context, err error, hardDay bool) error {
	if !errors.Is(err, app.ErrLocked) {
		return err
	}
	return fmt.Errorf("%w. %s", err, render.RitualLocked(c.app.Lang(ctx), c.app.Gate(ctx), hardDay))
}

func (c *cli) xpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xp",
		Short: "Show XP, level and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec := c.app.XP(ctx)
			return c.emit(cmd, rec, render.XP(c.app.Lang(ctx), rec))
		},
	}
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
