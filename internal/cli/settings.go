package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/tvorets/internal/app"
	"github.com/example/tvorets/internal/excel"
	"github.com/example/tvorets/internal/journal"
	"github.com/example/tvorets/internal/profile"
	"github.com/example/tvorets/internal/render"
	"github.com/example/tvorets/internal/reminder"
	"github.com/example/tvorets/pkg/models"
)

func (c *cli) noteCmd() *cobra.Command {
	var title, mood string
	cmd := &cobra.Command{
		Use:   "note <text...>",
		Short: "Write a free note to the journal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := models.JournalMood(strings.ToLower(mood))
			if m != "" && !m.IsValid() {
				return fmt.Errorf("%w: mood %q, use low, neutral or high", app.ErrInvalid, mood)
			}
			entry, line := c.app.AddNote(cmd.Context(), title, strings.Join(args, " "), m)
			return c.emit(cmd, entry, joinBlocks(entry.Title, line))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&mood, "mood", "", "low, neutral or high")
	return cmd
}

func (c *cli) journalCmd() *cobra.Command {
	var (
		limit  int
		source string
	)
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Read and export the journal",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := models.JournalSource(source)
			if src != "" && !src.IsValid() {
				return fmt.Errorf("%w: source %q", app.ErrInvalid, source)
			}
			ctx := cmd.Context()
			entries := c.app.Journal(ctx, limit, src)
			return c.emit(cmd, entries, render.Journal(c.app.Lang(ctx), entries))
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 10, fmt.Sprintf("number of entries, the journal keeps the last %d", journal.MaxEntries))
	listCmd.Flags().StringVar(&source, "source", "", "reflection, bad_day, challenge, system or note")

	exportCmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the whole journal to an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.ExportJournal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, map[string]any{"file": args[0], "entries": n}, fmt.Sprintf("%d entries written to %s", n, args[0]))
		},
	}

	journalCmd.AddCommand(listCmd, exportCmd)
	return journalCmd
}

func (c *cli) profileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change name, mentor, gender and language",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showProfile(cmd)
		},
	}

	var name, mentorName, gender, lang string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u app.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				u.Name = &name
			}
			if flags.Changed("mentor") {
				m := models.Mentor(strings.ToLower(mentorName))
				u.Mentor = &m
			}
			if flags.Changed("gender") {
				g := models.ParseGender(strings.ToLower(gender))
				u.Gender = &g
			}
			if flags.Changed("lang") {
				l := models.Language(strings.ToLower(lang))
				if l != models.LangUA && l != models.LangEN {
					return fmt.Errorf("%w: language %q, use ua or en", app.ErrInvalid, lang)
				}
				u.Language = &l
			}
			if err := c.app.UpdateProfile(cmd.Context(), u); err != nil {
				return err
			}
			return c.showProfile(cmd)
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "your name")
	setCmd.Flags().StringVar(&mentorName, "mentor", "", "lev, lana, bro or katana")
	setCmd.Flags().StringVar(&gender, "gender", "", "male, female or neutral")
	setCmd.Flags().StringVar(&lang, "lang", "", "ua or en")

	profileCmd.AddCommand(showCmd, setCmd)
	return profileCmd
}

func (c *cli) showProfile(cmd *cobra.Command) error {
	p, lang, traits := c.app.Profile(cmd.Context())
	v := struct {
		Profile  models.Profile       `json:"profile" yaml:"profile"`
		Language models.Language      `json:"language" yaml:"language"`
		Traits   *models.TraitsResult `json:"traits" yaml:"traits"`
	}{p, lang, traits}
	return c.emit(cmd, v, render.Profile(lang, p, traits))
}

func (c *cli) traitsCmd() *cobra.Command {
	traitsCmd := &cobra.Command{
		Use:   "traits",
		Short: "Store the traits questionnaire result",
	}

	var strengths, growth string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set strengths and growth zones, the first growth zone drives today's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := profile.ParseTraitList(strengths)
			if err != nil {
				return fmt.Errorf("%w: %v", app.ErrInvalid, err)
			}
			g, err := profile.ParseTraitList(growth)
			if err != nil {
				return fmt.Errorf("%w: %v", app.ErrInvalid, err)
			}
			if len(g) == 0 {
				return fmt.Errorf("%w: at least one growth zone is required", app.ErrInvalid)
			}
			if err := c.app.SetTraits(cmd.Context(), models.TraitsResult{Strengths: s, GrowthZones: g, Version: 1}); err != nil {
				return err
			}
			return c.showProfile(cmd)
		},
	}
	setCmd.Flags().StringVar(&strengths, "strengths", "", "comma separated traits")
	setCmd.Flags().StringVar(&growth, "growth", "", "comma separated traits, main one first")

	traitsCmd.AddCommand(setCmd)
	return traitsCmd
}

func (c *cli) remindCmd() *cobra.Command {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage the daily reminder",
	}

	show := func(cmd *cobra.Command) error {
		ctx := cmd.Context()
		info := c.app.ReminderInfo(ctx)
		return c.emit(cmd, info, render.Reminder(c.app.Lang(ctx), info))
	}

	remindCmd.AddCommand(
		&cobra.Command{
			Use:   "set <HH:MM>",
			Short: "Remind every day at the given local time",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, m, err := reminder.ParseClock(args[0])
				if err != nil {
					return fmt.Errorf("%w: %v", app.ErrInvalid, err)
				}
				if err := c.app.ScheduleReminder(cmd.Context(), h, m); err != nil {
					return err
				}
				return show(cmd)
			},
		},
		&cobra.Command{
			Use:   "off",
			Short: "Turn the reminder off",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.CancelReminder(cmd.Context()); err != nil {
					return err
				}
				return show(cmd)
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the reminder setting",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd)
			},
		},
		&cobra.Command{
			Use:   "preview",
			Short: "Render a reminder without sending it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				t := c.app.PreviewReminder(cmd.Context())
				return c.emit(cmd, t, t.Title+"\n"+t.Body)
			},
		},
	)
	return remindCmd
}

func (c *cli) catalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the challenge catalog",
	}

	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "List the active catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				lang := c.app.Lang(cmd.Context())
				defs := c.app.Catalog().All()
				var b strings.Builder
				for _, d := range defs {
					fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", d.ID, d.Trait, d.Complexity, d.Instantiate().Title(lang))
				}
				fmt.Fprintf(&b, "%d challenges", len(defs))
				return c.emit(cmd, defs, b.String())
			},
		},
		&cobra.Command{
			Use:   "import <file.xlsx|file.csv>",
			Short: "Replace the catalog with the challenges in a file",
			Long: "Replace the catalog with the challenges in a file. Columns: id, trait, complexity, " +
				"title_ua, title_en, description_ua, description_en; the first row is a header.",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := c.app.ImportCatalog(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var b strings.Builder
				fmt.Fprintf(&b, "Processed: %d, created: %d, updated: %d, skipped: %d", res.TotalProcessed, res.Created, res.Updated, res.Skipped)
				for _, e := range res.Errors {
					b.WriteString("\n- " + e)
				}
				return c.emit(cmd, res, b.String())
			},
		},
		&cobra.Command{
			Use:   "export <file.xlsx>",
			Short: "Write the active catalog to an Excel file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				defs := c.app.Catalog().All()
				if err := excel.ExportCatalog(defs, args[0]); err != nil {
					return err
				}
				return c.emit(cmd, map[string]any{"file": args[0], "challenges": len(defs)}, fmt.Sprintf("%d challenges written to %s", len(defs), args[0]))
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Go back to the built-in catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.ResetCatalog(cmd.Context()); err != nil {
					return err
				}
				n := c.app.Catalog().Len()
				return c.emit(cmd, map[string]int{"challenges": n}, fmt.Sprintf("Built-in catalog restored: %d challenges", n))
			},
		},
	)
	return catalogCmd
}

func (c *cli) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all progress, rituals, journal, profile and reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset wipes everything, pass --yes to confirm")
			}
			if err := c.app.Reset(cmd.Context()); err != nil {
				return err
			}
			return c.emit(cmd, map[string]bool{"reset": true}, "Everything is wiped.")
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}
