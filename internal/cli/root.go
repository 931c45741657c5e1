// Package cli is the command line front-end
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/example/tvorets/internal/app"
	"github.com/example/tvorets/internal/config"
	"github.com/example/tvorets/internal/logging"
)

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// Options lets callers replace how the app is built
type Options struct {
	// Config skips loading .env and the environment
	Config *config.Config
	// NewApp defaults to app.New
	NewApp   func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app.App, error)
	Logger   *zap.Logger
	EnvFiles []string
}

type cli struct {
	opts   Options
	cfg    *config.Config
	logger *zap.Logger
	app    *app.App
	output string
}

func newCLI(opts Options) *cli {
	if opts.NewApp == nil {
		opts.NewApp = app.New
	}
	return &cli{opts: opts}
}

// Execute runs the command line and returns the exit code
func Execute() int {
	c := newCLI(Options{})
	defer c.close()

	if err := c.root().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (c *cli) root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tvorets",
		Short:         "Daily habits, challenges and reflection with a mentor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputText, "output format: text, json or yaml")

	rootCmd.AddCommand(
		c.todayCmd(),
		c.taskCmd(),
		c.microCmd(),
		c.challengeCmd(),
		c.morningCmd(),
		c.goalCmd(),
		c.eveningCmd(),
		c.hardDayCmd(),
		c.noteCmd(),
		c.journalCmd(),
		c.xpCmd(),
		c.profileCmd(),
		c.traitsCmd(),
		c.remindCmd(),
		c.catalogCmd(),
		c.resetCmd(),
		c.serveCmd(),
	)
	return rootCmd
}

func (c *cli) setup(ctx context.Context) error {
	switch c.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}
	if c.app != nil {
		return nil
	}

	cfg := c.opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(c.opts.EnvFiles...); err != nil {
			return err
		}
	}
	c.cfg = cfg

	c.logger = c.opts.Logger
	if c.logger == nil {
		l, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
		if err != nil {
			return err
		}
		c.logger = l
	}

	a, err := c.opts.NewApp(ctx, cfg, c.logger)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			c.logger.Warn("failed to close store", zap.Error(err))
		}
		c.app = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// emit prints v in the selected format, text is used for the text format
func (c *cli) emit(cmd *cobra.Command, v any, text string) error {
	w := cmd.OutOrStdout()
	switch c.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
