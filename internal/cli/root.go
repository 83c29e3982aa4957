package cli

import (
	"context"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ayn2op/tview-reorder/internal/config"
)

// runFunc runs the demo with a loaded configuration.
type runFunc func(ctx context.Context, cfg *config.Config) error

// Execute runs the reorderdemo command with ctx. Cancelling ctx closes the
// UI and makes Execute return ctx's error.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the reorderdemo command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(func(ctx context.Context, cfg *config.Config) error {
		return runDemo(ctx, cfg, nil)
	})
}

func newRootCommand(run runFunc) *cobra.Command {
	var (
		verbose     bool
		logFile     string
		commitDelay time.Duration
	)

	root := &cobra.Command{
		Use:   "reorderdemo [config.toml]",
		Short: "Reorder a list by dragging its items",
		Long: `reorderdemo shows a scrollable backlog whose items can be dragged into a new
order with the mouse, or moved with the keyboard. The list, its items and the
drag behaviour are read from an optional TOML file.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if len(args) == 1 {
				var err error
				if cfg, err = config.Load(args[0]); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("commit-delay") {
				cfg.Drag.CommitDelay.Duration = commitDelay
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			w, err := openLog(logFile)
			if err != nil {
				return err
			}
			defer w.Close()

			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(w, level)
			logger.Debug("configuration loaded", "items", len(cfg.Items), "commit_delay", cfg.Drag.CommitDelay.Duration)

			return run(withLogger(cmd.Context(), logger), cfg)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&logFile, "log-file", "", "append logs to this file")
	flags.DurationVar(&commitDelay, "commit-delay", 0, "delay every reorder by this long")

	return root
}
