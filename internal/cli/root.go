// Package cli provides the command-line interface for gpurun.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/gpurun/internal/app"
	"github.com/runoshun/gpurun/internal/domain"
	"github.com/runoshun/gpurun/internal/usecase"
)

// Command group IDs.
const (
	groupHistory = "history"
	groupSetup   = "setup"
)

// NewRootCommand creates the root command for gpurun. The root command
// itself is the launcher; everything else lives in subcommands.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts struct {
		Strategy  string
		LogPath   string
		Dir       string
		Primus    bool
		Capture   bool
		NoCapture bool
		Exec      bool
		Quiet     bool
		NoHistory bool
	}

	root := &cobra.Command{
		Use:   "gpurun [flags] [--] <command> [args...]",
		Short: "Run a command on the discrete GPU",
		Long: `gpurun launches a command on the discrete GPU by prefixing it with a
GPU-forcing wrapper (pvkrun, primusrun, ...) or by injecting PRIME
render offload variables, then relays the child's exit code unchanged.

Flag parsing stops at the first positional argument, so the target's
own flags pass through untouched.

Examples:
  # Vulkan title on the dGPU (default strategy wraps with pvkrun)
  gpurun vkcube

  # OpenGL title via primusrun
  gpurun --primus glxgears -fullscreen

  # NVIDIA PRIME render offload, no wrapper binary involved
  gpurun -s prime supertuxkart

  # Record the invocation to a debug log
  gpurun --log ~/launches.log vkcube

  # Capture the child's output to a compressed log
  gpurun --capture ./game --level 3

  # Replace the gpurun process entirely (no history, no capture)
  gpurun --exec steam`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// The command about to run reports this itself
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrEmptyCommand
			}

			strategy := opts.Strategy
			if opts.Primus {
				if strategy != "" && strategy != string(domain.StrategyGL) {
					return fmt.Errorf("%w: --primus conflicts with --strategy %s", domain.ErrInvalidConfig, strategy)
				}
				strategy = string(domain.StrategyGL)
			}

			dir := opts.Dir
			if dir == "" {
				dir = c.Paths.WorkDir
			}

			in := usecase.LaunchInput{
				Strategy:  strategy,
				Target:    args,
				Dir:       dir,
				LogPath:   opts.LogPath,
				NoHistory: opts.NoHistory,
				Exec:      opts.Exec,
			}
			if cmd.Flags().Changed("capture") || cmd.Flags().Changed("no-capture") {
				enabled := opts.Capture && !opts.NoCapture
				in.Capture = &enabled
			}
			if cmd.Flags().Changed("quiet") {
				in.Quiet = &opts.Quiet
			}

			out, err := c.LaunchUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if out.ExitCode != 0 {
				// Child failed on its own terms; mirror the code silently.
				return &domain.ExitError{Code: out.ExitCode}
			}
			return nil
		},
	}

	// Stop flag parsing at the first positional so target flags pass
	// through unparsed.
	root.Flags().SetInterspersed(false)

	root.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "GPU-forcing strategy (see 'gpurun strategies')")
	root.Flags().BoolVar(&opts.Primus, "primus", false, "Shorthand for --strategy gl")
	root.Flags().StringVar(&opts.LogPath, "log", "", "Append one launch record line to this file")
	root.Flags().StringVarP(&opts.Dir, "dir", "C", "", "Launch the command from this directory")
	root.Flags().BoolVar(&opts.Capture, "capture", false, "Capture the child's output to a compressed log")
	root.Flags().BoolVar(&opts.NoCapture, "no-capture", false, "Disable output capture even if configured")
	root.Flags().BoolVar(&opts.Exec, "exec", false, "Replace the gpurun process instead of spawning a child")
	root.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the pre-launch banner")
	root.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Skip the history record for this run")
	root.MarkFlagsMutuallyExclusive("capture", "no-capture")
	root.MarkFlagsMutuallyExclusive("capture", "exec")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupHistory, Title: "History:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupHistory

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupHistory

	strategiesCmd := newStrategiesCommand(c)
	strategiesCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		historyCmd,
		tuiCmd,
		strategiesCmd,
		configCmd,
	)

	return root
}

// isConfigError reports whether err is a configuration problem that
// should exit with the reserved config error code.
func isConfigError(err error) bool {
	return errors.Is(err, domain.ErrEmptyCommand) ||
		errors.Is(err, domain.ErrUnknownStrategy) ||
		errors.Is(err, domain.ErrInvalidConfig) ||
		errors.Is(err, domain.ErrCaptureWithExec) ||
		errors.Is(err, domain.ErrConfigExists)
}

// ExitCodeFor maps an error returned by command execution to the
// process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return domain.ExitOK
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var launchErr *domain.LaunchError
	if errors.As(err, &launchErr) {
		return domain.ExitLaunch
	}

	if isConfigError(err) {
		return domain.ExitConfig
	}

	return domain.ExitInternal
}
