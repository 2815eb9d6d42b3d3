package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/gpurun/internal/app"
	"github.com/runoshun/gpurun/internal/domain"
	"github.com/runoshun/gpurun/internal/usecase"
)

// newHistoryCommand creates the history command with its subcommands.
func newHistoryCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
		Long:  `Inspect the run history: every launch records its strategy, command, directory and exit code.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newHistoryListCommand(c))
	cmd.AddCommand(newHistoryShowCommand(c))
	cmd.AddCommand(newHistoryPruneCommand(c))

	return cmd
}

// newHistoryListCommand creates the history list subcommand.
func newHistoryListCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		Long: `Display recorded runs, newest first.

Output format is tab-separated with columns:
  ID, WHEN, STRATEGY, EXIT, COMMAND

Examples:
  # List all recorded runs
  gpurun history list

  # Only the ten most recent
  gpurun history list -n 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListRunsUseCase().Execute(cmd.Context(), usecase.ListRunsInput{
				Limit: limit,
			})
			if err != nil {
				return err
			}

			printRunList(cmd.OutOrStdout(), out.Runs, c.Clock)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many runs (0 = all)")

	return cmd
}

// printRunList prints runs in TSV format.
func printRunList(w io.Writer, runs []*domain.Run, clock domain.Clock) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tWHEN\tSTRATEGY\tEXIT\tCOMMAND")

	// Rows
	for _, run := range runs {
		exitStr := fmt.Sprintf("%d", run.ExitCode)
		if run.Outcome == domain.OutcomeLaunchError {
			exitStr = "launch error"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			formatAge(clock.Now().Sub(run.Started)),
			run.Strategy,
			exitStr,
			run.CommandLine(),
		)
	}
}

// formatAge renders how long ago a run started.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// newHistoryShowCommand creates the history show subcommand.
func newHistoryShowCommand(c *app.Container) *cobra.Command {
	var showLog bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Long: `Display the full record of one run.

With --log, the run's captured output is decompressed and streamed to
stdout instead of the record.

Examples:
  # Show a run's record
  gpurun history show vkcube_20260821-153004

  # Stream its captured output
  gpurun history show vkcube_20260821-153004 --log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowRunUseCase().Execute(cmd.Context(), usecase.ShowRunInput{
				ID:      args[0],
				OpenLog: showLog,
			})
			if err != nil {
				return err
			}

			if showLog {
				defer func() { _ = out.Log.Close() }()
				if _, err := io.Copy(cmd.OutOrStdout(), out.Log); err != nil {
					return fmt.Errorf("stream capture log: %w", err)
				}
				return nil
			}

			printRun(cmd.OutOrStdout(), out.Run)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showLog, "log", false, "Stream the captured output instead of the record")

	return cmd
}

// printRun prints one run's record.
func printRun(w io.Writer, run *domain.Run) {
	_, _ = fmt.Fprintf(w, "ID:        %s\n", run.ID)
	_, _ = fmt.Fprintf(w, "Command:   %s\n", run.CommandLine())
	_, _ = fmt.Fprintf(w, "Directory: %s\n", run.Dir)
	_, _ = fmt.Fprintf(w, "Strategy:  %s\n", run.Strategy)
	_, _ = fmt.Fprintf(w, "Started:   %s\n", run.Started.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Elapsed:   %s\n", run.Elapsed().Round(time.Second))
	_, _ = fmt.Fprintf(w, "Outcome:   %s (exit %d)\n", run.Outcome.Display(), run.ExitCode)
	if run.CaptureLog != "" {
		_, _ = fmt.Fprintf(w, "Capture:   %s\n", run.CaptureLog)
	}
}

// newHistoryPruneCommand creates the history prune subcommand.
func newHistoryPruneCommand(c *app.Container) *cobra.Command {
	var (
		keep   int
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Trim old runs from the history",
		Long: `Prune removes all but the newest runs from the history, together
with the capture logs of the removed runs.

The number of runs to keep defaults to the [history] limit setting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.PruneRunsUseCase()
			w := cmd.OutOrStdout()

			// Preview first so the confirmation shows what goes away.
			preview, err := uc.Execute(cmd.Context(), usecase.PruneRunsInput{
				Keep:   keep,
				DryRun: true,
			})
			if err != nil {
				return err
			}

			if len(preview.Pruned) == 0 {
				_, _ = fmt.Fprintln(w, "Nothing to prune.")
				return nil
			}

			_, _ = fmt.Fprintf(w, "Runs to be removed (%d):\n", len(preview.Pruned))
			for _, run := range preview.Pruned {
				_, _ = fmt.Fprintf(w, "  - %s\n", run.ID)
			}

			if dryRun {
				_, _ = fmt.Fprintln(w, "Dry run: no changes made.")
				return nil
			}

			if !yes {
				_, _ = fmt.Fprint(w, "Remove these runs? [y/N] ")
				var response string
				if _, scanErr := fmt.Fscanln(cmd.InOrStdin(), &response); scanErr != nil {
					_, _ = fmt.Fprintln(w, "Aborted.")
					return nil
				}
				if strings.ToLower(response) != "y" {
					_, _ = fmt.Fprintln(w, "Aborted.")
					return nil
				}
			}

			out, err := uc.Execute(cmd.Context(), usecase.PruneRunsInput{Keep: keep})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(w, "Removed %d runs and %d capture logs.\n",
				len(out.Pruned), len(out.RemovedLogs))
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", -1, "Number of newest runs to keep (default: configured limit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Display only, no deletion")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
