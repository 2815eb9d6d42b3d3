package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/gpurun/internal/app"
	"github.com/runoshun/gpurun/internal/usecase"
)

// newStrategiesCommand creates the strategies command.
func newStrategiesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List GPU-forcing strategies",
		Long: `Display the effective strategy set: the built-in strategies plus
anything defined or overridden in [strategies.<name>] config sections.

The default strategy is marked with '*'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListStrategiesUseCase().Execute(cmd.Context(), usecase.ListStrategiesInput{})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			_, _ = fmt.Fprintln(tw, "NAME\tWRAPPER\tENV\tDESCRIPTION")
			for _, s := range out.Strategies {
				name := s.Name
				if s.IsDefault {
					name += " *"
				}

				wrapper := "-"
				if s.Def.HasWrapper() {
					wrapper = s.Def.Wrapper
				}

				env := "-"
				if len(s.Def.Env) > 0 {
					keys := make([]string, 0, len(s.Def.Env))
					for k := range s.Def.Env {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					env = strings.Join(keys, ",")
				}

				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, wrapper, env, s.Def.Description)
			}

			return nil
		},
	}

	return cmd
}
