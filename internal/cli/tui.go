package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/gpurun/internal/app"
	"github.com/runoshun/gpurun/internal/tui/history"
)

// launchHistoryTUIFunc is a function variable for launching the history
// TUI, allowing it to be mocked in tests.
var launchHistoryTUIFunc = launchHistoryTUI

// newTUICommand creates the tui command for browsing run history.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse run history interactively",
		Long:  `Open a full-screen browser over the run history.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchHistoryTUIFunc(c)
		},
	}
	return cmd
}

// launchHistoryTUI runs the history browser.
func launchHistoryTUI(c *app.Container) error {
	model := history.New(c.Runs)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
