// Package history implements the interactive run history browser.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/gpurun/internal/domain"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeConfirmDelete
)

// Model is the history TUI model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	repo domain.RunRepository

	// State
	runs []*domain.Run
	err  error

	// Components
	keys   KeyMap
	styles Styles

	// Numeric state
	cursor int
	width  int
	height int
	mode   Mode

	// Boolean state
	loading bool
}

// New creates a new history TUI model over the run repository.
func New(repo domain.RunRepository) *Model {
	return &Model{
		repo:    repo,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		mode:    ModeList,
		loading: true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.loadRuns()
}

// loadRuns loads the run history, newest first.
func (m *Model) loadRuns() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.repo.List()
		return MsgRunsLoaded{Runs: runs, Err: err}
	}
}

// deleteRun returns a command that removes a run from the history.
func (m *Model) deleteRun(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.repo.Remove(id)
		return MsgRunDeleted{ID: id, Err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MsgRunsLoaded:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.runs = msg.Runs
		if m.cursor >= len(m.runs) && m.cursor > 0 {
			m.cursor = len(m.runs) - 1
		}
		return m, nil

	case MsgRunDeleted:
		if msg.Err != nil {
			m.err = msg.Err
		}
		m.mode = ModeList
		if m.cursor >= len(m.runs)-1 && m.cursor > 0 {
			m.cursor--
		}
		return m, m.loadRuns()
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode { //nolint:exhaustive // ModeList handled in default
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeConfirmDelete:
		return m.handleDeleteMode(msg)
	default:
		return m.handleListMode(msg)
	}
}

// handleListMode handles keys in the list view.
func (m *Model) handleListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.runs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if len(m.runs) > 0 && m.cursor < len(m.runs) {
			m.mode = ModeDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if len(m.runs) > 0 && m.cursor < len(m.runs) {
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadRuns()
	}

	return m, nil
}

// handleDetailMode handles keys in the detail view.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Enter):
		m.mode = ModeList
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.mode = ModeConfirmDelete
		return m, nil
	}

	return m, nil
}

// handleDeleteMode handles keys in the delete confirmation dialog.
func (m *Model) handleDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.cursor < len(m.runs) {
			return m, m.deleteRun(m.runs[m.cursor].ID)
		}
		m.mode = ModeList
		return m, nil

	case "n", "N", "esc", "q":
		m.mode = ModeList
		return m, nil
	}

	return m, nil
}

// contentWidth returns the available content width.
func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	return w
}

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode { //nolint:exhaustive // ModeList handled in default
	case ModeDetail:
		return m.viewDetail()
	case ModeConfirmDelete:
		return m.viewDeleteDialog()
	default:
		return m.viewList()
	}
}

// viewList renders the run list.
func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Run History"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.styles.Loading.Render("Loading runs..."))
		b.WriteString("\n")
	case len(m.runs) == 0:
		b.WriteString(m.styles.Muted.Render("No recorded runs yet. Launch something first."))
		b.WriteString("\n")
	default:
		for i, run := range m.runs {
			b.WriteString(m.renderRunLine(run, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.viewListHelp())
	return b.String()
}

// renderRunLine renders a single run line.
func (m *Model) renderRunLine(run *domain.Run, selected bool) string {
	cursor := " "
	if selected {
		cursor = "▸"
	}

	id := m.styles.RunID.Render(run.ID)
	exit := m.renderExit(run)
	when := m.styles.Muted.Render(run.Started.Format("2006-01-02 15:04"))
	cmdLine := run.CommandLine()

	line := fmt.Sprintf("%s %s  %s  %s  %s  %s", cursor, id, when, run.Strategy, exit, cmdLine)

	contentWidth := m.contentWidth()
	if contentWidth > 0 {
		line = truncate.StringWithTail(line, uint(contentWidth), "…")
	}

	if selected {
		return m.styles.Selected.Render(line)
	}
	return m.styles.Normal.Render(line)
}

// renderExit renders an outcome-colored exit code.
func (m *Model) renderExit(run *domain.Run) string {
	label := fmt.Sprintf("exit %d", run.ExitCode)
	switch run.Outcome {
	case domain.OutcomeOK:
		return m.styles.ExitOK.Render(label)
	case domain.OutcomeSignaled:
		return m.styles.ExitSignal.Render(label)
	case domain.OutcomeLaunchError:
		return m.styles.ExitFailed.Render("launch error")
	default:
		return m.styles.ExitFailed.Render(label)
	}
}

// viewListHelp renders the list view key hints.
func (m *Model) viewListHelp() string {
	return m.styles.Help.Render("j/k nav  enter details  d delete  r refresh  q quit")
}

// viewDetail renders the detail view for the selected run.
func (m *Model) viewDetail() string {
	if m.cursor >= len(m.runs) {
		return ""
	}
	run := m.runs[m.cursor]

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Run " + run.ID))
	b.WriteString("\n")

	label := m.styles.DetailLabel
	rows := []struct {
		name  string
		value string
	}{
		{"Command", run.CommandLine()},
		{"Directory", run.Dir},
		{"Strategy", string(run.Strategy)},
		{"Started", run.Started.Format(time.RFC3339)},
		{"Elapsed", run.Elapsed().Round(time.Second).String()},
		{"Outcome", fmt.Sprintf("%s (exit %d)", run.Outcome.Display(), run.ExitCode)},
	}
	if run.CaptureLog != "" {
		rows = append(rows, struct {
			name  string
			value string
		}{"Capture", run.CaptureLog})
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render(row.name+":"), row.value))
	}

	b.WriteString(m.styles.Help.Render("esc back  d delete  q quit"))
	return b.String()
}

// viewDeleteDialog renders the delete confirmation dialog.
func (m *Model) viewDeleteDialog() string {
	if m.cursor >= len(m.runs) {
		return ""
	}
	run := m.runs[m.cursor]

	content := strings.Join([]string{
		m.styles.DialogTitle.Render("Delete run?"),
		run.ID,
		m.styles.Muted.Render(run.CommandLine()),
		"",
		"[ y ] Confirm  [ n ] Cancel",
	}, "\n")

	return m.styles.Dialog.Render(content)
}
