package history

import "github.com/charmbracelet/lipgloss"

// Colors used in the history TUI.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Styles holds the styles for the history TUI.
type Styles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Normal      lipgloss.Style
	RunID       lipgloss.Style
	Muted       lipgloss.Style
	ExitOK      lipgloss.Style
	ExitFailed  lipgloss.Style
	ExitSignal  lipgloss.Style
	Loading     lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DetailLabel lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1),
		Normal: lipgloss.NewStyle().
			Padding(0, 1),
		RunID: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ExitOK: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		ExitFailed: lipgloss.NewStyle().
			Foreground(ColorError),
		ExitSignal: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Loading: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError).
			MarginBottom(1),
		DetailLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
	}
}
