package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/novel-matrix/internal/ui/components"
)

// --- Reusable Styles ---

var (
	BannerStyle      lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	NormalStyle      lipgloss.Style
	MutedStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	WarningStyle     lipgloss.Style
	AccentStyle      lipgloss.Style
	DirtyBadgeStyle  lipgloss.Style
)

func init() {
	applyTheme("dark")
}

// applyTheme switches the component palette and rebuilds the app styles.
func applyTheme(name string) {
	p := components.SetTheme(name)

	BannerStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	AccentStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	DirtyBadgeStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Warning).
		Bold(true).
		Padding(0, 1)
}

// newHelp builds the help overlay model from the active styles.
func newHelp() help.Model {
	h := help.New()
	h.FullSeparator = "    "
	h.Styles.FullKey = AccentStyle.Bold(true)
	h.Styles.FullDesc = NormalStyle
	h.Styles.FullSeparator = lipgloss.NewStyle()
	h.Styles.ShortKey = AccentStyle.Bold(true)
	h.Styles.ShortDesc = MutedStyle
	h.Styles.ShortSeparator = MutedStyle
	return h
}
