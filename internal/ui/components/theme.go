package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors every component renders with.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	ErrorEdge  lipgloss.Color
	ErrorHead  lipgloss.Color
	ErrorBody  lipgloss.Color
	ActiveBg   lipgloss.Color
	Mark       lipgloss.Color
	Added      lipgloss.Color
	Removed    lipgloss.Color
	KeyCap     lipgloss.Color
}

var darkPalette = Palette{
	Primary:    lipgloss.Color("#7f57b4"),
	Secondary:  lipgloss.Color("#436b77"),
	Accent:     lipgloss.Color("#a7754e"),
	Background: lipgloss.Color("#16161d"),
	Text:       lipgloss.Color("#d7d9da"),
	Muted:      lipgloss.Color("#9ba0bf"),
	Border:     lipgloss.Color("#273540"),
	Success:    lipgloss.Color("#3f866b"),
	Warning:    lipgloss.Color("#c78854"),
	ErrorEdge:  lipgloss.Color("#7a2f3a"),
	ErrorHead:  lipgloss.Color("#e06c75"),
	ErrorBody:  lipgloss.Color("#d6b5b5"),
	ActiveBg:   lipgloss.Color("#1f2530"),
	Mark:       lipgloss.Color("#d1606b"),
	Added:      lipgloss.Color("#ffbf3f"),
	Removed:    lipgloss.Color("#ff4d6d"),
	KeyCap:     lipgloss.Color("#888ba4"),
}

var lightPalette = Palette{
	Primary:    lipgloss.Color("#5b3a8e"),
	Secondary:  lipgloss.Color("#2f5663"),
	Accent:     lipgloss.Color("#8a5a32"),
	Background: lipgloss.Color("#f4f4f6"),
	Text:       lipgloss.Color("#1d1f24"),
	Muted:      lipgloss.Color("#5d6280"),
	Border:     lipgloss.Color("#b7c0c8"),
	Success:    lipgloss.Color("#2c6e55"),
	Warning:    lipgloss.Color("#9c5f2a"),
	ErrorEdge:  lipgloss.Color("#b0505e"),
	ErrorHead:  lipgloss.Color("#a8323f"),
	ErrorBody:  lipgloss.Color("#5a2a30"),
	ActiveBg:   lipgloss.Color("#dde3ee"),
	Mark:       lipgloss.Color("#b3333f"),
	Added:      lipgloss.Color("#946200"),
	Removed:    lipgloss.Color("#b0203c"),
	KeyCap:     lipgloss.Color("#6f7390"),
}

var current = darkPalette

func init() {
	restyle()
}

// SetTheme switches to the named palette ("dark" or "light"). Unknown names
// fall back to dark.
func SetTheme(name string) Palette {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		current = lightPalette
	default:
		current = darkPalette
	}
	restyle()
	return current
}

// Theme returns the active palette.
func Theme() Palette {
	return current
}

func restyle() {
	p := current

	boxBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)
	boxHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	boxMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	boxValueStyle = lipgloss.NewStyle().
		Foreground(p.Text)
	boxLabelStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	diffLabelStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)
	diffAddStyle = lipgloss.NewStyle().Foreground(p.Added)
	diffRemoveStyle = lipgloss.NewStyle().Foreground(p.Removed)
	errorBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.ErrorEdge).
		Padding(1, 2)
	errorHeaderStyle = lipgloss.NewStyle().
		Foreground(p.ErrorHead).
		Bold(true)
	errorBodyStyle = lipgloss.NewStyle().
		Foreground(p.ErrorBody)

	dialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(48)

	hintDescStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	keyCapStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.KeyCap).
		Bold(true).
		Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		MarginRight(1)

	gridLineStyle = lipgloss.NewStyle().
		Foreground(p.Border)
	gridHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	gridActiveRowStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.ActiveBg).
		Bold(true)
	gridActiveCellStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true)
	gridMarkStyle = lipgloss.NewStyle().
		Foreground(p.Mark).
		Bold(true)
}
