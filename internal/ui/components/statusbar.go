package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle lipgloss.Style
	keyCapStyle   lipgloss.Style
	segmentStyle  lipgloss.Style
)

// StatusBar renders the bottom hint bar, wrapping segments to width.
func StatusBar(hints []string, width int) string {
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		if h == "" {
			continue
		}
		segments = append(segments, segmentStyle.Render(h))
	}
	bar := lipgloss.NewStyle().PaddingLeft(2)
	if width <= 0 {
		return bar.Render(lipgloss.JoinHorizontal(lipgloss.Top, segments...))
	}

	rows := wrapSegments(segments, width)
	if len(rows) == 0 {
		return ""
	}
	maxRowWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row); w > maxRowWidth {
			maxRowWidth = w
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.NewStyle().Width(maxRowWidth).Align(lipgloss.Center).Render(row))
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return bar.Width(width).Align(lipgloss.Center).Render(block)
}

// Hint formats a single keybind hint like "Toggle space".
func Hint(keyText, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(keyText)
}

// BindingHint renders a key.Binding's help text as a hint. Disabled bindings
// render empty.
func BindingHint(b key.Binding) string {
	if !b.Enabled() {
		return ""
	}
	h := b.Help()
	return Hint(h.Key, h.Desc)
}

func wrapSegments(segments []string, width int) []string {
	rows := make([]string, 0, 2)
	var current []string
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && currentWidth+segWidth > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = []string{seg}
			currentWidth = segWidth
			continue
		}
		current = append(current, seg)
		currentWidth += segWidth
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return rows
}
