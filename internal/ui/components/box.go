package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	boxBorder        lipgloss.Style
	boxHeaderStyle   lipgloss.Style
	boxMutedStyle    lipgloss.Style
	boxValueStyle    lipgloss.Style
	boxLabelStyle    lipgloss.Style
	diffLabelStyle   lipgloss.Style
	diffAddStyle     lipgloss.Style
	diffRemoveStyle  lipgloss.Style
	errorBorder      lipgloss.Style
	errorHeaderStyle lipgloss.Style
	errorBodyStyle   lipgloss.Style
)

func boxWidth(width int) int {
	// ~70% of the terminal, between 40 and 96 columns
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 96 {
		w = 96
	}
	return w
}

func safeBoxWidth(width int) int {
	if width <= 0 {
		return boxWidth(width)
	}
	w := boxWidth(width)
	if w > width {
		return width
	}
	return w
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	// Border adds 2, padding adds 4.
	inner := w - 6
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth truncates text to the given display width, counting wide
// runes as two cells.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if ansi.StringWidth(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(cleaned, width-1, "") + "…"
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(SanitizeText(message))
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	boxed := boxBorder.Width(safeBoxWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" [ %s ] ", SanitizeOneLine(title))
	if lipgloss.Width(titleText) > middleLen {
		titleText = ansi.Truncate(titleText, middleLen, "")
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	if left < 0 {
		left = 0
	}
	right := middleLen - titleWidth - left
	if right < 0 {
		right = 0
	}

	edge := lipgloss.NewStyle().Foreground(current.Border)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(titleText) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label string
	Value string
}

// Table renders aligned label/value rows inside a titled box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(SanitizeOneLine(r.Label)); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 24 {
		labelWidth = 24
	}
	contentWidth := BoxContentWidth(width)
	valueWidth := contentWidth - labelWidth - 2
	if contentWidth <= 0 || valueWidth < 4 {
		valueWidth = 0
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := boxLabelStyle.Render(padRight(ClampTextWidth(r.Label, labelWidth), labelWidth))
		lines = append(lines, label+"  "+boxValueStyle.Render(ClampTextWidth(r.Value, valueWidth)))
	}
	return TitledBox(title, strings.Join(lines, "\n"), width)
}

// DiffRow is one labelled change: values removed and values added.
type DiffRow struct {
	Label   string
	Removed []string
	Added   []string
}

// DiffTable renders - (removed) and + (added) lines under each label.
func DiffTable(title string, rows []DiffRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range rows {
		b.WriteString(diffLabelStyle.Render(SanitizeOneLine(r.Label)))
		for _, v := range r.Removed {
			b.WriteString("\n")
			b.WriteString(diffRemoveStyle.Render("  - " + SanitizeOneLine(v)))
		}
		for _, v := range r.Added {
			b.WriteString("\n")
			b.WriteString(diffAddStyle.Render("  + " + SanitizeOneLine(v)))
		}
		if i < len(rows)-1 {
			b.WriteString("\n\n")
		}
	}
	return TitledBox(title, b.String(), width)
}
