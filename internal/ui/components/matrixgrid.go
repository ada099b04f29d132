package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const gridLeftOffset = 2

var (
	gridLineStyle       lipgloss.Style
	gridHeaderStyle     lipgloss.Style
	gridActiveRowStyle  lipgloss.Style
	gridActiveCellStyle lipgloss.Style
	gridMarkStyle       lipgloss.Style
)

// GridRow is one visible matrix row.
type GridRow struct {
	Number int
	Title  string
	Cells  []bool
}

// GridSpec describes the visible slice of a boolean matrix.
//
// ActiveRow and ActiveCol index into Rows and Columns; -1 disables the
// highlight. On and Off are the cell markers.
type GridSpec struct {
	Columns    []string
	Rows       []GridRow
	ActiveRow  int
	ActiveCol  int
	LabelWidth int
	CellWidth  int
	On         string
	Off        string
}

// GridColumnsThatFit returns how many cells of cellWidth fit beside the row
// labels in width columns.
func GridColumnsThatFit(width, labelWidth, cellWidth int) int {
	if cellWidth < 1 {
		cellWidth = 1
	}
	avail := width - gridLeftOffset - labelWidth
	n := avail / (cellWidth + 1)
	if n < 1 {
		return 1
	}
	return n
}

// MatrixGrid renders a header of column titles, a rule, then one line per
// row with the row label and a marker per cell, using the rounded border
// glyphs of the box components.
func MatrixGrid(gs GridSpec) string {
	border := lipgloss.RoundedBorder()
	sep := border.Left
	cross := border.Middle
	horiz := border.Top
	if gs.CellWidth < 1 {
		gs.CellWidth = 1
	}
	if gs.LabelWidth < 1 {
		gs.LabelWidth = 1
	}

	lead := strings.Repeat(" ", gridLeftOffset)
	sepStyled := gridLineStyle.Inline(true).Render(sep)

	var out []string

	var header strings.Builder
	header.WriteString(lead)
	header.WriteString(strings.Repeat(" ", gs.LabelWidth))
	for i, title := range gs.Columns {
		header.WriteString(sepStyled)
		cell := centerCell(title, gs.CellWidth)
		if i == gs.ActiveCol {
			header.WriteString(gridActiveRowStyle.Inline(true).Render(cell))
		} else {
			header.WriteString(gridHeaderStyle.Inline(true).Render(cell))
		}
	}
	out = append(out, header.String())

	var rule strings.Builder
	rule.WriteString(lead)
	rule.WriteString(strings.Repeat(horiz, gs.LabelWidth))
	for range gs.Columns {
		rule.WriteString(cross)
		rule.WriteString(strings.Repeat(horiz, gs.CellWidth))
	}
	out = append(out, gridLineStyle.Inline(true).Render(rule.String()))

	numWidth := 0
	for _, r := range gs.Rows {
		if w := len(strconv.Itoa(r.Number)); w > numWidth {
			numWidth = w
		}
	}

	for ri, r := range gs.Rows {
		active := ri == gs.ActiveRow
		var line strings.Builder
		line.WriteString(lead)

		label := r.Title
		if r.Number > 0 {
			label = padLeft(strconv.Itoa(r.Number), numWidth) + " " + r.Title
		}
		label = padRight(ClampTextWidth(label, gs.LabelWidth), gs.LabelWidth)
		if active {
			label = gridActiveRowStyle.Inline(true).Render(label)
		}
		line.WriteString(label)

		for ci := range gs.Columns {
			line.WriteString(sepStyled)
			on := ci < len(r.Cells) && r.Cells[ci]
			mark := gs.Off
			if on {
				mark = gs.On
			}
			cell := centerCell(mark, gs.CellWidth)
			switch {
			case active && ci == gs.ActiveCol:
				cell = gridActiveCellStyle.Inline(true).Render(cell)
			case on:
				cell = gridMarkStyle.Inline(true).Render(cell)
			case active:
				cell = gridActiveRowStyle.Inline(true).Render(cell)
			}
			line.WriteString(cell)
		}
		out = append(out, line.String())
	}

	return strings.Join(out, "\n")
}

func centerCell(text string, width int) string {
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return clamped
	}
	left := pad / 2
	return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
}

func padLeft(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
