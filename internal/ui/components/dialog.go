package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var dialogStyle lipgloss.Style

// ConfirmDialog renders a yes/no confirmation. An empty hint falls back to
// the plain confirm/cancel keys.
func ConfirmDialog(title, message, hint string) string {
	if hint == "" {
		hint = "y: confirm | n: cancel"
	}
	header := boxHeaderStyle.Render(SanitizeOneLine(title))
	body := boxMutedStyle.Render(SanitizeText(message))
	hint = boxMutedStyle.Render("\n" + SanitizeOneLine(hint))
	return dialogStyle.Render(header + "\n\n" + body + "\n" + hint)
}

// InputDialog renders a prompt around an already rendered input field.
func InputDialog(title, field, errText string) string {
	header := boxHeaderStyle.Render(SanitizeOneLine(title))
	body := header + "\n\n" + field
	if errText != "" {
		body += "\n\n" + errorHeaderStyle.Render(SanitizeOneLine(errText))
	}
	hint := boxMutedStyle.Render("\nenter: submit | esc: cancel")
	return dialogStyle.Render(body + "\n" + hint)
}

// ConfirmPreviewDialog renders a confirmation with summary rows and diffs.
func ConfirmPreviewDialog(title string, summary []TableRow, diffs []DiffRow, width int) string {
	inner := BoxContentWidth(width)
	sections := make([]string, 0, 3)
	if len(summary) > 0 {
		sections = append(sections, Table("Summary", summary, inner))
	}
	if len(diffs) > 0 {
		sections = append(sections, DiffTable("Changes", diffs, inner))
	}
	sections = append(sections, boxMutedStyle.Render("y: confirm | n: cancel"))
	return TitledBox(title, strings.Join(sections, "\n\n"), width)
}
