package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
█▀▄▀█ ▄▀█ ▀█▀ █▀█ █ ▀▄▀
█ ▀ █ █▀█  █  █▀▄ █ █ █`

const bannerSubtitle = "Scene Relationship Matrix • Terminal Editor"

// RenderBanner returns the styled banner with its subtitle and underline.
func RenderBanner() string {
	lines := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")

	artWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > artWidth {
			artWidth = w
		}
	}
	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := artWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	center := lipgloss.NewStyle().Width(blockWidth).Align(lipgloss.Center)
	rendered := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		rendered = append(rendered, center.Render(BannerStyle.Render(line)))
	}
	rendered = append(rendered, "")
	rendered = append(rendered, center.Render(MutedStyle.Render(bannerSubtitle)))
	rendered = append(rendered, center.Render(MutedStyle.Render(strings.Repeat("─", subtitleWidth))))

	return "\n" + strings.Join(rendered, "\n") + "\n"
}
