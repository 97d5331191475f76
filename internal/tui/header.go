// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTitleHeader renders the top header with title and operational info
func (m Model) renderTitleHeader() string {
	title := "\\ =ↀ_ↀ= 𝓼𝓬𝓻𝓸𝓵𝓵𝓬𝓪𝓽 =ↀ_ↀ= /"

	var infoParts []string
	infoParts = append(infoParts, "Source: "+m.Source().Describe())
	if m.Filters.Ascending {
		infoParts = append(infoParts, "Sort: oldest→")
	} else {
		infoParts = append(infoParts, "Sort: newest→")
	}
	if m.follow != nil && m.follow.Following() {
		infoParts = append(infoParts, "Follow: ON")
	}

	rightInfo := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render("[ " + strings.Join(infoParts, " │ ") + " ]")

	// Fill the gap between title and info with a rule, using rendered widths
	// so ANSI codes don't skew the math.
	availableWidth := m.UI.Width - 2
	titleLen := lipgloss.Width(title)
	rightLen := lipgloss.Width(rightInfo)

	if titleLen+rightLen >= availableWidth {
		lineChars := availableWidth - titleLen
		if lineChars < 0 {
			lineChars = 0
		}
		return TitleHeaderStyle.Width(m.UI.Width).Render(title + strings.Repeat("═", lineChars))
	}

	line := strings.Repeat("═", availableWidth-titleLen-rightLen)
	return TitleHeaderStyle.Width(m.UI.Width).Render(title + line + rightInfo)
}
