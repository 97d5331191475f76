// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
)

// View renders the TUI
func (m Model) View() string {
	if m.UI.Width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitleHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	switch m.UI.Mode {
	case viewDetail, viewDetailJSON:
		b.WriteString(m.renderDetailView())
	case viewHelp:
		b.WriteString(m.renderHelpOverlay())
	case viewErrorModal:
		b.WriteString(m.renderErrorModal())
	default:
		b.WriteString(m.renderList())
		if m.UI.Mode == viewSearch {
			b.WriteString("\n")
			b.WriteString(m.renderSearchInput())
		}
		if m.UI.Mode == viewQuitConfirm {
			b.WriteString("\n")
			b.WriteString(m.renderQuitConfirm())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return AppStyle.Render(b.String())
}

func (m Model) renderList() string {
	header := columnHeader(m.rctx.width, m.rctx.relative)

	var body string
	switch {
	case m.list.Count() == 0 && m.UI.Loading:
		body = LoadingStyle.Render(m.Components.Spinner.View() + " Loading entries...")
	case m.list.Count() == 0:
		body = DetailMutedStyle.Render("No entries.")
	default:
		body = m.list.View()
	}

	return ListStyle.Width(m.UI.Width - 4).Render(header + "\n" + body)
}

func (m Model) renderSearchInput() string {
	prompt := SearchPromptStyle.Render("Filter: ")
	return SearchStyle.Width(m.UI.Width - 4).Render(prompt + m.Components.SearchInput.View())
}

func (m Model) renderQuitConfirm() string {
	return ModalStyle.Render("Quit scrollcat? " + HelpKeyStyle.Render("y") + HelpDescStyle.Render(" yes  ") +
		HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" no"))
}

func (m Model) renderErrorModal() string {
	title := ErrorStyle.Render("Error")
	body := m.Components.ErrorView.View()
	hint := DetailMutedStyle.Render("r retry • esc dismiss")

	width := m.UI.Width - 8
	if width > 80 {
		width = 80
	}
	return ModalStyle.Width(width).Render(title + "\n\n" + body + "\n\n" + hint)
}

func (m Model) renderHelpOverlay() string {
	groups := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigate", [][2]string{
			{"j/k, ↑/↓", "move selection"},
			{"pgup/pgdn", "page"},
			{"g/G", "top / bottom"},
			{"wheel", "scroll"},
		}},
		{"Filter", [][2]string{
			{"/", "text filter"},
			{"l", "cycle level filter"},
			{"s", "toggle sort order"},
			{"c", "clear filters"},
			{"r", "reload"},
		}},
		{"Inspect", [][2]string{
			{"enter", "entry detail"},
			{"J", "raw JSON (in detail)"},
			{"y", "copy entry"},
			{"t", "absolute/relative time"},
		}},
		{"Misc", [][2]string{
			{"?", "this help"},
			{"q, ctrl+c", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(DetailKeyStyle.Render("Keys"))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString(HeaderRowStyle.Render(g.title))
		b.WriteString("\n")
		for _, k := range g.keys {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				HelpKeyStyle.Render(PadOrTruncate(k[0], 12)),
				HelpDescStyle.Render(k[1])))
		}
	}

	return HelpOverlayStyle.Width(m.UI.Width - 8).Render(b.String())
}
