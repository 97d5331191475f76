// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// renderHelpBar renders the context-sensitive key hints at the bottom.
func (m Model) renderHelpBar() string {
	var keys []string

	switch m.UI.Mode {
	case viewList:
		keys = []string{
			HelpKeyStyle.Render("j/k") + HelpDescStyle.Render(" scroll"),
			HelpKeyStyle.Render("/") + HelpDescStyle.Render(" filter"),
			HelpKeyStyle.Render("enter") + HelpDescStyle.Render(" detail"),
			HelpKeyStyle.Render("l") + HelpDescStyle.Render(" level"),
			HelpKeyStyle.Render("s") + HelpDescStyle.Render(" sort"),
			HelpKeyStyle.Render("r") + HelpDescStyle.Render(" reload"),
			HelpKeyStyle.Render("?") + HelpDescStyle.Render(" help"),
			HelpKeyStyle.Render("q") + HelpDescStyle.Render(" quit"),
		}
	case viewSearch:
		keys = []string{
			HelpKeyStyle.Render("enter") + HelpDescStyle.Render(" apply"),
			HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" cancel"),
		}
	case viewDetail:
		keys = []string{
			HelpKeyStyle.Render("←/→") + HelpDescStyle.Render(" prev/next"),
			HelpKeyStyle.Render("↑/↓") + HelpDescStyle.Render(" scroll"),
			HelpKeyStyle.Render("J") + HelpDescStyle.Render(" JSON"),
			HelpKeyStyle.Render("y") + HelpDescStyle.Render(" copy"),
			HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" close"),
		}
	case viewDetailJSON:
		keys = []string{
			HelpKeyStyle.Render("←/→") + HelpDescStyle.Render(" prev/next"),
			HelpKeyStyle.Render("↑/↓") + HelpDescStyle.Render(" scroll"),
			HelpKeyStyle.Render("enter") + HelpDescStyle.Render(" formatted"),
			HelpKeyStyle.Render("y") + HelpDescStyle.Render(" copy"),
			HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" close"),
		}
	case viewHelp:
		keys = []string{
			HelpKeyStyle.Render("any key") + HelpDescStyle.Render(" close"),
		}
	case viewErrorModal:
		keys = []string{
			HelpKeyStyle.Render("r") + HelpDescStyle.Render(" retry"),
			HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" dismiss"),
		}
	case viewQuitConfirm:
		keys = []string{
			HelpKeyStyle.Render("y") + HelpDescStyle.Render(" quit"),
			HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" stay"),
		}
	}

	return HelpStyle.Render(strings.Join(keys, "  "))
}
