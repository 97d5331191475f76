// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/scrollcat/scrollcat/internal/source"
)

// renderStatusBar renders current totals, filters, and load state.
func (m Model) renderStatusBar() string {
	var parts []string

	loaded := m.list.Count()
	total := m.src.Total()
	if total == source.TotalUnknown {
		parts = append(parts, StatusKeyStyle.Render("Loaded: ")+StatusValueStyle.Render(fmt.Sprintf("%d", loaded)))
	} else {
		parts = append(parts, StatusKeyStyle.Render("Loaded: ")+StatusValueStyle.Render(fmt.Sprintf("%d/%d", loaded, total)))
	}

	if loaded > 0 {
		parts = append(parts, StatusKeyStyle.Render("Pos: ")+
			StatusValueStyle.Render(fmt.Sprintf("%d", m.list.SelectedIndex()+1)))
	}

	if m.Filters.Text != "" {
		parts = append(parts, StatusKeyStyle.Render("Filter: ")+StatusValueStyle.Render(TruncateWithEllipsis(m.Filters.Text, 20)))
	}
	if m.Filters.Level != "" {
		parts = append(parts, StatusKeyStyle.Render("Level: ")+StatusValueStyle.Render(m.Filters.Level))
	}

	if m.list.Exhausted() {
		parts = append(parts, DetailMutedStyle.Render("end of data"))
	}

	if m.UI.Loading || m.list.Loading() {
		parts = append(parts, LoadingStyle.Render(m.Components.Spinner.View()+" loading..."))
	}

	if m.statusVisible() && m.UI.Mode != viewDetail && m.UI.Mode != viewDetailJSON {
		parts = append(parts, StatusNoticeStyle.Render(m.UI.StatusMessage))
	}

	return StatusBarStyle.Width(m.UI.Width - 2).Render(strings.Join(parts, "  │  "))
}
