// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// updateDetailContent refreshes the detail viewport for the current selection
// and mode.
func (m *Model) updateDetailContent() {
	e, ok := m.SelectedEntry()
	if !ok {
		m.Components.Detail.SetContent(DetailMutedStyle.Render("No entry selected"))
		return
	}

	if m.UI.Mode == viewDetailJSON {
		m.Components.Detail.SetContent(formatRawEntry(e.Raw))
	} else {
		m.Components.Detail.SetContent(m.formatEntryDetail())
	}
	m.Components.Detail.GotoTop()
}

func (m *Model) formatEntryDetail() string {
	e, _ := m.SelectedEntry()
	var b strings.Builder

	b.WriteString(DetailKeyStyle.Render("Timestamp: "))
	b.WriteString(DetailValueStyle.Render(e.Timestamp.Format(time.RFC3339Nano)))
	b.WriteString("\n\n")

	level := string(e.Level)
	b.WriteString(DetailKeyStyle.Render("Level: "))
	b.WriteString(LevelStyle(level).Render(strings.ToUpper(level)))
	b.WriteString("\n\n")

	b.WriteString(DetailKeyStyle.Render("Service: "))
	b.WriteString(DetailValueStyle.Render(entryService(e)))
	b.WriteString("\n\n")

	if e.Origin != "" {
		b.WriteString(DetailKeyStyle.Render("Origin: "))
		b.WriteString(DetailValueStyle.Render(e.Origin))
		b.WriteString("\n\n")
	}

	b.WriteString(DetailKeyStyle.Render("Message:"))
	b.WriteString("\n")
	b.WriteString(DetailValueStyle.Render(e.Message))
	b.WriteString("\n")

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n")
		b.WriteString(DetailKeyStyle.Render("Fields:"))
		b.WriteString("\n")
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %s\n",
				DetailMutedStyle.Render(k),
				DetailValueStyle.Render(fmt.Sprintf("%v", e.Fields[k]))))
		}
	}

	return b.String()
}

// formatRawEntry pretty-prints the raw document when it is JSON; anything
// else renders as-is.
func formatRawEntry(raw string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return pretty.String()
}

func (m Model) renderDetailView() string {
	header := DetailKeyStyle.Render("Entry Detail")
	if m.UI.Mode == viewDetailJSON {
		header = DetailKeyStyle.Render("Raw Document")
	}
	if m.statusVisible() {
		header += "  " + StatusNoticeStyle.Render(m.UI.StatusMessage)
	}

	pos := ""
	if m.list.Count() > 0 {
		pos = DetailMutedStyle.Render(fmt.Sprintf("%d/%d", m.list.SelectedIndex()+1, m.list.Count()))
	}

	content := m.Components.Detail.View()
	return DetailStyle.Width(m.UI.Width - 4).Height(m.UI.Height - 7).Render(
		header + "  " + pos + "\n\n" + content)
}
