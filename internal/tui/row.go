// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scrollcat/scrollcat/internal/source"
	"github.com/scrollcat/scrollcat/internal/vlist"
)

// Column widths for the fixed columns; the message takes the rest.
const (
	timeColWidth    = 8
	levelColWidth   = 5
	serviceColWidth = 14
)

// renderEntry returns the row render callback for the list. The callback
// reads layout state through rctx so resizes and display toggles take effect
// without rebuilding the list.
func renderEntry(rctx *renderContext) vlist.RenderFunc {
	return func(item vlist.Item, index int, selected bool) string {
		ei, ok := item.(entryItem)
		if !ok {
			return ""
		}
		return renderEntryRow(ei.entry, rctx.width, rctx.relative, selected)
	}
}

func renderEntryRow(e source.Entry, width int, relative, selected bool) string {
	var ts string
	if relative {
		ts = formatRelativeTime(e.Timestamp)
	} else {
		ts = e.Timestamp.Format("15:04:05")
	}

	level := strings.ToUpper(string(e.Level))
	if level == "" {
		level = "-"
	}

	service := entryService(e)
	msg := strings.ReplaceAll(e.Message, "\n", " ")

	msgWidth := width - timeColWidth - levelColWidth - serviceColWidth - 5
	if msgWidth < 20 {
		msgWidth = 20
	}

	textStyle := func(base lipgloss.Style) lipgloss.Style {
		if selected {
			return SelectedRowStyle
		}
		return base
	}

	parts := []string{
		textStyle(TimestampStyle).Render(PadOrTruncate(ts, timeColWidth)),
		// Level keeps its color even when selected so severity stays visible.
		LevelStyle(string(e.Level)).Render(PadOrTruncate(level, levelColWidth)),
		textStyle(ServiceStyle).Render(PadOrTruncate(service, serviceColWidth)),
		textStyle(MessageStyle).Render(PadOrTruncate(msg, msgWidth)),
	}

	return strings.Join(parts, " ")
}

// columnHeader renders the column labels above the list.
func columnHeader(width int, relative bool) string {
	timeLabel := "TIME"
	if relative {
		timeLabel = "AGE"
	}
	msgWidth := width - timeColWidth - levelColWidth - serviceColWidth - 5
	if msgWidth < 20 {
		msgWidth = 20
	}
	parts := []string{
		PadOrTruncate(timeLabel, timeColWidth),
		PadOrTruncate("LEVEL", levelColWidth),
		PadOrTruncate("SERVICE", serviceColWidth),
		PadOrTruncate("MESSAGE", msgWidth),
	}
	return HeaderRowStyle.Render(strings.Join(parts, " "))
}

// entryService pulls the service name out of an entry's fields.
func entryService(e source.Entry) string {
	if svc, ok := e.Fields["service"].(string); ok && svc != "" {
		return svc
	}
	return "unknown"
}
