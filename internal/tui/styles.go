// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#5A5A5A")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFCC00")
	errorColor     = lipgloss.Color("#FF5F56")
	infoColor      = lipgloss.Color("#61AFEF")
	debugColor     = lipgloss.Color("#6C757D")
	traceColor     = lipgloss.Color("#888888")
	fgColor        = lipgloss.Color("#E0E0E0")
	mutedColor     = lipgloss.Color("#6C757D")
)

// Styles
var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TitleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	StatusValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	StatusNoticeStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	ListStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#4A4A7A")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	HeaderRowStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ServiceStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true)

	MessageStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	SearchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(1)

	DetailKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	DetailMutedStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(errorColor).
			Padding(1, 2)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// LevelStyle returns the style for a log level label. Width is handled by the
// column layout, not the style.
func LevelStyle(level string) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch level {
	case "ERROR", "FATAL", "error", "fatal":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(errorColor).Bold(true)
	case "WARN", "WARNING", "warn", "warning":
		return base.Foreground(lipgloss.Color("#000000")).Background(warningColor)
	case "INFO", "info":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(successColor)
	case "DEBUG", "debug":
		return base.Foreground(fgColor).Background(debugColor)
	case "TRACE", "trace":
		return base.Foreground(fgColor).Background(traceColor)
	default:
		return base.Foreground(fgColor).Background(secondaryColor)
	}
}
