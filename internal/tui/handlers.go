// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always asks before quitting, from any view.
	if msg.String() == "ctrl+c" {
		if m.UI.Mode != viewQuitConfirm {
			(&m).pushView(viewQuitConfirm)
		}
		return m, nil
	}

	switch m.UI.Mode {
	case viewList:
		return m.handleListKey(msg)
	case viewSearch:
		return m.handleSearchKey(msg)
	case viewDetail, viewDetailJSON:
		return m.handleDetailKey(msg)
	case viewHelp:
		return m.handleHelpKey(msg)
	case viewErrorModal:
		return m.handleErrorModalKey(msg)
	case viewQuitConfirm:
		return m.handleQuitConfirmKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		(&m).pushView(viewQuitConfirm)
		return m, nil

	case "/":
		(&m).pushView(viewSearch)
		m.Components.SearchInput.SetValue(m.Filters.Text)
		m.Components.SearchInput.Focus()
		return m, textinput.Blink

	case "enter":
		if _, ok := m.SelectedEntry(); !ok {
			return m, nil
		}
		(&m).pushView(viewDetail)
		(&m).updateDetailContent()
		return m, nil

	case "r":
		return m, (&m).applyFilters()

	case "s":
		m.Filters.Ascending = !m.Filters.Ascending
		return m, (&m).applyFilters()

	case "l":
		m.Filters.Level = nextLevel(m.Filters.Level)
		return m, (&m).applyFilters()

	case "c":
		if m.Filters.Text == "" && m.Filters.Level == "" {
			return m, nil
		}
		m.Filters.Text = ""
		m.Filters.Level = ""
		return m, (&m).applyFilters()

	case "t":
		m.rctx.relative = !m.rctx.relative
		return m, nil

	case "y":
		if e, ok := m.SelectedEntry(); ok {
			(&m).copyToClipboard(e.Raw, "Copied entry")
		}
		return m, nil

	case "?":
		(&m).pushView(viewHelp)
		return m, nil
	}

	// Navigation falls through to the list.
	return m, m.list.Update(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Filters.Text = m.Components.SearchInput.Value()
		m.Components.SearchInput.Blur()
		(&m).popView()
		return m, (&m).applyFilters()
	case "esc":
		m.Components.SearchInput.Blur()
		(&m).popView()
		return m, nil
	}

	var cmd tea.Cmd
	m.Components.SearchInput, cmd = m.Components.SearchInput.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		(&m).popView()
		return m, nil

	case "enter", "J":
		// Toggle between formatted and raw JSON views.
		if m.UI.Mode == viewDetail {
			m.UI.Mode = viewDetailJSON
		} else {
			m.UI.Mode = viewDetail
		}
		(&m).updateDetailContent()
		return m, nil

	case "left", "h":
		cmd := m.list.SelectPrev()
		(&m).updateDetailContent()
		return m, cmd

	case "right", "n":
		cmd := m.list.SelectNext()
		(&m).updateDetailContent()
		return m, cmd

	case "y":
		if e, ok := m.SelectedEntry(); ok {
			(&m).copyToClipboard(e.Raw, "Copied entry")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Components.Detail, cmd = m.Components.Detail.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	(&m).popView()
	return m, nil
}

func (m Model) handleErrorModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.UI.Err = nil
		(&m).popView()
		return m, nil
	case "r":
		m.UI.Err = nil
		(&m).popView()
		return m, (&m).applyFilters()
	}

	var cmd tea.Cmd
	m.Components.ErrorView, cmd = m.Components.ErrorView.Update(msg)
	return m, cmd
}

func (m Model) handleQuitConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.teardown()
		return m, tea.Quit
	}
	(&m).popView()
	return m, nil
}

// teardown releases everything the shell owns before quitting.
func (m Model) teardown() {
	m.list.Close()
	if m.follow != nil {
		m.follow.Close()
	}
}
