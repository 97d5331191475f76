// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrollcat/scrollcat/internal/vlist"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.list.Init(),
		m.tickCmd(),
		m.Components.Spinner.Tick,
		func() tea.Msg { return tea.EnableMouseCellMotion() },
	}
	if m.follow != nil {
		cmds = append(cmds, waitForGrowth(m.follow))
	}
	if m.profilePath != "" {
		cmds = append(cmds, watchProfiles(m.profilePath))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.UI.Mode == viewList {
			return m, m.list.Update(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case vlist.PageMsg:
		return m.handlePage(msg)

	case tickMsg:
		return m, m.tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Components.Spinner, cmd = m.Components.Spinner.Update(msg)
		return m, cmd

	case sourceGrewMsg:
		return m, tea.Batch(waitForGrowth(m.follow), m.snapshotCmd())

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case profileChangedMsg:
		(&m).setStatus("profile config changed on disk, restart to apply")
		return m, watchProfiles(msg.Path)

	case profileWatchErrMsg:
		m.shipper.Warnf("profile watch stopped: %v", msg.Err)
		return m, nil

	case errMsg:
		m.UI.Err = msg
		m.UI.Loading = false
		(&m).showErrorModal()
		return m, nil
	}

	var cmds []tea.Cmd

	// Update components based on mode
	switch m.UI.Mode {
	case viewSearch:
		var cmd tea.Cmd
		m.Components.SearchInput, cmd = m.Components.SearchInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewDetail, viewDetailJSON:
		var cmd tea.Cmd
		m.Components.Detail, cmd = m.Components.Detail.Update(msg)
		cmds = append(cmds, cmd)
	case viewErrorModal:
		var cmd tea.Cmd
		m.Components.ErrorView, cmd = m.Components.ErrorView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.UI.Width = msg.Width
	m.UI.Height = msg.Height

	// Chrome above and below the list: header, status bar, column header,
	// list border, help bar.
	listWidth := msg.Width - 6
	listHeight := msg.Height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(listWidth, listHeight)
	m.rctx.width = listWidth

	m.Components.Detail.Width = msg.Width - 6
	m.Components.Detail.Height = msg.Height - 10
	m.Components.SearchInput.Width = msg.Width - 16

	if m.UI.Mode == viewDetail || m.UI.Mode == viewDetailJSON {
		(&m).updateDetailContent()
	}
	return m, nil
}

func (m Model) handlePage(msg vlist.PageMsg) (tea.Model, tea.Cmd) {
	m.list.Update(msg)
	m.UI.Loading = m.list.Loading()
	m.UI.LastRefresh = time.Now()

	if err := m.list.LoadErr(); err != nil {
		if isContextError(err) {
			return m, nil
		}
		m.shipper.Errorf("page load failed: %v", err)
		m.UI.Err = err
		(&m).showErrorModal()
	}
	return m, nil
}

func (m Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !isContextError(msg.err) {
			m.shipper.Warnf("refresh failed: %v", msg.err)
		}
		return m, nil
	}

	// Keep the view pinned to the newest entries when the user was already
	// at the bottom, matching tail behavior.
	atBottom := m.list.Offset()+m.list.Height() >= m.list.TotalHeight()
	m.list.SetItems(entryItems(msg.entries))
	if atBottom {
		return m, m.list.GoToBottom()
	}
	return m, nil
}

// showErrorModal fills the error viewport and raises the modal.
func (m *Model) showErrorModal() {
	if m.UI.Mode == viewErrorModal {
		return
	}
	m.pushView(viewErrorModal)
	modalWidth := m.UI.Width - 8
	if modalWidth > 80 {
		modalWidth = 80
	}
	m.Components.ErrorView.Width = modalWidth - 8
	m.Components.ErrorView.Height = minInt(m.UI.Height-12, 20)
	if m.UI.Err != nil {
		m.Components.ErrorView.SetContent(m.UI.Err.Error())
	}
	m.Components.ErrorView.GotoTop()
}

// applyFilters rebuilds the pager for the current filters and restarts the
// list from page 1.
func (m *Model) applyFilters() tea.Cmd {
	m.src.Swap(m.factory(m.Filters))
	m.list.Reset()
	m.UI.Loading = true
	return tea.Batch(m.list.LoadMore(), m.Components.Spinner.Tick)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
