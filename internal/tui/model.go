// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package tui is the scrollcat application shell: a bubbletea program that
// feeds paged log entries into a virtualized list and renders the chrome
// around it (status bar, search input, detail view, help, error modal).
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/scrollcat/scrollcat/internal/config"
	"github.com/scrollcat/scrollcat/internal/diag"
	"github.com/scrollcat/scrollcat/internal/source"
	"github.com/scrollcat/scrollcat/internal/vlist"
)

const statusMessageTTL = 3 * time.Second

const tickInterval = 2 * time.Second

// Options configures the shell.
type Options struct {
	// Factory builds a pager for the current filters. Required.
	Factory SourceFactory

	// Follow is set when the entries come from tailed local files; the
	// shell waits on its update channel and refreshes when files grow.
	Follow *source.FileSource

	// Diag receives engine warnings and load errors. Nil means no-op.
	Diag *diag.Shipper

	// ProfilePath, when non-empty, is watched for on-disk changes.
	ProfilePath string

	List        config.ListConfig
	LoadTimeout time.Duration
}

// renderContext carries layout state into the row render callback. It is
// written from the update loop and read during View, never concurrently.
type renderContext struct {
	width    int
	relative bool
}

// Model is the application model.
type Model struct {
	factory SourceFactory
	src     *sourceState
	list    *vlist.Model
	follow  *source.FileSource
	shipper *diag.Shipper
	rctx    *renderContext

	profilePath string

	Filters    Filters
	UI         UIState
	Components UIComponents
}

// New builds the shell around the pager the factory yields for empty filters.
func New(opts Options) Model {
	shipper := opts.Diag
	if shipper == nil {
		shipper = diag.Nop()
	}

	var filters Filters
	src := newSourceState(opts.Factory(filters), opts.LoadTimeout)
	rctx := &renderContext{width: 80}

	listOpts := []vlist.Option{
		vlist.WithFetcher(src.fetch),
		vlist.WithFixedHeight(opts.List.ItemHeight),
		vlist.WithOverscan(opts.List.Overscan),
		vlist.WithLoadThreshold(opts.List.LoadThreshold),
		vlist.WithPageSize(opts.List.PageSize),
		vlist.WithScrollIdle(opts.List.ScrollDebounce),
		vlist.WithDiagnostics(shipper.Warnf),
		vlist.WithFocused(true),
	}
	list := vlist.New(renderEntry(rctx), listOpts...)

	ti := textinput.New()
	ti.Placeholder = "Filter entries..."
	ti.CharLimit = 256
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	return Model{
		factory:     opts.Factory,
		src:         src,
		list:        list,
		follow:      opts.Follow,
		shipper:     shipper,
		rctx:        rctx,
		profilePath: opts.ProfilePath,
		Filters:     filters,
		UI: UIState{
			Mode:    viewList,
			Width:   80,
			Height:  24,
			Loading: true,
		},
		Components: UIComponents{
			SearchInput: ti,
			Detail:      viewport.New(80, 20),
			ErrorView:   viewport.New(80, 20),
			Spinner:     sp,
		},
	}
}

// Source returns the current pager, for the status bar and tests.
func (m Model) Source() DataSource { return m.src.Pager() }

// SelectedEntry returns the entry under the selection cursor.
func (m Model) SelectedEntry() (source.Entry, bool) {
	item := m.list.SelectedItem()
	if item == nil {
		return source.Entry{}, false
	}
	ei, ok := item.(entryItem)
	if !ok {
		return source.Entry{}, false
	}
	return ei.entry, true
}

// pushView saves the current mode on the stack and switches views.
func (m *Model) pushView(mode viewMode) {
	m.UI.ViewStack = append(m.UI.ViewStack, m.UI.Mode)
	m.UI.Mode = mode
}

// popView returns to the previous view. It reports false when the stack is
// empty and the mode falls back to the list.
func (m *Model) popView() bool {
	if len(m.UI.ViewStack) == 0 {
		m.UI.Mode = viewList
		return false
	}
	m.UI.Mode = m.UI.ViewStack[len(m.UI.ViewStack)-1]
	m.UI.ViewStack = m.UI.ViewStack[:len(m.UI.ViewStack)-1]
	return true
}

// setStatus shows a transient notice in the header.
func (m *Model) setStatus(msg string) {
	m.UI.StatusMessage = msg
	m.UI.StatusTime = time.Now()
}

// statusVisible reports whether the transient notice should still render.
func (m Model) statusVisible() bool {
	return m.UI.StatusMessage != "" && time.Since(m.UI.StatusTime) < statusMessageTTL
}
