// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrollcat/scrollcat/internal/config"
	"github.com/scrollcat/scrollcat/internal/source"
	"github.com/scrollcat/scrollcat/internal/vlist"
)

// fakePager serves a fixed set of entries and records fetches.
type fakePager struct {
	entries []source.Entry
	err     error
	fetches int
}

func (p *fakePager) FetchPage(ctx context.Context, page, size int) (source.Page, error) {
	p.fetches++
	if p.err != nil {
		return source.Page{}, p.err
	}
	start := (page - 1) * size
	if start > len(p.entries) {
		start = len(p.entries)
	}
	end := start + size
	if end > len(p.entries) {
		end = len(p.entries)
	}
	return source.Page{Entries: p.entries[start:end], Total: len(p.entries)}, nil
}

func (p *fakePager) Describe() string { return "fake" }

func makeEntries(n int) []source.Entry {
	entries := make([]source.Entry, n)
	for i := range entries {
		entries[i] = source.Entry{
			ID:        fmt.Sprintf("e-%d", i),
			Timestamp: time.Now(),
			Level:     source.LevelInfo,
			Message:   fmt.Sprintf("entry %d", i),
			Raw:       fmt.Sprintf(`{"n":%d}`, i),
		}
	}
	return entries
}

func testListConfig() config.ListConfig {
	return config.ListConfig{
		ItemHeight:     1,
		Overscan:       2,
		LoadThreshold:  0.8,
		PageSize:       50,
		ScrollDebounce: time.Millisecond,
	}
}

func newTestShell(pager DataSource) (Model, *fakePager) {
	fp, _ := pager.(*fakePager)
	m := New(Options{
		Factory: func(f Filters) DataSource { return pager },
		List:    testListConfig(),
	})
	return m, fp
}

// loadFirstPage runs the initial fetch synchronously and folds the result in.
func loadFirstPage(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.list.Init()
	if cmd == nil {
		t.Fatal("expected initial load command")
	}
	msg := cmd()
	page, ok := msg.(vlist.PageMsg)
	if !ok {
		t.Fatalf("expected PageMsg, got %T", msg)
	}
	next, _ := m.Update(page)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestShell_InitialLoadPopulatesList(t *testing.T) {
	m, fp := newTestShell(&fakePager{entries: makeEntries(120)})
	m = loadFirstPage(t, m)

	if got := m.list.Count(); got != 50 {
		t.Errorf("Count() = %d, want 50", got)
	}
	if fp.fetches != 1 {
		t.Errorf("fetches = %d, want 1", fp.fetches)
	}
	if m.src.Total() != 120 {
		t.Errorf("Total() = %d, want 120", m.src.Total())
	}
	if m.UI.Loading {
		t.Error("Loading should clear after the page lands")
	}
}

func TestShell_LoadErrorShowsModal(t *testing.T) {
	m, _ := newTestShell(&fakePager{err: errors.New("cluster unreachable")})
	m = loadFirstPage(t, m)

	if m.UI.Mode != viewErrorModal {
		t.Errorf("Mode = %v, want viewErrorModal", m.UI.Mode)
	}
	if m.UI.Err == nil {
		t.Error("expected UI.Err to be set")
	}
}

func TestShell_SearchCommitRebuildsSource(t *testing.T) {
	var gotFilters []Filters
	pager := &fakePager{entries: makeEntries(10)}
	m := New(Options{
		Factory: func(f Filters) DataSource {
			gotFilters = append(gotFilters, f)
			return pager
		},
		List: testListConfig(),
	})
	m = loadFirstPage(t, m)

	next, _ := m.Update(key("/"))
	m = next.(Model)
	if m.UI.Mode != viewSearch {
		t.Fatalf("Mode = %v, want viewSearch", m.UI.Mode)
	}

	m.Components.SearchInput.SetValue("timeout")
	next, cmd := m.Update(key("enter"))
	m = next.(Model)

	if m.UI.Mode != viewList {
		t.Errorf("Mode = %v, want viewList", m.UI.Mode)
	}
	if m.Filters.Text != "timeout" {
		t.Errorf("Filters.Text = %q, want %q", m.Filters.Text, "timeout")
	}
	last := gotFilters[len(gotFilters)-1]
	if last.Text != "timeout" {
		t.Errorf("factory saw Text = %q, want %q", last.Text, "timeout")
	}
	if m.list.Count() != 0 {
		t.Errorf("Count() = %d after reset, want 0", m.list.Count())
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}
}

func TestShell_LevelCycle(t *testing.T) {
	m, _ := newTestShell(&fakePager{entries: makeEntries(5)})
	m = loadFirstPage(t, m)

	want := []string{"ERROR", "WARN", "INFO", "DEBUG", ""}
	for _, w := range want {
		next, _ := m.Update(key("l"))
		m = next.(Model)
		if m.Filters.Level != w {
			t.Fatalf("Filters.Level = %q, want %q", m.Filters.Level, w)
		}
	}
}

func TestShell_DetailFollowsSelection(t *testing.T) {
	m, _ := newTestShell(&fakePager{entries: makeEntries(10)})
	m = loadFirstPage(t, m)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if m.UI.Mode != viewDetail {
		t.Fatalf("Mode = %v, want viewDetail", m.UI.Mode)
	}

	e, ok := m.SelectedEntry()
	if !ok || e.ID != "e-0" {
		t.Errorf("SelectedEntry = %v %v, want e-0", e.ID, ok)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	e, _ = m.SelectedEntry()
	if e.ID != "e-1" {
		t.Errorf("after right: SelectedEntry = %v, want e-1", e.ID)
	}

	next, _ = m.Update(key("esc"))
	m = next.(Model)
	if m.UI.Mode != viewList {
		t.Errorf("Mode = %v after esc, want viewList", m.UI.Mode)
	}
}

func TestShell_WindowSizePropagates(t *testing.T) {
	m, _ := newTestShell(&fakePager{entries: makeEntries(10)})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	if m.list.Width() != 94 {
		t.Errorf("list width = %d, want 94", m.list.Width())
	}
	if m.list.Height() != 32 {
		t.Errorf("list height = %d, want 32", m.list.Height())
	}
	if m.rctx.width != 94 {
		t.Errorf("render width = %d, want 94", m.rctx.width)
	}
}

func TestShell_SnapshotReplacesItems(t *testing.T) {
	m, _ := newTestShell(&fakePager{entries: makeEntries(10)})
	m = loadFirstPage(t, m)

	next, _ := m.Update(snapshotMsg{entries: makeEntries(25)})
	m = next.(Model)
	if m.list.Count() != 25 {
		t.Errorf("Count() = %d after snapshot, want 25", m.list.Count())
	}
}

func TestShell_QuitConfirm(t *testing.T) {
	m, _ := newTestShell(&fakePager{entries: makeEntries(3)})
	m = loadFirstPage(t, m)

	next, _ := m.Update(key("q"))
	m = next.(Model)
	if m.UI.Mode != viewQuitConfirm {
		t.Fatalf("Mode = %v, want viewQuitConfirm", m.UI.Mode)
	}

	next, _ = m.Update(key("esc"))
	m = next.(Model)
	if m.UI.Mode != viewList {
		t.Errorf("Mode = %v after esc, want viewList", m.UI.Mode)
	}

	next, _ = m.Update(key("q"))
	m = next.(Model)
	next, cmd := m.Update(key("y"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestNextLevel_WrapsCycle(t *testing.T) {
	if got := nextLevel("DEBUG"); got != "" {
		t.Errorf("nextLevel(DEBUG) = %q, want empty", got)
	}
	if got := nextLevel("bogus"); got != "" {
		t.Errorf("nextLevel(bogus) = %q, want empty", got)
	}
}
