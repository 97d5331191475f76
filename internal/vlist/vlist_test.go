// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package vlist

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func renderPlain(item Item, index int, selected bool) string {
	marker := " "
	if selected {
		marker = ">"
	}
	return fmt.Sprintf("%s %s", marker, item.ID())
}

func TestModel_ViewMountsOnlyVisibleRows(t *testing.T) {
	m := New(renderPlain,
		WithItems(makeItems(1000)),
		WithFixedHeight(1),
		WithOverscan(2),
	)
	m.SetSize(40, 10)

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("view has %d lines, want 10", len(lines))
	}
	if !strings.Contains(view, "item-0") || !strings.Contains(view, "item-9") {
		t.Errorf("top-of-list view missing expected rows:\n%s", view)
	}
	if strings.Contains(view, "item-500") {
		t.Errorf("view contains a row far outside the viewport:\n%s", view)
	}

	// Only the intersecting rows plus overscan are mounted.
	r := m.MountedRange()
	if r.Start != 0 || r.End != 11 {
		t.Errorf("mounted range = %+v, want {0 11}", r)
	}
}

func TestModel_ScrollKeepsGeometry(t *testing.T) {
	m := New(renderPlain,
		WithItems(makeItems(200)),
		WithFixedHeight(1),
		WithOverscan(0),
	)
	m.SetSize(40, 10)

	m.ScrollBy(57)
	if got := m.Offset(); got != 57 {
		t.Fatalf("Offset() = %d, want 57", got)
	}
	view := m.View()
	first := strings.Split(view, "\n")[0]
	if !strings.Contains(first, "item-57") {
		t.Errorf("first visible line = %q, want item-57", first)
	}

	// Scrolling past the end clamps.
	m.ScrollBy(100000)
	if got, want := m.Offset(), 190; got != want {
		t.Errorf("Offset() after overscroll = %d, want %d", got, want)
	}
}

func TestModel_EmptyDataset(t *testing.T) {
	m := New(renderPlain, WithFixedHeight(1))
	m.SetSize(40, 5)

	if got := m.TotalHeight(); got != 0 {
		t.Errorf("TotalHeight() = %d, want 0", got)
	}
	if got := m.SelectedItem(); got != nil {
		t.Errorf("SelectedItem() = %v, want nil", got)
	}
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 5 {
		t.Errorf("empty view has %d lines, want 5", len(lines))
	}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			t.Errorf("empty view rendered content: %q", l)
		}
	}
}

func TestModel_AppendExtendsScrollSpace(t *testing.T) {
	fetcher := func(ctx context.Context, page, size int) ([]Item, error) {
		return makeItems(size), nil
	}
	m := New(renderPlain,
		WithFixedHeight(2),
		WithFetcher(fetcher),
		WithPageSize(30),
	)
	m.SetSize(40, 10)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init on an empty list with a fetcher returned no cmd")
	}
	m.ApplyPage(cmd().(PageMsg))

	if got := m.Count(); got != 30 {
		t.Fatalf("Count() = %d after first page, want 30", got)
	}
	if got := m.TotalHeight(); got != 60 {
		t.Errorf("TotalHeight() = %d, want 60", got)
	}

	cmd = m.LoadMore()
	m.ApplyPage(cmd().(PageMsg))
	if got := m.TotalHeight(); got != 120 {
		t.Errorf("TotalHeight() = %d after second page, want 120", got)
	}
}

func TestModel_NearEndTriggersSingleLoad(t *testing.T) {
	fetches := 0
	fetcher := func(ctx context.Context, page, size int) ([]Item, error) {
		fetches++
		return makeItems(size), nil
	}
	m := New(renderPlain,
		WithItems(makeItems(100)),
		WithFixedHeight(1),
		WithFetcher(fetcher),
		WithPageSize(100),
		WithLoadThreshold(0.8),
	)
	m.SetSize(40, 10)

	// Scroll to the threshold: 100 rows * 0.8 = 80.
	m.ScrollBy(70)
	if !m.Loading() {
		t.Fatal("threshold crossing did not start a load")
	}

	// Further scroll events while loading must not start another fetch.
	m.ScrollBy(1)
	m.ScrollBy(1)
	if cmd := m.LoadMore(); cmd != nil {
		t.Error("LoadMore while loading returned a cmd")
	}
}

func TestModel_CloseAbandonsInFlightFetch(t *testing.T) {
	fetcher := func(ctx context.Context, page, size int) ([]Item, error) {
		return makeItems(size), nil
	}
	m := New(renderPlain, WithFetcher(fetcher), WithPageSize(10))
	m.SetSize(40, 5)

	cmd := m.Init()
	msg := cmd().(PageMsg)

	m.Close()
	m.ApplyPage(msg)
	if got := m.Count(); got != 0 {
		t.Errorf("Count() = %d after Close, want 0 (stale page applied)", got)
	}
}

func TestModel_ScrollIdleFlag(t *testing.T) {
	var updates []bool
	m := New(renderPlain,
		WithItems(makeItems(50)),
		WithFixedHeight(1),
		WithOnScroll(func(offset int, scrolling bool) {
			updates = append(updates, scrolling)
		}),
	)
	m.SetSize(40, 10)

	m.ScrollBy(3)
	if !m.IsScrolling() {
		t.Fatal("IsScrolling() = false right after a scroll event")
	}

	// A stale timer (armed before a later scroll) must not clear the flag.
	stale := scrollIdleMsg{seq: m.scrollSeq}
	m.ScrollBy(2)
	m.Update(stale)
	if !m.IsScrolling() {
		t.Fatal("stale idle timer cleared the scrolling flag")
	}

	m.Update(scrollIdleMsg{seq: m.scrollSeq})
	if m.IsScrolling() {
		t.Fatal("current idle timer did not clear the scrolling flag")
	}

	if len(updates) < 3 || updates[len(updates)-1] != false {
		t.Errorf("onScroll updates = %v, want trailing false", updates)
	}
}

func TestModel_SelectionFollowsViewport(t *testing.T) {
	m := New(renderPlain, WithItems(makeItems(100)), WithFixedHeight(1), WithOverscan(0))
	m.SetSize(40, 10)

	for range 12 {
		m.SelectNext()
	}
	if got := m.SelectedIndex(); got != 12 {
		t.Fatalf("SelectedIndex() = %d, want 12", got)
	}
	// Selection moved below the viewport, so the list scrolled.
	if got := m.Offset(); got != 3 {
		t.Errorf("Offset() = %d after selecting below the fold, want 3", got)
	}

	m.GoToTop()
	if m.SelectedIndex() != 0 || m.Offset() != 0 {
		t.Errorf("GoToTop: selected=%d offset=%d", m.SelectedIndex(), m.Offset())
	}

	m.GoToBottom()
	if got := m.Offset(); got != 90 {
		t.Errorf("GoToBottom offset = %d, want 90", got)
	}
	if got := m.SelectedIndex(); got != 99 {
		t.Errorf("GoToBottom selected = %d, want 99", got)
	}
}

func TestModel_RendersDeclaredHeights(t *testing.T) {
	items := []Item{
		sizedItem{id: "a", h: 1},
		sizedItem{id: "b", h: 3},
		sizedItem{id: "c", h: 2},
	}
	m := New(func(item Item, index int, selected bool) string {
		si := item.(sizedItem)
		return strings.TrimRight(strings.Repeat(si.id+"\n", si.h), "\n")
	}, WithItems(items), WithFixedHeight(1))
	m.SetSize(10, 6)

	lines := strings.Split(m.View(), "\n")
	want := []string{"a", "b", "b", "b", "c", "c"}
	for i, w := range want {
		if strings.TrimSpace(lines[i]) != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}

	// All three rows measured by the render above, so the total is exact.
	if got := m.TotalHeight(); got != 6 {
		t.Errorf("TotalHeight() = %d, want 6", got)
	}
}

type sizedItem struct {
	id string
	h  int
}

func (s sizedItem) ID() string  { return s.id }
func (s sizedItem) Height() int { return s.h }
