// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package vlist

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Item is an entry in the list. The ID is the stable render key; it must not
// change while the item stays at the same position.
type Item interface {
	ID() string
}

// HeightProvider is implemented by items that declare their own height.
// When items carry their own heights, the list runs in declared-height mode.
type HeightProvider interface {
	Height() int
}

// RenderFunc renders one item. It must be pure from the list's perspective:
// the list caches nothing about it beyond the row geometry.
type RenderFunc func(item Item, index int, selected bool) string

// ScrollFunc observes scroll updates: the current offset and whether the user
// is actively scrolling (the flag clears after the scroll-idle window).
type ScrollFunc func(offset int, scrolling bool)

// DefaultScrollIdle is how long after the last scroll event the scrolling
// flag is cleared.
const DefaultScrollIdle = 150 * time.Millisecond

const wheelScrollRows = 3

// scrollIdleMsg flips the scrolling flag off once the latest timer expires.
type scrollIdleMsg struct{ seq int }

// Model is a virtualized list component. It renders only the rows whose span
// intersects the viewport (plus overscan), positions them by cumulative
// offset, and asks its Loader for the next page when the scroll position
// nears the end of the loaded set.
//
// All state (items, size cache, loader) is owned by this instance and dropped
// on Close; two lists never share a size model.
type Model struct {
	items  []Item
	sizes  *SizeModel
	ctrl   *Controller
	loader *Loader

	render   RenderFunc
	onScroll ScrollFunc
	warnf    WarnFunc
	ctx      context.Context

	width, height int
	offset        int
	selected      int
	focused       bool

	isScrolling bool
	scrollSeq   int
	scrollIdle  time.Duration

	closed bool

	constructionState
}

// Option configures a list Model.
type Option func(*Model)

// WithItems sets the initial items.
func WithItems(items []Item) Option {
	return func(m *Model) { m.items = items }
}

// WithFixedHeight sets the fixed/default row height.
func WithFixedHeight(h int) Option {
	return func(m *Model) { m.itemHeight = h }
}

// WithDynamicHeights enables dynamic sizing via fn. Takes precedence over
// declared per-item heights.
func WithDynamicHeights(fn SizeFunc) Option {
	return func(m *Model) { m.sizeFn = fn }
}

// WithOverscan sets how many extra items are mounted beyond each visible edge.
func WithOverscan(n int) Option {
	return func(m *Model) { m.overscan = n }
}

// WithLoadThreshold sets the scroll fraction in (0, 1] at which the next page
// is requested.
func WithLoadThreshold(f float64) Option {
	return func(m *Model) { m.threshold = f }
}

// WithPageSize sets the fetch page size.
func WithPageSize(n int) Option {
	return func(m *Model) { m.pageSize = n }
}

// WithFetcher enables incremental loading through fetch.
func WithFetcher(fetch Fetcher) Option {
	return func(m *Model) { m.fetch = fetch }
}

// WithOnScroll registers a scroll observer.
func WithOnScroll(fn ScrollFunc) Option {
	return func(m *Model) { m.onScroll = fn }
}

// WithScrollIdle overrides the scroll-idle window.
func WithScrollIdle(d time.Duration) Option {
	return func(m *Model) { m.scrollIdle = d }
}

// WithDiagnostics sets the sink for engine warnings.
func WithDiagnostics(fn WarnFunc) Option {
	return func(m *Model) { m.warnf = fn }
}

// WithContext sets the context handed to page fetches.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithFocused sets the initial focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) { m.focused = focused }
}

// construction-only fields, consumed by New
type constructionState struct {
	itemHeight int
	sizeFn     SizeFunc
	overscan   int
	threshold  float64
	pageSize   int
	fetch      Fetcher
}

// New creates a virtualized list. The render function is required.
func New(render RenderFunc, opts ...Option) *Model {
	m := &Model{
		render:     render,
		ctx:        context.Background(),
		scrollIdle: DefaultScrollIdle,
		focused:    true,
		constructionState: constructionState{
			overscan:  DefaultOverscan,
			threshold: DefaultLoadThreshold,
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	sizeOpts := []SizeOption{}
	if m.warnf != nil {
		sizeOpts = append(sizeOpts, WithWarnf(m.warnf))
	}
	if m.sizeFn != nil {
		sizeOpts = append(sizeOpts, WithSizeFunc(m.sizeFn))
	} else {
		// Declared-height mode when items carry their own heights.
		sizeOpts = append(sizeOpts, WithDeclaredHeights(func(index int) (int, bool) {
			if index < 0 || index >= len(m.items) {
				return 0, false
			}
			if hp, ok := m.items[index].(HeightProvider); ok {
				return hp.Height(), true
			}
			return 0, false
		}))
	}
	m.sizes = NewSizeModel(len(m.items), m.itemHeight, sizeOpts...)
	m.ctrl = NewController(m.sizes, m.overscan, m.threshold)
	m.loader = NewLoader(m.fetch, m.pageSize)
	return m
}

// Init requests the first page when the list starts empty and has a fetcher.
func (m *Model) Init() tea.Cmd {
	if len(m.items) == 0 {
		return m.loader.LoadMore(m.ctx)
	}
	return nil
}

// Update handles navigation keys, mouse wheel, page results, and the
// scroll-idle timer.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg.String())

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.ScrollBy(-wheelScrollRows)
		case tea.MouseButtonWheelDown:
			return m.ScrollBy(wheelScrollRows)
		}
		return nil

	case PageMsg:
		m.ApplyPage(msg)
		return nil

	case scrollIdleMsg:
		if msg.seq == m.scrollSeq && m.isScrolling {
			m.isScrolling = false
			if m.onScroll != nil {
				m.onScroll(m.offset, false)
			}
		}
		return nil
	}
	return nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		return m.SelectPrev()
	case "down", "j":
		return m.SelectNext()
	case "pgup":
		return m.ScrollBy(-m.height)
	case "pgdown":
		return m.ScrollBy(m.height)
	case "home", "g":
		return m.GoToTop()
	case "end", "G":
		return m.GoToBottom()
	}
	return nil
}

// SetSize sets the viewport dimensions and clamps the scroll offset.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if max := m.ctrl.MaxOffset(m.height); m.offset > max {
		m.offset = max
	}
}

// Width returns the viewport width.
func (m *Model) Width() int { return m.width }

// Height returns the viewport height.
func (m *Model) Height() int { return m.height }

// Focus gives the list keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the list has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Count returns the number of loaded items.
func (m *Model) Count() int { return len(m.items) }

// Items returns the loaded items.
func (m *Model) Items() []Item { return m.items }

// Offset returns the current scroll offset in rows.
func (m *Model) Offset() int { return m.offset }

// IsScrolling reports whether a scroll event happened within the idle window.
func (m *Model) IsScrolling() bool { return m.isScrolling }

// TotalHeight returns the combined height of all loaded rows.
func (m *Model) TotalHeight() int { return m.sizes.TotalHeight() }

// SelectedIndex returns the selected index, or -1 when the list is empty.
func (m *Model) SelectedIndex() int {
	if len(m.items) == 0 {
		return -1
	}
	return m.selected
}

// SelectedItem returns the selected item, or nil when the list is empty.
func (m *Model) SelectedItem() Item {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.selected]
}

// Loading reports whether a page fetch is in flight.
func (m *Model) Loading() bool { return m.loader.Loading() }

// Exhausted reports whether all pages have been loaded.
func (m *Model) Exhausted() bool { return m.loader.Exhausted() }

// LoadErr returns the most recent page fetch error, if any.
func (m *Model) LoadErr() error { return m.loader.Err() }

// MountedRange returns the most recently mounted index range.
func (m *Model) MountedRange() Range { return m.ctrl.LastRange() }

// LoadMore explicitly requests the next page: used for eager prefetch and for
// retrying after a failed fetch. No-op while loading or exhausted.
func (m *Model) LoadMore() tea.Cmd {
	return m.loader.LoadMore(m.ctx)
}

// ApplyPage folds a page fetch result into the list.
func (m *Model) ApplyPage(msg PageMsg) {
	items, ok := m.loader.Apply(msg)
	if !ok {
		return
	}
	if len(items) > 0 {
		m.items = append(m.items, items...)
		m.sizes.SetCount(len(m.items))
	}
}

// SetItems replaces the loaded items, keeping loader state. Cached sizes are
// dropped because item identity may have changed.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.sizes.SetCount(len(items))
	m.sizes.InvalidateAll()
	if m.selected > len(items)-1 {
		m.selected = len(items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if max := m.ctrl.MaxOffset(m.height); m.offset > max {
		m.offset = max
	}
}

// InvalidateItem drops the cached size of one index after its item changed
// identity in place.
func (m *Model) InvalidateItem(index int) {
	m.sizes.Invalidate(index)
}

// Reset clears items and returns the loader to page 1. In-flight fetch
// results are abandoned.
func (m *Model) Reset() {
	m.loader.Reset()
	m.items = nil
	m.sizes.SetCount(0)
	m.offset = 0
	m.selected = 0
	m.isScrolling = false
	m.scrollSeq++
}

// Close tears the list down: pending timers and in-flight fetches can no
// longer mutate state, and the size cache is dropped.
func (m *Model) Close() {
	m.loader.Close()
	m.sizes.InvalidateAll()
	m.scrollSeq++
	m.isScrolling = false
	m.closed = true
}

// ScrollBy scrolls the viewport by delta rows, dragging the selection along
// so it stays visible.
func (m *Model) ScrollBy(delta int) tea.Cmd {
	cmd := m.scrollTo(m.offset + delta)
	m.dragSelectionIntoView()
	return cmd
}

// SelectPrev moves the selection one item up, scrolling as needed.
func (m *Model) SelectPrev() tea.Cmd {
	if m.selected <= 0 {
		return nil
	}
	m.selected--
	return m.scrollSelectionIntoView()
}

// SelectNext moves the selection one item down, scrolling as needed.
func (m *Model) SelectNext() tea.Cmd {
	if m.selected >= len(m.items)-1 {
		return nil
	}
	m.selected++
	return m.scrollSelectionIntoView()
}

// GoToTop selects the first item and scrolls to the top.
func (m *Model) GoToTop() tea.Cmd {
	m.selected = 0
	return m.scrollTo(0)
}

// GoToBottom selects the last item and scrolls to the end of the loaded set.
func (m *Model) GoToBottom() tea.Cmd {
	if len(m.items) > 0 {
		m.selected = len(m.items) - 1
	}
	return m.scrollTo(m.ctrl.MaxOffset(m.height))
}

// scrollTo clamps and applies a new scroll offset, arms the scroll-idle
// timer, and raises the near-end load when the threshold is crossed.
func (m *Model) scrollTo(offset int) tea.Cmd {
	if max := m.ctrl.MaxOffset(m.height); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	m.offset = offset
	m.isScrolling = true
	m.scrollSeq++
	if m.onScroll != nil {
		m.onScroll(m.offset, true)
	}

	cmds := []tea.Cmd{m.idleCmd()}
	if m.ctrl.NearEnd(m.offset, m.height, m.loader.Loading(), m.loader.Exhausted()) {
		if cmd := m.loader.LoadMore(m.ctx); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) idleCmd() tea.Cmd {
	seq := m.scrollSeq
	return tea.Tick(m.scrollIdle, func(time.Time) tea.Msg {
		return scrollIdleMsg{seq: seq}
	})
}

// scrollSelectionIntoView scrolls the minimal amount to keep the selected
// item fully visible.
func (m *Model) scrollSelectionIntoView() tea.Cmd {
	if len(m.items) == 0 || m.height <= 0 {
		return nil
	}
	top := m.sizes.OffsetOf(m.selected)
	bottom := m.sizes.OffsetOf(m.selected + 1)
	if top < m.offset {
		return m.scrollTo(top)
	}
	if bottom > m.offset+m.height {
		return m.scrollTo(bottom - m.height)
	}
	return nil
}

// dragSelectionIntoView moves the selection to the nearest visible item after
// a viewport scroll, without scrolling further.
func (m *Model) dragSelectionIntoView() {
	if len(m.items) == 0 || m.height <= 0 {
		return
	}
	first := m.sizes.IndexAt(m.offset)
	last := m.sizes.IndexAt(m.offset + m.height - 1)
	if m.selected < first {
		m.selected = first
	} else if m.selected > last {
		m.selected = last
	}
}

// View renders the mounted rows. Any failure during range computation keeps
// the previously mounted range rather than crashing the render path.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if len(m.items) == 0 {
		return strings.Repeat("\n", m.height-1)
	}

	r := m.visibleRange()
	if r.Empty() {
		return strings.Repeat("\n", m.height-1)
	}

	windowTop := m.ctrl.WindowOffset(r)
	var lines []string
	for i := r.Start; i <= r.End; i++ {
		lines = append(lines, m.renderRow(i)...)
	}

	// Cut the window down to the viewport: line positions are relative to
	// windowTop, so they stay small however long the list grows.
	skip := m.offset - windowTop
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "")
	}
	return strings.Join(lines, "\n")
}

// visibleRange recomputes the mounted range, degrading to the previous range
// if the computation fails.
func (m *Model) visibleRange() (r Range) {
	r = m.ctrl.LastRange()
	defer func() {
		if rec := recover(); rec != nil {
			m.warn("range computation failed: %v", rec)
			r = m.ctrl.LastRange()
		}
	}()
	r = m.ctrl.VisibleRange(m.offset, m.height)
	return r
}

// renderRow renders one item normalized to its tracked height, so rendered
// geometry always matches the offset table.
func (m *Model) renderRow(i int) []string {
	h := m.sizes.HeightOf(i)
	rendered := m.render(m.items[i], i, i == m.selected && m.focused)
	lines := strings.Split(rendered, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) warn(format string, args ...any) {
	if m.warnf != nil {
		m.warnf(format, args...)
	}
}
