// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package vlist

// Range is an inclusive index range of mounted items.
type Range struct {
	Start, End int
}

// emptyRange is the canonical empty range.
var emptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool { return r.End < r.Start }

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i is inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// Defaults for viewport tuning.
const (
	DefaultOverscan      = 5
	DefaultLoadThreshold = 0.8
)

// Controller translates a scroll offset and viewport height into the index
// range that must be mounted, and detects the near-end condition that drives
// incremental loading. It owns no rendering; the caller positions each mounted
// index at OffsetOf(i) - WindowOffset(r) inside a window translated by
// WindowOffset(r), keeping positions small on long lists.
type Controller struct {
	sizes         *SizeModel
	overscan      int
	loadThreshold float64
	prev          Range
}

// NewController creates a controller over the given size model. A negative
// overscan is coerced to 0; a threshold outside (0, 1] falls back to the
// default.
func NewController(sizes *SizeModel, overscan int, loadThreshold float64) *Controller {
	if overscan < 0 {
		overscan = 0
	}
	if loadThreshold <= 0 || loadThreshold > 1 {
		loadThreshold = DefaultLoadThreshold
	}
	return &Controller{
		sizes:         sizes,
		overscan:      overscan,
		loadThreshold: loadThreshold,
		prev:          emptyRange,
	}
}

// VisibleRange computes the inclusive index range whose rows intersect
// [scrollTop, scrollTop+viewportHeight], expanded by the overscan margin and
// clamped to the collection bounds.
//
// An unmeasured viewport (height <= 0) keeps the previous range untouched;
// an empty collection yields the empty range.
func (c *Controller) VisibleRange(scrollTop, viewportHeight int) Range {
	count := c.sizes.Count()
	if count == 0 {
		c.prev = emptyRange
		return c.prev
	}
	if viewportHeight <= 0 {
		return c.prev
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	bottom := scrollTop + viewportHeight
	c.sizes.EnsureCovered(bottom)

	start := c.sizes.IndexAt(scrollTop)
	end := start
	for end+1 < count && c.sizes.OffsetOf(end+1) < bottom {
		end++
	}

	start -= c.overscan
	end += c.overscan
	if start < 0 {
		start = 0
	}
	if end > count-1 {
		end = count - 1
	}

	c.prev = Range{Start: start, End: end}
	return c.prev
}

// LastRange returns the most recently computed range.
func (c *Controller) LastRange() Range { return c.prev }

// NearEnd reports whether the scroll position has crossed the load threshold
// and a fetch should be requested. The loading flag is the re-fire guard: the
// caller passes its loader state so the signal stays quiet while a fetch is in
// flight or the collection is exhausted.
func (c *Controller) NearEnd(scrollTop, viewportHeight int, loading, exhausted bool) bool {
	if loading || exhausted {
		return false
	}
	if c.sizes.Count() == 0 || viewportHeight <= 0 {
		return false
	}
	total := c.sizes.TotalHeight()
	if total <= 0 {
		return false
	}
	return float64(scrollTop+viewportHeight) >= float64(total)*c.loadThreshold
}

// WindowOffset returns the absolute offset of the first mounted index; the
// window holding the mounted rows is translated by this amount.
func (c *Controller) WindowOffset(r Range) int {
	if r.Empty() {
		return 0
	}
	return c.sizes.OffsetOf(r.Start)
}

// PositionOf returns the window-relative top of index i within range r.
func (c *Controller) PositionOf(i int, r Range) int {
	if r.Empty() {
		return 0
	}
	return c.sizes.OffsetOf(i) - c.sizes.OffsetOf(r.Start)
}

// MaxOffset returns the greatest useful scroll offset for the given viewport
// height: scrolling past it would only reveal blank space.
func (c *Controller) MaxOffset(viewportHeight int) int {
	m := c.sizes.TotalHeight() - viewportHeight
	if m < 0 {
		return 0
	}
	return m
}
