// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package vlist implements a virtualized list for very large, incrementally
// loaded collections. Only the rows intersecting the viewport (plus an
// overscan margin) are rendered; cumulative row offsets are tracked in a
// prefix-sum structure so scroll geometry stays cheap as the collection grows.
package vlist


// SizeFunc returns the height in rows for the item at index.
type SizeFunc func(index int) int

// DeclaredFunc reports a per-item declared height, if the item carries one.
type DeclaredFunc func(index int) (height int, ok bool)

// WarnFunc receives non-fatal diagnostics (e.g. a size callback misbehaving).
type WarnFunc func(format string, args ...any)

// SizeModel tracks per-index heights and cumulative offsets.
//
// Exactly one sizing mode is active: a fixed default height, per-item declared
// heights, or a caller-supplied size function. Heights computed through the
// size function are cached for the lifetime of the index and only re-computed
// after Invalidate. Offsets are served from a Fenwick tree: O(log n) queries
// and O(log n) point updates.
//
// A SizeModel is owned by a single list instance and is not safe for
// concurrent use.
type SizeModel struct {
	count         int
	defaultHeight int
	sizeFn        SizeFunc
	declared      DeclaredFunc
	warnf         WarnFunc

	heights    []int  // cached height per index (valid when known[i])
	known      []bool // whether heights[i] holds a measured value
	measuredTo int    // indices < measuredTo are all measured

	tree *fenwick // holds measured heights, defaultHeight for the rest
}

// SizeOption configures a SizeModel.
type SizeOption func(*SizeModel)

// WithSizeFunc enables dynamic sizing through fn.
func WithSizeFunc(fn SizeFunc) SizeOption {
	return func(s *SizeModel) { s.sizeFn = fn }
}

// WithDeclaredHeights enables per-item declared heights through fn.
func WithDeclaredHeights(fn DeclaredFunc) SizeOption {
	return func(s *SizeModel) { s.declared = fn }
}

// WithWarnf sets the diagnostic sink for size computation failures.
func WithWarnf(fn WarnFunc) SizeOption {
	return func(s *SizeModel) { s.warnf = fn }
}

// NewSizeModel creates a size model for count items with the given default
// (fixed/estimated) height. A non-positive default is coerced to 1 row.
func NewSizeModel(count, defaultHeight int, opts ...SizeOption) *SizeModel {
	if count < 0 {
		count = 0
	}
	if defaultHeight <= 0 {
		defaultHeight = 1
	}
	s := &SizeModel{
		count:         count,
		defaultHeight: defaultHeight,
		heights:       make([]int, count),
		known:         make([]bool, count),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tree = newUniformFenwick(count, defaultHeight)
	return s
}

// Count returns the number of tracked indices.
func (s *SizeModel) Count() int { return s.count }

// DefaultHeight returns the configured default/estimated row height.
func (s *SizeModel) DefaultHeight() int { return s.defaultHeight }

// HeightOf returns the height of index i, computing and caching it on first
// access. Out-of-range indices report the default height.
func (s *SizeModel) HeightOf(i int) int {
	if i < 0 || i >= s.count {
		return s.defaultHeight
	}
	if s.known[i] {
		return s.heights[i]
	}
	h := s.measure(i)
	s.tree.add(i, h-s.tree.valueAt(i))
	s.heights[i] = h
	s.known[i] = true
	if i == s.measuredTo {
		s.advanceMeasured()
	}
	return h
}

// OffsetOf returns the cumulative offset of index i: the sum of the heights
// of all indices before it. Every index below i is measured first, so the
// result is exact (each index is measured at most once overall).
func (s *SizeModel) OffsetOf(i int) int {
	if i <= 0 {
		return 0
	}
	if i > s.count {
		i = s.count
	}
	s.ensureMeasured(i)
	return s.tree.sum(i)
}

// TotalHeight returns the combined height of all indices. Unmeasured indices
// contribute the default height, so in dynamic-size mode this is an estimate
// that refines as rows are measured; in fixed mode it is exact.
func (s *SizeModel) TotalHeight() int {
	return s.tree.sum(s.count)
}

// IndexAt returns the index whose row span covers the given offset: the
// greatest i with OffsetOf(i) <= offset. Offsets past the end clamp to the
// last index. Returns -1 for an empty model.
func (s *SizeModel) IndexAt(offset int) int {
	if s.count == 0 {
		return -1
	}
	if offset <= 0 {
		return 0
	}
	s.ensureCovered(offset)
	i := s.tree.searchPrefix(offset)
	if i >= s.count {
		i = s.count - 1
	}
	return i
}

// EnsureCovered measures rows from the front until the cumulative height
// reaches offset (or the model is fully measured). Keeps IndexAt exact for
// any offset inside the viewport.
func (s *SizeModel) EnsureCovered(offset int) { s.ensureCovered(offset) }

// Invalidate drops the cached height of index i; the next access re-measures
// it. Used when the item at i changes identity.
func (s *SizeModel) Invalidate(i int) {
	if i < 0 || i >= s.count || !s.known[i] {
		return
	}
	s.tree.add(i, s.defaultHeight-s.heights[i])
	s.known[i] = false
	s.heights[i] = 0
	if i < s.measuredTo {
		s.measuredTo = i
	}
}

// InvalidateAll drops every cached height. Used on reset and teardown.
func (s *SizeModel) InvalidateAll() {
	for i := range s.known {
		s.known[i] = false
		s.heights[i] = 0
	}
	s.measuredTo = 0
	s.tree = newUniformFenwick(s.count, s.defaultHeight)
}

// SetCount grows or shrinks the model to n indices. Existing cached heights
// are preserved; new indices start at the default height.
func (s *SizeModel) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == s.count {
		return
	}
	if n < s.count {
		s.heights = s.heights[:n]
		s.known = s.known[:n]
		if s.measuredTo > n {
			s.measuredTo = n
		}
	} else {
		for i := s.count; i < n; i++ {
			s.heights = append(s.heights, 0)
			s.known = append(s.known, false)
		}
	}
	s.count = n
	s.rebuildTree()
}

// measure computes the height of index i through the active sizing mode,
// substituting the default height when the mode misbehaves.
func (s *SizeModel) measure(i int) (h int) {
	defer func() {
		if r := recover(); r != nil {
			s.warn("size callback panicked for index %d: %v", i, r)
			h = s.defaultHeight
		}
	}()

	switch {
	case s.sizeFn != nil:
		h = s.sizeFn(i)
	case s.declared != nil:
		var ok bool
		h, ok = s.declared(i)
		if !ok {
			return s.defaultHeight
		}
	default:
		return s.defaultHeight
	}

	if h <= 0 {
		s.warn("size callback returned %d for index %d, using default %d", h, i, s.defaultHeight)
		return s.defaultHeight
	}
	return h
}

func (s *SizeModel) ensureMeasured(upTo int) {
	if upTo > s.count {
		upTo = s.count
	}
	for i := s.measuredTo; i < upTo; i++ {
		if !s.known[i] {
			h := s.measure(i)
			s.tree.add(i, h-s.tree.valueAt(i))
			s.heights[i] = h
			s.known[i] = true
		}
	}
	if upTo > s.measuredTo {
		s.measuredTo = upTo
		s.advanceMeasured()
	}
}

func (s *SizeModel) ensureCovered(offset int) {
	for s.measuredTo < s.count && s.tree.sum(s.measuredTo) <= offset {
		s.ensureMeasured(s.measuredTo + 1)
	}
}

func (s *SizeModel) advanceMeasured() {
	for s.measuredTo < s.count && s.known[s.measuredTo] {
		s.measuredTo++
	}
}

func (s *SizeModel) rebuildTree() {
	values := make([]int, s.count)
	for i := range values {
		if s.known[i] {
			values[i] = s.heights[i]
		} else {
			values[i] = s.defaultHeight
		}
	}
	s.tree = newFenwickFrom(values)
}

func (s *SizeModel) warn(format string, args ...any) {
	if s.warnf != nil {
		s.warnf(format, args...)
	}
}
