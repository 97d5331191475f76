// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"sync"
	"time"

	"github.com/scrollcat/scrollcat/internal/es"
	"github.com/scrollcat/scrollcat/internal/source"
	"github.com/scrollcat/scrollcat/internal/vlist"
)

// DataSource is the pager the shell reads entries from. It matches
// source.Pager; the alias exists so tests can swap in mocks without touching
// the source package.
type DataSource interface {
	FetchPage(ctx context.Context, page, size int) (source.Page, error)
	Describe() string
}

// Compile-time checks that the real backends satisfy the interface.
var (
	_ DataSource = (*es.Source)(nil)
	_ DataSource = (*source.FileSource)(nil)
	_ DataSource = (*source.Filtered)(nil)
)

// SourceFactory builds a pager for the given filter state. The shell calls it
// whenever filters change and resets the list against the result.
type SourceFactory func(f Filters) DataSource

// entryItem adapts a source entry to the list item interface.
type entryItem struct {
	entry source.Entry
}

func (e entryItem) ID() string { return e.entry.ID }

// entryItems converts a slice of entries to list items.
func entryItems(entries []source.Entry) []vlist.Item {
	items := make([]vlist.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}

// sourceState is shared between the model and the list's fetcher. The fetcher
// runs off the update loop, so the current pager and the last reported total
// live behind a mutex. Swapping the pager here plus resetting the list is how
// a filter change takes effect; in-flight fetches against the old pager are
// abandoned by the list's generation check.
type sourceState struct {
	mu      sync.Mutex
	pager   DataSource
	timeout time.Duration
	total   int
}

func newSourceState(pager DataSource, timeout time.Duration) *sourceState {
	return &sourceState{pager: pager, timeout: timeout, total: source.TotalUnknown}
}

// fetch is the vlist Fetcher. Each page fetch gets its own timeout.
func (s *sourceState) fetch(ctx context.Context, page, size int) ([]vlist.Item, error) {
	s.mu.Lock()
	pager := s.pager
	timeout := s.timeout
	s.mu.Unlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p, err := pager.FetchPage(ctx, page, size)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.total = p.Total
	s.mu.Unlock()

	return entryItems(p.Entries), nil
}

// Swap replaces the pager and forgets the stale total.
func (s *sourceState) Swap(pager DataSource) {
	s.mu.Lock()
	s.pager = pager
	s.total = source.TotalUnknown
	s.mu.Unlock()
}

// Pager returns the current pager.
func (s *sourceState) Pager() DataSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager
}

// Total returns the collection size reported by the last fetch, or
// source.TotalUnknown.
func (s *sourceState) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
