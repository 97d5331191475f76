// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package vlist

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Fetcher retrieves one page of items. Pages are 1-based. Returning fewer
// items than size (or none) marks the collection exhausted.
type Fetcher func(ctx context.Context, page, size int) ([]Item, error)

// PageMsg carries the result of a page fetch back into the update loop.
type PageMsg struct {
	Gen   int
	Page  int
	Items []Item
	Err   error
}

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 50

// Loader owns paged-fetch state and serializes fetch attempts.
//
// State machine: Idle -> Loading -> (Idle | Exhausted | Idle-with-error).
// LoadMore while loading or exhausted is a no-op, so rapid scroll events never
// produce duplicate page requests. A failed fetch clears the loading flag and
// keeps the page counter, so the caller can retry the same page. Exhausted is
// terminal until Reset.
//
// Loader state is only mutated from the update loop (LoadMore, Apply, Reset);
// the returned command runs the fetch off-loop and reports back via PageMsg.
type Loader struct {
	fetch    Fetcher
	pageSize int

	page      int
	loading   bool
	exhausted bool
	err       error

	// gen tags in-flight fetches; Apply drops results from an older
	// generation, abandoning fetches in flight across Reset or Close.
	gen int
}

// NewLoader creates a loader starting at page 1.
func NewLoader(fetch Fetcher, pageSize int) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{fetch: fetch, pageSize: pageSize, page: 1}
}

// Loading reports whether a fetch is in flight.
func (l *Loader) Loading() bool { return l.loading }

// Exhausted reports whether the collection has no further pages.
func (l *Loader) Exhausted() bool { return l.exhausted }

// Err returns the error from the most recent failed fetch, if any.
func (l *Loader) Err() error { return l.err }

// Page returns the next page to fetch.
func (l *Loader) Page() int { return l.page }

// PageSize returns the configured page size.
func (l *Loader) PageSize() int { return l.pageSize }

// LoadMore starts fetching the next page. It returns nil (a no-op) while a
// fetch is in flight, after exhaustion, or without a fetcher.
func (l *Loader) LoadMore(ctx context.Context) tea.Cmd {
	if l.loading || l.exhausted || l.fetch == nil {
		return nil
	}
	l.loading = true
	l.err = nil

	gen, page, size, fetch := l.gen, l.page, l.pageSize, l.fetch
	return func() tea.Msg {
		items, err := fetch(ctx, page, size)
		return PageMsg{Gen: gen, Page: page, Items: items, Err: err}
	}
}

// Apply folds a fetch result into the loader state and returns the items to
// append. ok is false when the message was stale (from before a Reset or
// Close) or carried an error; stale results mutate nothing.
func (l *Loader) Apply(msg PageMsg) (items []Item, ok bool) {
	if msg.Gen != l.gen {
		return nil, false
	}
	l.loading = false
	if msg.Err != nil {
		l.err = msg.Err
		return nil, false
	}
	if len(msg.Items) < l.pageSize {
		l.exhausted = true
	}
	if len(msg.Items) > 0 {
		l.page++
	}
	return msg.Items, true
}

// Reset returns the loader to Idle at page 1 and abandons any in-flight
// fetch. Used when the caller's underlying query changes.
func (l *Loader) Reset() {
	l.gen++
	l.page = 1
	l.loading = false
	l.exhausted = false
	l.err = nil
}

// Close abandons any in-flight fetch so its result can no longer mutate
// state. Called on teardown.
func (l *Loader) Close() {
	l.gen++
	l.loading = false
}
