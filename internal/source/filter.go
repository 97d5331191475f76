// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"strings"
)

// MatchFunc reports whether an entry passes a client-side filter.
type MatchFunc func(Entry) bool

// MatchText matches entries whose message, service, or origin contains q,
// case-insensitively. An empty query matches everything.
func MatchText(q string) MatchFunc {
	q = strings.ToLower(q)
	return func(e Entry) bool {
		if q == "" {
			return true
		}
		if strings.Contains(strings.ToLower(e.Message), q) {
			return true
		}
		if svc, ok := e.Fields["service"].(string); ok && strings.Contains(strings.ToLower(svc), q) {
			return true
		}
		return strings.Contains(strings.ToLower(e.Origin), q)
	}
}

// MatchLevel matches entries at exactly the given level.
func MatchLevel(level Level) MatchFunc {
	return func(e Entry) bool { return e.Level == level }
}

// MatchAll combines matchers; all must pass. With no matchers everything
// matches.
func MatchAll(matchers ...MatchFunc) MatchFunc {
	return func(e Entry) bool {
		for _, m := range matchers {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Filtered pages over the subset of a FileSource's entries that pass a
// matcher. Filtering runs against a fresh snapshot on every fetch, so entries
// appended by followed files show up on later pages.
type Filtered struct {
	src   *FileSource
	match MatchFunc
}

var _ Pager = (*Filtered)(nil)

// NewFiltered wraps src with a client-side filter. A nil match passes
// everything through.
func NewFiltered(src *FileSource, match MatchFunc) *Filtered {
	if match == nil {
		match = func(Entry) bool { return true }
	}
	return &Filtered{src: src, match: match}
}

// FetchPage filters a snapshot of the underlying entries and returns the
// requested slice of the matches.
func (f *Filtered) FetchPage(ctx context.Context, page, size int) (Page, error) {
	if page < 1 || size < 1 {
		return Page{}, fmt.Errorf("invalid page request: page=%d size=%d", page, size)
	}

	all, err := f.src.Snapshot(ctx)
	if err != nil {
		return Page{}, err
	}

	var matched []Entry
	for _, e := range all {
		if f.match(e) {
			matched = append(matched, e)
		}
	}

	total := len(matched)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	out := Page{Entries: matched[start:end], Total: total}
	if f.src.Following() {
		out.Total = TotalUnknown
	}
	return out, nil
}

// Describe returns the underlying source label with a filter marker.
func (f *Filtered) Describe() string {
	return f.src.Describe() + " (filtered)"
}
