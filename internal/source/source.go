// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package source

import "context"

// TotalUnknown marks a page whose source cannot report a collection total,
// for example a followed file that is still growing.
const TotalUnknown = -1

// Page is one fetched slice of a collection. A page shorter than the
// requested size means the source has no more entries right now.
type Page struct {
	Entries []Entry
	Total   int // entries in the whole collection, or TotalUnknown
}

// Pager serves fixed-size pages of log entries. Pages are 1-based.
// Implementations must tolerate repeated fetches of the same page.
type Pager interface {
	FetchPage(ctx context.Context, page, size int) (Page, error)
	// Describe returns a short human-readable label for the source,
	// shown in the status bar.
	Describe() string
}
