// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/scrollcat/scrollcat/internal/source"
)

// viewMode identifies which view owns the screen and the keyboard.
type viewMode int

const (
	viewList viewMode = iota
	viewSearch
	viewDetail
	viewDetailJSON
	viewHelp
	viewErrorModal
	viewQuitConfirm
)

// Filters is the user-controlled query state. Changing any field rebuilds the
// pager and resets the list.
type Filters struct {
	Text      string
	Level     string
	Ascending bool
}

// Messages
type (
	// tickMsg drives the periodic status refresh.
	tickMsg time.Time

	// sourceGrewMsg reports that a followed file source appended entries.
	sourceGrewMsg struct{}

	// snapshotMsg carries a fresh copy of a followed source's entries.
	snapshotMsg struct {
		entries []source.Entry
		err     error
	}

	// profileChangedMsg reports that the profile config file was rewritten
	// on disk.
	profileChangedMsg struct{ Path string }

	// profileWatchErrMsg reports a terminal watcher failure; watching stops.
	profileWatchErrMsg struct{ Err error }

	errMsg error
)

// levelCycle is the order the level filter steps through on the hotkeys.
var levelCycle = []string{"", "ERROR", "WARN", "INFO", "DEBUG"}

// nextLevel returns the filter value after current in the cycle.
func nextLevel(current string) string {
	for i, l := range levelCycle {
		if l == current {
			return levelCycle[(i+1)%len(levelCycle)]
		}
	}
	return ""
}
